package users

import (
	"context"
	"sort"
	"sync"

	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[string]User
}

func newMemoryRepo(seed ...User) *memoryRepo {
	repo := &memoryRepo{users: map[string]User{}}
	for _, u := range seed {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *memoryRepo) List(_ context.Context, scope rbac.Scope, filter ListFilter) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []User{}
	for _, u := range m.users {
		if !scope.Permits(u.Region()) {
			continue
		}
		if filter.RegionID != "" && u.Region() != filter.RegionID {
			continue
		}
		if filter.Role != "" && string(u.Role) != filter.Role {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, shared.NotFound("user not found")
	}
	return u, nil
}

func (m *memoryRepo) GetByUsername(_ context.Context, username string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, shared.NotFound("user not found")
}

func (m *memoryRepo) Create(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkUnique(u); err != nil {
		return err
	}
	m.users[u.ID] = u
	return nil
}

func (m *memoryRepo) Update(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return shared.NotFound("user not found")
	}
	if err := m.checkUnique(u); err != nil {
		return err
	}
	m.users[u.ID] = u
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return shared.NotFound("user not found")
	}
	delete(m.users, id)
	return nil
}

func (m *memoryRepo) SalespersonIDs(_ context.Context, regionID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, u := range m.users {
		if u.Role == shared.RoleSalesperson && u.Region() == regionID {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (m *memoryRepo) checkUnique(u User) error {
	for _, other := range m.users {
		if other.ID == u.ID {
			continue
		}
		if other.Username == u.Username {
			return shared.BadRequest("username already exists")
		}
		if other.Email == u.Email {
			return shared.BadRequest("email already exists")
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
