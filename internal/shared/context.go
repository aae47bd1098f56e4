package shared

import "context"

type callerContextKey struct{}

// Caller is the authenticated principal attached to a request.
type Caller struct {
	ID       string
	Role     Role
	RegionID string
}

// HasRegion reports whether the caller is assigned to a region.
func (c Caller) HasRegion() bool {
	return c.RegionID != ""
}

// ContextWithCaller stores the caller in context.
func ContextWithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext extracts the caller from context. The zero Caller has no role.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerContextKey{}).(Caller)
	return caller, ok
}
