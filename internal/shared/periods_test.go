package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthStart(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	got := MonthStart(time.Date(2025, time.March, 1, 1, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), got)

	got = MonthStart(time.Date(2025, time.March, 17, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateRangeDateOnlyEndCoversDay(t *testing.T) {
	rng, err := ParseDateRange("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	require.NotNil(t, rng.From)
	require.NotNil(t, rng.To)

	assert.True(t, rng.Contains(time.Date(2025, time.January, 31, 18, 0, 0, 0, time.UTC)))
	assert.False(t, rng.Contains(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, rng.Contains(time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)))
}

func TestParseDateRangeRFC3339(t *testing.T) {
	rng, err := ParseDateRange("2025-01-01T10:00:00Z", "")
	require.NoError(t, err)
	assert.Nil(t, rng.To)
	assert.False(t, rng.Contains(time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)))
	assert.True(t, rng.Contains(time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRangeRejectsGarbage(t *testing.T) {
	_, err := ParseDateRange("yesterday", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadRequest))

	_, err = ParseDateRange("2025-02-01", "2025-01-01")
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestUserSafeMessage(t *testing.T) {
	assert.Equal(t, "visit not found", UserSafeMessage(NotFound("visit not found")))
	assert.Equal(t, "internal server error", UserSafeMessage(errors.New("dial tcp: refused")))
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2025-05-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseTimestamp("2025-05-10T09:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 10, 7, 30, 0, 0, time.UTC), got)

	_, err = ParseTimestamp("10/05/2025")
	assert.Error(t, err)
}
