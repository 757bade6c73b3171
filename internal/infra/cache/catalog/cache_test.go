package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testServices() (active, all []*domain.Service) {
	active = []*domain.Service{{ID: 1, Name: "Design de Sobrancelhas", IsActive: true}}
	all = append(active, &domain.Service{ID: 2, Name: "Henna", IsActive: false})
	return active, all
}

func TestCache_MissWhenEmpty(t *testing.T) {
	cache := New(30 * time.Second)

	_, _, ok := cache.Get()
	assert.False(t, ok)
}

func TestCache_HitWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	cache := NewWithClock(30*time.Second, clock)

	active, all := testServices()
	cache.Set(active, all)

	clock.Advance(29 * time.Second)

	gotActive, gotAll, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, active, gotActive)
	assert.Equal(t, all, gotAll)
}

func TestCache_MissAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	cache := NewWithClock(30*time.Second, clock)

	active, all := testServices()
	cache.Set(active, all)

	clock.Advance(31 * time.Second)

	_, _, ok := cache.Get()
	assert.False(t, ok)
}

func TestCache_InvalidateForcesMiss(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	cache := NewWithClock(30*time.Second, clock)

	active, all := testServices()
	cache.Set(active, all)
	cache.Invalidate()

	_, _, ok := cache.Get()
	assert.False(t, ok)
}

func TestCache_SetRestartsTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	cache := NewWithClock(30*time.Second, clock)

	active, all := testServices()
	cache.Set(active, all)
	clock.Advance(25 * time.Second)

	cache.Set(active, all)
	clock.Advance(25 * time.Second)

	_, _, ok := cache.Get()
	assert.True(t, ok)
}
