package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpl-cache/internal/models"
)

func TestDefaults_CoverAllCategories(t *testing.T) {
	table := Defaults()

	for _, cat := range models.AllCategories() {
		p, ok := table[cat]
		require.True(t, ok, "category %q has no default policy", cat)
		assert.Greater(t, p.LocalTTL, time.Duration(0))
		assert.Greater(t, p.RemoteTTL, time.Duration(0))
		assert.Greater(t, p.LocalBudget, 0)
		assert.NotEmpty(t, p.InvalidationEvents)
	}
}

func TestDefaults_LocalTTLShorterThanRemote(t *testing.T) {
	// Local entries are deliberately shorter-lived than their remote
	// counterparts
	for cat, p := range Defaults() {
		assert.LessOrEqual(t, p.LocalTTL, p.RemoteTTL, "category %q", cat)
	}
}

func TestNewRegistry_Valid(t *testing.T) {
	registry, err := NewRegistry(Defaults())
	require.NoError(t, err)
	assert.NotNil(t, registry)
}

func TestNewRegistry_MissingCategory(t *testing.T) {
	table := Defaults()
	delete(table, models.CategoryBootstrap)

	_, err := NewRegistry(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap")
}

func TestNewRegistry_NegativeTTL(t *testing.T) {
	table := Defaults()
	p := table[models.CategoryLiveScores]
	p.LocalTTL = -time.Second
	table[models.CategoryLiveScores] = p

	_, err := NewRegistry(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestNewRegistry_ZeroBudget(t *testing.T) {
	table := Defaults()
	p := table[models.CategoryFixtures]
	p.LocalBudget = 0
	table[models.CategoryFixtures] = p

	_, err := NewRegistry(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget")
}

func TestNewRegistry_UnknownCategory(t *testing.T) {
	table := Defaults()
	table[models.DataCategory("made_up")] = Policy{
		LocalTTL:    time.Second,
		RemoteTTL:   time.Second,
		LocalBudget: 1,
	}

	_, err := NewRegistry(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "made_up")
}

func TestRegistry_PolicyFor(t *testing.T) {
	registry, err := NewRegistry(Defaults())
	require.NoError(t, err)

	p := registry.PolicyFor(models.CategoryLiveScores)
	assert.Equal(t, 30*time.Second, p.LocalTTL)
	assert.Equal(t, time.Minute, p.RemoteTTL)
}

func TestRegistry_PolicyFor_UnregisteredPanics(t *testing.T) {
	registry, err := NewRegistry(Defaults())
	require.NoError(t, err)

	assert.Panics(t, func() {
		registry.PolicyFor(models.DataCategory("unregistered"))
	})
}

func TestRegistry_CategoriesForEvent(t *testing.T) {
	registry, err := NewRegistry(Defaults())
	require.NoError(t, err)

	cats := registry.CategoriesForEvent("season_start")
	assert.Equal(t, []models.DataCategory{models.CategoryBootstrap}, cats)

	cats = registry.CategoriesForEvent("gameweek_start")
	assert.Contains(t, cats, models.CategoryLiveScores)
	assert.Contains(t, cats, models.CategoryFixtures)
	assert.Contains(t, cats, models.CategoryBootstrap)
	assert.NotContains(t, cats, models.CategoryPlayerMeta)

	assert.Empty(t, registry.CategoriesForEvent("unknown_event"))
}

func TestPolicy_HasEvent(t *testing.T) {
	p := Policy{InvalidationEvents: []string{"a", "b"}}

	assert.True(t, p.HasEvent("a"))
	assert.True(t, p.HasEvent("b"))
	assert.False(t, p.HasEvent("c"))
	assert.False(t, Policy{}.HasEvent("a"))
}
