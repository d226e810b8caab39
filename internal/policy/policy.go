package policy

import (
	"fmt"
	"time"

	"fpl-cache/internal/models"
)

// Policy describes how one data category is cached across both tiers.
// Policies are immutable process-wide configuration, loaded once at startup.
type Policy struct {
	LocalTTL           time.Duration
	RemoteTTL          time.Duration
	LocalBudget        int
	Compress           bool
	PreWarm            bool
	InvalidationEvents []string
}

// HasEvent reports whether event is listed in the policy's invalidation events.
func (p Policy) HasEvent(event string) bool {
	for _, e := range p.InvalidationEvents {
		if e == event {
			return true
		}
	}
	return false
}

// Registry is a pure lookup table from category to policy. Construction
// validates that every known category is covered; lookups never fail at
// runtime given correct wiring.
type Registry struct {
	policies map[models.DataCategory]Policy
}

// NewRegistry creates a Registry after validating the policy table.
func NewRegistry(policies map[models.DataCategory]Policy) (*Registry, error) {
	for _, cat := range models.AllCategories() {
		p, ok := policies[cat]
		if !ok {
			return nil, fmt.Errorf("no cache policy registered for category %q", cat)
		}
		if p.LocalTTL < 0 || p.RemoteTTL < 0 {
			return nil, fmt.Errorf("category %q: TTLs must be non-negative", cat)
		}
		if p.LocalBudget <= 0 {
			return nil, fmt.Errorf("category %q: local budget must be positive", cat)
		}
	}
	for cat := range policies {
		if !cat.Valid() {
			return nil, fmt.Errorf("unknown category %q in policy table", cat)
		}
	}

	return &Registry{policies: policies}, nil
}

// PolicyFor returns the policy for a category. A missing policy is a wiring
// bug, not a runtime condition, so it panics rather than defaulting.
func (r *Registry) PolicyFor(cat models.DataCategory) Policy {
	p, ok := r.policies[cat]
	if !ok {
		panic(fmt.Sprintf("no cache policy registered for category %q", cat))
	}
	return p
}

// Categories returns all registered categories in stable order.
func (r *Registry) Categories() []models.DataCategory {
	return models.AllCategories()
}

// CategoriesForEvent returns the categories whose policy lists event among
// their invalidation events.
func (r *Registry) CategoriesForEvent(event string) []models.DataCategory {
	var cats []models.DataCategory
	for _, cat := range models.AllCategories() {
		if r.policies[cat].HasEvent(event) {
			cats = append(cats, cat)
		}
	}
	return cats
}

// Defaults returns the built-in policy table. Loaded configuration may
// override individual fields per category.
func Defaults() map[models.DataCategory]Policy {
	return map[models.DataCategory]Policy{
		models.CategoryLiveScores: {
			LocalTTL:           30 * time.Second,
			RemoteTTL:          time.Minute,
			LocalBudget:        2048,
			InvalidationEvents: []string{"gameweek_start", "match_finished"},
		},
		models.CategoryFixtures: {
			LocalTTL:           30 * time.Minute,
			RemoteTTL:          2 * time.Hour,
			LocalBudget:        512,
			PreWarm:            true,
			InvalidationEvents: []string{"gameweek_start", "fixture_update"},
		},
		models.CategoryPlayerMeta: {
			LocalTTL:           time.Hour,
			RemoteTTL:          6 * time.Hour,
			LocalBudget:        1024,
			Compress:           true,
			PreWarm:            true,
			InvalidationEvents: []string{"price_change", "deadline_passed"},
		},
		models.CategoryManagerHistory: {
			LocalTTL:           15 * time.Minute,
			RemoteTTL:          time.Hour,
			LocalBudget:        1024,
			Compress:           true,
			InvalidationEvents: []string{"gameweek_start"},
		},
		models.CategoryBootstrap: {
			LocalTTL:           time.Hour,
			RemoteTTL:          12 * time.Hour,
			LocalBudget:        64,
			Compress:           true,
			PreWarm:            true,
			InvalidationEvents: []string{"season_start", "gameweek_start"},
		},
		models.CategoryPredictions: {
			LocalTTL:           10 * time.Minute,
			RemoteTTL:          30 * time.Minute,
			LocalBudget:        512,
			InvalidationEvents: []string{"gameweek_start", "lineup_update"},
		},
		models.CategoryAnalytics: {
			LocalTTL:           5 * time.Minute,
			RemoteTTL:          15 * time.Minute,
			LocalBudget:        1024,
			InvalidationEvents: []string{"gameweek_start", "match_finished"},
		},
	}
}
