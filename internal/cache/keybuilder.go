package cache

import (
	"fmt"

	"fpl-cache/internal/models"
)

// BuildKey composes the full cache key for a category and a caller-supplied
// identifier. Uniqueness of the identifier within a category is the caller's
// responsibility.
func BuildKey(category models.DataCategory, id string) string {
	return fmt.Sprintf("%s:%s", category, id)
}

// BuildPattern composes a glob pattern scoped to a category, for remote-tier
// scan deletion.
func BuildPattern(category models.DataCategory, pattern string) string {
	if pattern == "" {
		pattern = "*"
	}
	return fmt.Sprintf("%s:%s", category, pattern)
}
