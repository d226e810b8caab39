package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fpl-cache/internal/models"
)

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "live_scores:gw12", BuildKey(models.CategoryLiveScores, "gw12"))
	assert.Equal(t, "manager_history:4921", BuildKey(models.CategoryManagerHistory, "4921"))
}

func TestBuildPattern(t *testing.T) {
	assert.Equal(t, "fixtures:gw*", BuildPattern(models.CategoryFixtures, "gw*"))
	assert.Equal(t, "fixtures:*", BuildPattern(models.CategoryFixtures, ""))
}
