package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DataCategory tags a class of cached FPL data sharing one cache policy.
type DataCategory string

const (
	CategoryLiveScores     DataCategory = "live_scores"
	CategoryFixtures       DataCategory = "fixtures"
	CategoryPlayerMeta     DataCategory = "player_meta"
	CategoryManagerHistory DataCategory = "manager_history"
	CategoryBootstrap      DataCategory = "bootstrap"
	CategoryPredictions    DataCategory = "predictions"
	CategoryAnalytics      DataCategory = "analytics"
)

// AllCategories returns every category known to the cache, in stable order.
func AllCategories() []DataCategory {
	return []DataCategory{
		CategoryLiveScores,
		CategoryFixtures,
		CategoryPlayerMeta,
		CategoryManagerHistory,
		CategoryBootstrap,
		CategoryPredictions,
		CategoryAnalytics,
	}
}

// Valid reports whether c is a known category.
func (c DataCategory) Valid() bool {
	switch c {
	case CategoryLiveScores, CategoryFixtures, CategoryPlayerMeta,
		CategoryManagerHistory, CategoryBootstrap, CategoryPredictions,
		CategoryAnalytics:
		return true
	default:
		return false
	}
}

// UnmarshalYAML implements custom YAML unmarshaling for DataCategory
func (c *DataCategory) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	cat := DataCategory(str)
	if !cat.Valid() {
		return fmt.Errorf("invalid data category '%s'", str)
	}
	*c = cat
	return nil
}
