package policy

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"fpl-cache/internal/models"
)

// policyOverride carries per-category overrides from the policies file.
// Unset fields keep their built-in defaults.
type policyOverride struct {
	LocalTTL           *time.Duration `yaml:"local_ttl"`
	RemoteTTL          *time.Duration `yaml:"remote_ttl"`
	LocalBudget        *int           `yaml:"local_budget"`
	Compress           *bool          `yaml:"compress"`
	PreWarm            *bool          `yaml:"pre_warm"`
	InvalidationEvents []string       `yaml:"invalidation_events"`
}

type policiesFile struct {
	Policies map[models.DataCategory]policyOverride `yaml:"policies"`
}

// LoadRegistry builds the policy registry from the built-in defaults plus an
// optional overrides file. An empty path means defaults only.
func LoadRegistry(path string, logger *zap.Logger) (*Registry, error) {
	table := Defaults()

	if path != "" {
		logger.Info("Loading cache policy overrides", zap.String("path", path))

		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open policy file: %w", err)
		}
		defer func() { _ = file.Close() }()

		var overrides policiesFile
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&overrides); err != nil {
			return nil, fmt.Errorf("failed to decode YAML policy file: %w", err)
		}

		for cat, ov := range overrides.Policies {
			table[cat] = applyOverride(table[cat], ov)
		}
	}

	registry, err := NewRegistry(table)
	if err != nil {
		return nil, fmt.Errorf("policy validation failed: %w", err)
	}

	return registry, nil
}

func applyOverride(p Policy, ov policyOverride) Policy {
	if ov.LocalTTL != nil {
		p.LocalTTL = *ov.LocalTTL
	}
	if ov.RemoteTTL != nil {
		p.RemoteTTL = *ov.RemoteTTL
	}
	if ov.LocalBudget != nil {
		p.LocalBudget = *ov.LocalBudget
	}
	if ov.Compress != nil {
		p.Compress = *ov.Compress
	}
	if ov.PreWarm != nil {
		p.PreWarm = *ov.PreWarm
	}
	if ov.InvalidationEvents != nil {
		p.InvalidationEvents = ov.InvalidationEvents
	}
	return p
}
