package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	Server ServerConfig `yaml:"server"`
	Local  LocalConfig  `yaml:"local"`
	Remote RemoteConfig `yaml:"remote"`
	Warm   WarmConfig   `yaml:"warm"`
	Perf   PerfConfig   `yaml:"perf"`
	FPL    FPLConfig    `yaml:"fpl"`
}

// ServerConfig configures the observability HTTP server.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LocalConfig configures the in-process tier.
type LocalConfig struct {
	SweepInterval time.Duration `yaml:"sweep_interval"`
	SweepEvery    int           `yaml:"sweep_every"`
}

// RemoteConfig configures the Redis tier.
type RemoteConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	SendTimeout    time.Duration `yaml:"send_timeout"`
	PoolSize       int           `yaml:"pool_size"`
	MaxIdleTimeout time.Duration `yaml:"max_idle_timeout"`
}

// WarmConfig bounds the burst load of cache warming.
type WarmConfig struct {
	BatchSize  int           `yaml:"batch_size"`
	BatchPause time.Duration `yaml:"batch_pause"`
}

// PerfConfig configures the performance sampler.
type PerfConfig struct {
	SampleCapacity int `yaml:"sample_capacity"`
}

// FPLConfig configures the upstream FPL API client.
type FPLConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LoadConfig loads configuration from file path. An empty path yields the
// built-in defaults.
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	var config Config

	if configPath != "" {
		logger.Info("Loading configuration", zap.String("path", configPath))

		file, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer func() { _ = file.Close() }()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to decode YAML config: %w", err)
		}
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Local.SweepInterval <= 0 {
		c.Local.SweepInterval = time.Minute
	}
	if c.Local.SweepEvery <= 0 {
		c.Local.SweepEvery = 100
	}
	if c.Remote.ConnectTimeout <= 0 {
		c.Remote.ConnectTimeout = 2 * time.Second
	}
	if c.Remote.ReadTimeout <= 0 {
		c.Remote.ReadTimeout = time.Second
	}
	if c.Remote.SendTimeout <= 0 {
		c.Remote.SendTimeout = time.Second
	}
	if c.Remote.PoolSize <= 0 {
		c.Remote.PoolSize = 10
	}
	if c.Remote.MaxIdleTimeout <= 0 {
		c.Remote.MaxIdleTimeout = 5 * time.Minute
	}
	if c.Warm.BatchSize <= 0 {
		c.Warm.BatchSize = 10
	}
	if c.Warm.BatchPause <= 0 {
		c.Warm.BatchPause = 250 * time.Millisecond
	}
	if c.Perf.SampleCapacity <= 0 {
		c.Perf.SampleCapacity = 4096
	}
	if c.FPL.BaseURL == "" {
		c.FPL.BaseURL = "https://fantasy.premierleague.com/api"
	}
	if c.FPL.Timeout <= 0 {
		c.FPL.Timeout = 10 * time.Second
	}
}
