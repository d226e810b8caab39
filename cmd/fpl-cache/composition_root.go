package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"fpl-cache/internal/cache/noop"
	"fpl-cache/internal/cache/remote"
	"fpl-cache/internal/cache/tiered"
	"fpl-cache/internal/config"
	"fpl-cache/internal/fpl"
	"fpl-cache/internal/httpserver"
	"fpl-cache/internal/interfaces"
	"fpl-cache/internal/perf"
	"fpl-cache/internal/policy"
)

// CompositionRoot holds all application dependencies and provides a
// centralized place for dependency injection and service initialization.
// The coordinator's lifecycle (creation, shutdown) is owned here, never by a
// lazily-initialized package-level variable.
type CompositionRoot struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *policy.Registry

	RemoteStore interfaces.RemoteStore
	Sampler     *perf.Sampler
	Coordinator *tiered.Coordinator

	FPLClient  *fpl.Client
	HTTPServer *httpserver.Server
}

// NewCompositionRoot creates and wires all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration
// 3. Policy registry (per-category cache behavior)
// 4. Remote store (Redis, with no-op fallback)
// 5. Sampler and coordinator
// 6. FPL client and HTTP server
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.loadPolicies(); err != nil {
		return nil, fmt.Errorf("failed to load cache policies: %w", err)
	}

	if err := root.initRemoteStore(); err != nil {
		return nil, fmt.Errorf("failed to initialize remote store: %w", err)
	}

	root.Sampler = perf.NewSampler(root.Config.Perf.SampleCapacity)
	root.Coordinator = tiered.NewCoordinator(
		root.Registry,
		root.RemoteStore,
		root.Sampler,
		root.Config,
		root.Logger,
	)

	root.FPLClient = fpl.NewClient(&root.Config.FPL, root.Logger)
	root.HTTPServer = httpserver.NewServer(root.Coordinator, root.Sampler, root.Logger)

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig() error {
	cfg, err := config.LoadConfig(os.Getenv("CACHE_CONFIG_FILE"), r.Logger)
	if err != nil {
		return err
	}

	r.Config = cfg
	return nil
}

// loadPolicies loads the per-category policy registry
func (r *CompositionRoot) loadPolicies() error {
	registry, err := policy.LoadRegistry(os.Getenv("CACHE_POLICY_FILE"), r.Logger)
	if err != nil {
		return err
	}

	r.Registry = registry
	return nil
}

// initRemoteStore initializes the Redis tier, falling back to a no-op store
// when Redis is disabled or unreachable so the cache runs local-only.
func (r *CompositionRoot) initRemoteStore() error {
	if !r.Config.Remote.Enabled {
		r.RemoteStore = noop.NewRemoteStore()
		r.Logger.Info("Remote cache tier disabled")
		return nil
	}

	redisURL := GetRedisURL(r.Logger)

	client, err := remote.NewRedisClient(&r.Config.Remote, redisURL, r.Logger)
	if err != nil {
		r.Logger.Warn("Failed to connect to Redis, running with local tier only",
			zap.String("redis_url", redisURL),
			zap.Error(err))
		r.RemoteStore = noop.NewRemoteStore()
		return nil
	}

	r.RemoteStore = remote.NewStore(&r.Config.Remote, client, r.Logger)
	r.Logger.Info("Remote cache tier initialized", zap.String("redis_url", redisURL))
	return nil
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errs []error

	if r.Coordinator != nil {
		if err := r.Coordinator.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close coordinator: %w", err))
		}
	}

	if r.Logger != nil {
		if err := r.Logger.Sync(); err != nil {
			errs = append(errs, fmt.Errorf("failed to sync logger: %w", err))
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}

	return nil
}
