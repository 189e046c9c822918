package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/burrowlabs/bunnyhit-go/internal/dependencies/clock"
	"github.com/burrowlabs/bunnyhit-go/internal/dependencies/random"
	"github.com/burrowlabs/bunnyhit-go/internal/services/leaderboard"
	"github.com/burrowlabs/bunnyhit-go/internal/storage"
	"github.com/burrowlabs/bunnyhit-go/internal/storage/localfile"
	"github.com/burrowlabs/bunnyhit-go/internal/storage/memory"
	redisstorage "github.com/burrowlabs/bunnyhit-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory    = "memory"
	StorageTypeRedis     = "redis"
	StorageTypeLocalFile = "localfile"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	LeaderboardService *leaderboard.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "localfile")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// LocalDir is the data directory (required if StorageType is "localfile")
	LocalDir string
	// LeaderboardConfig holds leaderboard/reward settings (optional)
	// If zero value, defaults to leaderboard.DefaultConfig()
	LeaderboardConfig leaderboard.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeLocalFile:
		if cfg.LocalDir == "" {
			return nil, errors.New("LocalDir required when StorageType is localfile")
		}
		localStore, err := localfile.New(cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		store = localStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'localfile'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default leaderboard config if not provided
	lbCfg := cfg.LeaderboardConfig
	if lbCfg.RewardMultiplier == 0 {
		lbCfg = leaderboard.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, lbCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, lbCfg leaderboard.Config, logger *slog.Logger) *App {
	leaderboardService := leaderboard.New(store, clk, lbCfg, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		LeaderboardService: leaderboardService,
	}
}
