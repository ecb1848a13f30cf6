package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/partygames/clockin/internal/dependencies/clock"
	"github.com/partygames/clockin/internal/dependencies/random"
	"github.com/partygames/clockin/internal/qr"
	"github.com/partygames/clockin/internal/services/checkin"
	"github.com/partygames/clockin/internal/services/game"
	"github.com/partygames/clockin/internal/services/identity"
	"github.com/partygames/clockin/internal/services/roster"
	"github.com/partygames/clockin/internal/storage"
	"github.com/partygames/clockin/internal/storage/memory"
	redisstorage "github.com/partygames/clockin/internal/storage/redis"
	"github.com/partygames/clockin/internal/watch"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components. It is constructed once at
// startup and passed down explicitly; there is no global mutable state.
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Bus               *watch.Bus
	IdentityService   *identity.Service
	GameService       *game.Service
	CheckinController *checkin.Controller
	RosterService     *roster.Service
	QRGenerator       *qr.Generator
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// CheckinConfig holds check-in engine settings (optional)
	CheckinConfig *checkin.Config
	// BaseURL is the externally reachable check-in URL prefix used on
	// generated QR badges
	BaseURL string
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
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	checkinCfg := checkin.DefaultConfig()
	if cfg.CheckinConfig != nil {
		checkinCfg = *cfg.CheckinConfig
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return newWithDependencies(store, clk, rnd, checkinCfg, baseURL, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	checkinCfg checkin.Config,
	baseURL string,
	logger *slog.Logger,
) *App {
	bus := watch.NewBus(logger)
	identityService := identity.New(store, clk, rnd, logger)
	gameService := game.New(store, clk, logger)
	checkinController := checkin.NewController(store, identityService, gameService, bus, clk, rnd, checkinCfg, logger)
	rosterService := roster.New(store, bus, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Bus:               bus,
		IdentityService:   identityService,
		GameService:       gameService,
		CheckinController: checkinController,
		RosterService:     rosterService,
		QRGenerator:       qr.New(baseURL),
	}
}
