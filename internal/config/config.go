// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/layer-3/campus/adapters/mongodb"
	"golang.org/x/crypto/bcrypt"
)

const (
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// RedisConfig defines the options that are used when connecting to Redis.
type RedisConfig struct {
	URL string `env:"URL" envDefault:"redis://localhost:6379/0"`
}

type Config struct {
	// Signing secret for bearer tokens. Startup fails without it.
	Secret string `env:"SECRET,required,notEmpty"`

	HTTPAddr          string        `env:"CAMPUS_HTTP_ADDR"           envDefault:":8080"`
	LogLevel          string        `env:"CAMPUS_LOG_LEVEL"           envDefault:"info"`
	TokenTTL          time.Duration `env:"CAMPUS_TOKEN_TTL"           envDefault:"24h"`
	BcryptCost        int           `env:"CAMPUS_BCRYPT_COST"         envDefault:"12"`
	StoreBackend      string        `env:"CAMPUS_STORE_BACKEND"       envDefault:"mongo"`
	RevocationBackend string        `env:"CAMPUS_REVOCATION_BACKEND"  envDefault:"mongo"`
	PruneInterval     time.Duration `env:"CAMPUS_PRUNE_INTERVAL"      envDefault:"10m"`
	EventsEnabled     bool          `env:"CAMPUS_EVENTS_ENABLED"      envDefault:"false"`
	ShutdownTimeout   time.Duration `env:"CAMPUS_SHUTDOWN_TIMEOUT"    envDefault:"10s"`

	Mongo mongodb.Config `envPrefix:"CAMPUS_MONGO_"`
	Redis RedisConfig    `envPrefix:"CAMPUS_REDIS_"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the values the environment parser cannot.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.StoreBackend)
	}

	switch c.RevocationBackend {
	case BackendMongo, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown revocation backend %q", ErrInvalidConfig, c.RevocationBackend)
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token ttl must be positive", ErrInvalidConfig)
	}

	if c.PruneInterval <= 0 {
		return fmt.Errorf("%w: prune interval must be positive", ErrInvalidConfig)
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidConfig, c.BcryptCost)
	}

	return nil
}

// NeedsMongo reports whether any selected backend is MongoDB.
func (c Config) NeedsMongo() bool {
	return c.StoreBackend == BackendMongo || c.RevocationBackend == BackendMongo
}

// NeedsRedis reports whether Redis is used for revocations or events.
func (c Config) NeedsRedis() bool {
	return c.RevocationBackend == BackendRedis || c.EventsEnabled
}
