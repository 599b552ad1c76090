// Package config loads netplan settings from a TOML file.
//
// Every setting has a default, so a missing file is not an error. A file
// only needs the keys it changes:
//
//	[planning]
//	catalog = [0, 10, 100, 1000]
//	packet_size_bytes = 1200
//
//	[planning.thresholds]
//	high = 0.5
//	overload = 0.8
//
//	[costs.capacity]
//	zero = 10
//	above = 1000
//	tiers = [{ max = 64, cost = 100 }, { max = 128, cost = 250 }]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//	database = "netplan"
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/netplan/pkg/capacity"
	"github.com/matzehuels/netplan/pkg/delay"
	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/pipeline"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "NETPLAN_CONFIG"

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the complete netplan configuration.
type Config struct {
	Log      Log                `toml:"log"`
	Planning Planning           `toml:"planning"`
	Costs    capacity.CostModel `toml:"costs"`
	Cache    Cache              `toml:"cache"`
	Store    Store              `toml:"store"`
	Server   Server             `toml:"server"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// Planning holds the parameters of a planning run.
type Planning struct {
	Catalog         []float64           `toml:"catalog"`
	PacketSizeBytes int                 `toml:"packet_size_bytes"`
	Seed            uint64              `toml:"seed"`
	Deterministic   bool                `toml:"deterministic"`
	Augment         bool                `toml:"augment"`
	Thresholds      capacity.Thresholds `toml:"thresholds"`
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend   string        `toml:"backend" validate:"oneof=file redis none"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisDB   int           `toml:"redis_db" validate:"gte=0"`
	Prefix    string        `toml:"prefix"`
	TTL       time.Duration `toml:"ttl" validate:"gte=0"`
}

// Store selects and configures plan persistence.
type Store struct {
	Backend  string `toml:"backend" validate:"oneof=file mongo"`
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri" validate:"required_if=Backend mongo"`
	Database string `toml:"database" validate:"required_if=Backend mongo"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string        `toml:"addr" validate:"required"`
	ReadTimeout  time.Duration `toml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `toml:"write_timeout" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: Log{Level: "info"},
		Planning: Planning{
			Catalog:         slices.Clone(capacity.DefaultValues),
			PacketSizeBytes: delay.DefaultPacketSizeBytes,
			Seed:            pipeline.DefaultSeed,
			Augment:         true,
			Thresholds:      capacity.DefaultThresholds(),
		},
		Costs: capacity.DefaultCostModel(),
		Cache: Cache{
			Backend: BackendFile,
			TTL:     24 * time.Hour,
		},
		Store:  Store{Backend: BackendFile},
		Server: Server{Addr: ":8080", ReadTimeout: 30 * time.Second, WriteTimeout: 60 * time.Second},
	}
}

// DefaultPath returns $NETPLAN_CONFIG, or config.toml under the user's
// config directory (~/.config/netplan on Linux).
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "netplan", "config.toml"), nil
}

// Load reads the configuration at path on top of [Default] and validates
// it. An empty path means [DefaultPath], which may be missing; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, cfg.Validate()
		}
		path = p
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, cfg.Validate()
	}

	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML text on top of [Default] and validates it.
func Parse(text string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return checkUndecoded(md)
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(names, ", "))
}

// PlanningOptions returns pipeline options populated from the planning and
// cost sections. Callers override individual fields from flags.
func (c *Config) PlanningOptions() pipeline.Options {
	costs := c.Costs
	thresholds := c.Planning.Thresholds
	return pipeline.Options{
		Catalog:         slices.Clone(c.Planning.Catalog),
		Costs:           &costs,
		Thresholds:      &thresholds,
		PacketSizeBytes: c.Planning.PacketSizeBytes,
		Seed:            c.Planning.Seed,
		Deterministic:   c.Planning.Deterministic,
		SkipAugment:     !c.Planning.Augment,
	}
}
