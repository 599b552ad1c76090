package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/netplan/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(`
[planning]
catalog = [0, 10, 100, 1000]
packet_size_bytes = 1200
deterministic = true

[planning.thresholds]
high = 0.5
overload = 0.8

[costs.capacity]
zero = 1
above = 99
tiers = [{ max = 10, cost = 5 }]

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "1h"

[server]
addr = "127.0.0.1:9000"
`)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Planning.Catalog) != 4 || cfg.Planning.Catalog[3] != 1000 {
		t.Errorf("Catalog = %v", cfg.Planning.Catalog)
	}
	if cfg.Planning.Thresholds.High != 0.5 {
		t.Errorf("High = %v, want 0.5", cfg.Planning.Thresholds.High)
	}
	if cfg.Costs.CapacityCost(50) != 99 || cfg.Costs.CapacityCost(0) != 1 {
		t.Errorf("capacity costs not overridden: %+v", cfg.Costs.Capacity)
	}
	if cfg.Costs.LengthCost(100) != 50 {
		t.Error("length costs should keep their defaults")
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("TTL = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("ReadTimeout = %v, want default", cfg.Server.ReadTimeout)
	}

	opts := cfg.PlanningOptions()
	if !opts.Deterministic || opts.PacketSizeBytes != 1200 || opts.SkipAugment {
		t.Errorf("PlanningOptions() = %+v", opts)
	}
	if opts.Thresholds == nil || opts.Thresholds.Overload != 0.8 {
		t.Errorf("Thresholds = %+v", opts.Thresholds)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		code errors.Code
	}{
		{"syntax", `[planning`, errors.ErrCodeInvalidConfig},
		{"unknown key", "[planning]\ncatlog = [0]", errors.ErrCodeInvalidConfig},
		{"cache backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"redis without addr", "[cache]\nbackend = \"redis\"", errors.ErrCodeInvalidConfig},
		{"mongo without uri", "[store]\nbackend = \"mongo\"", errors.ErrCodeInvalidConfig},
		{"log level", "[log]\nlevel = \"chatty\"", errors.ErrCodeInvalidConfig},
		{"catalog without zero", "[planning]\ncatalog = [2, 4]", errors.ErrCodeInvalidCatalog},
		{"catalog order", "[planning]\ncatalog = [0, 4, 2]", errors.ErrCodeInvalidCatalog},
		{"thresholds", "[planning.thresholds]\nhigh = 0.9\noverload = 0.5", errors.ErrCodeInvalidThresholds},
		{"packet size", "[planning]\npacket_size_bytes = 32", errors.ErrCodeInvalidPacketSize},
		{"cost tiers", "[costs.length]\ntiers = [{ max = 300, cost = 1 }, { max = 100, cost = 2 }]", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Parse() error = %v, want %s", err, tt.code)
			}
			if !errors.IsConfiguration(err) {
				t.Errorf("IsConfiguration(%v) = false", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Setenv(EnvPath, filepath.Join(dir, "absent.toml"))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(default, missing) = %v", err)
	}
	if cfg.Planning.PacketSizeBytes != 1500 {
		t.Errorf("PacketSizeBytes = %d, want 1500", cfg.Planning.PacketSizeBytes)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load(explicit missing) succeeded")
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[store]\ndir = \"/var/lib/netplan\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Dir != "/var/lib/netplan" || cfg.Store.Backend != BackendFile {
		t.Errorf("Store = %+v", cfg.Store)
	}
}
