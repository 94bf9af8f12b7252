package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

const (
	PathEnvKey = "LSMC_CONFIG"
	PortEnvKey = "LSMC_PORT"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Pricing    PricingConfig    `toml:"pricing"`
	Simulation SimulationConfig `toml:"simulation"`
}

type ServerConfig struct {
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// PricingConfig holds defaults for requests that leave a field out, plus the
// limits a single request may not exceed
type PricingConfig struct {
	Rate            float64 `toml:"rate"`
	Degree          *int    `toml:"degree"`
	DtConvention    string  `toml:"dt_convention"`
	SparseFitPolicy string  `toml:"sparse_fit_policy"`
	Workers         int     `toml:"workers"`
	PFEQuantile     float64 `toml:"pfe_quantile"`
	MaxPaths        int     `toml:"max_paths"`
	MaxSteps        int     `toml:"max_steps"`
}

// a nil Seed defaults to 1, an explicit 0 is kept
type SimulationConfig struct {
	Seed    *uint64 `toml:"seed"`
	Workers int     `toml:"workers"`
}

// Default is used when no config file can be found
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv reads the file named by LSMC_CONFIG, then the default
// locations, and falls back to built-in defaults when none exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(PathEnvKey)
	if path != "" {
		return Load(path)
	}

	defaultPaths := []string{
		"./configs/lsmc.toml",
		"./lsmc.toml",
		filepath.Join(os.Getenv("HOME"), ".config/lsmc/lsmc.toml"),
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3009
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}

	if c.Pricing.Degree == nil {
		d := 2
		c.Pricing.Degree = &d
	}
	if c.Pricing.DtConvention == "" {
		c.Pricing.DtConvention = "intervals"
	}
	if c.Pricing.SparseFitPolicy == "" {
		c.Pricing.SparseFitPolicy = "fail"
	}
	if c.Pricing.Workers == 0 {
		c.Pricing.Workers = 1
	}
	if c.Pricing.PFEQuantile == 0 {
		c.Pricing.PFEQuantile = 0.95
	}
	if c.Pricing.MaxPaths == 0 {
		c.Pricing.MaxPaths = 200_000
	}
	if c.Pricing.MaxSteps == 0 {
		c.Pricing.MaxSteps = 1_000
	}

	if c.Simulation.Seed == nil {
		seed := uint64(1)
		c.Simulation.Seed = &seed
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(PortEnvKey); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", PortEnvKey, v, err)
		}
		c.Server.Port = port
	}
	return nil
}
