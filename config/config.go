// Package config handles configuration loading for fiindostats.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Fiindo   FiindoConfig   `mapstructure:"fiindo"   yaml:"fiindo"`
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
}

// FiindoConfig holds Fiindo API access settings. The API authenticates by
// account holder name, so first_name and last_name are the credentials.
type FiindoConfig struct {
	BaseURL           string  `mapstructure:"base_url"            yaml:"base_url"`
	FirstName         string  `mapstructure:"first_name"          yaml:"first_name"`
	LastName          string  `mapstructure:"last_name"           yaml:"last_name"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `mapstructure:"burst"               yaml:"burst"`
	TimeoutSec        int     `mapstructure:"timeout_sec"         yaml:"timeout_sec"`
}

// PipelineConfig holds ingestion pipeline settings.
type PipelineConfig struct {
	AllowedIndustries []string `mapstructure:"allowed_industries" yaml:"allowed_industries"`
	SymbolWorkers     int      `mapstructure:"symbol_workers"     yaml:"symbol_workers"`
	SpeedBoost        bool     `mapstructure:"speed_boost"        yaml:"speed_boost"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"     yaml:"host"`
	Port     int    `mapstructure:"port"     yaml:"port"`
	User     string `mapstructure:"user"     yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Name     string `mapstructure:"name"     yaml:"name"`
	SSLMode  string `mapstructure:"sslmode"  yaml:"sslmode"`
}

// ServerConfig holds HTTP API server settings.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config.yaml (working directory)
//  2. ~/.fiindostats/config.yaml (home directory)
//  3. /etc/fiindostats/config.yaml (system)
//
// Environment variables override config file values.
// Format: FIINDOSTATS_<SECTION>_<KEY>, e.g., FIINDOSTATS_DATABASE_PASSWORD
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(homeDir(), ".fiindostats"))
	v.AddConfigPath("/etc/fiindostats")

	v.SetEnvPrefix("FIINDOSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not existing is fine, defaults + env vars still apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("FIINDOSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Fiindo API defaults
	v.SetDefault("fiindo.base_url", "https://api.test.fiindo.com/api/v1")
	v.SetDefault("fiindo.requests_per_second", 5)
	v.SetDefault("fiindo.burst", 10)
	v.SetDefault("fiindo.timeout_sec", 30)

	// Pipeline defaults
	v.SetDefault("pipeline.allowed_industries", []string{
		"Banks - Diversified",
		"Software - Application",
		"Consumer Electronics",
	})
	v.SetDefault("pipeline.symbol_workers", 4)
	v.SetDefault("pipeline.speed_boost", true)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "fiindostats")
	v.SetDefault("database.sslmode", "disable")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if name := os.Getenv("FIINDOSTATS_FIINDO_FIRST_NAME"); name != "" {
		cfg.Fiindo.FirstName = name
	}
	if name := os.Getenv("FIINDOSTATS_FIINDO_LAST_NAME"); name != "" {
		cfg.Fiindo.LastName = name
	}
	if password := os.Getenv("FIINDOSTATS_DATABASE_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
