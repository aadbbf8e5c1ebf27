package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const configFileEnv = "CATALOG_CONFIG_FILE"

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	StaticDir  string `yaml:"static_dir"`

	RootURL string `yaml:"root_url"`

	CacheLiveNavigation string `yaml:"cache_live_navigation"`

	APIBaseURL string        `yaml:"api_base_url"`
	APITimeout time.Duration `yaml:"api_timeout"`

	DBPath   string `yaml:"db_path"`
	SeedFile string `yaml:"seed_file"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func Defaults() Config {
	return Config{
		ListenAddr: ":8080",
		StaticDir:  "internal/web/static",
		APIBaseURL: "http://localhost:8080",
		APITimeout: 10 * time.Second,
		DBPath:     "catalog.db",
		LogLevel:   "info",
		LogFormat:  "json",
	}
}

// Load reads the optional YAML file named by CATALOG_CONFIG_FILE and then
// applies environment overrides on top of it.
func Load() (Config, error) {
	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv(configFileEnv)); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.ListenAddr = getEnv("CATALOG_LISTEN_ADDR", cfg.ListenAddr)
	cfg.StaticDir = getEnv("CATALOG_STATIC_DIR", cfg.StaticDir)
	cfg.RootURL = getEnv("CATALOG_ROOT_URL", cfg.RootURL)
	cfg.CacheLiveNavigation = strings.TrimSpace(getEnv("CATALOG_CACHE_LIVE_NAV", cfg.CacheLiveNavigation))
	cfg.APIBaseURL = getEnv("CATALOG_API_BASE_URL", cfg.APIBaseURL)
	cfg.APITimeout = getEnvDuration("CATALOG_API_TIMEOUT", cfg.APITimeout)
	cfg.SeedFile = getEnv("CATALOG_SEED_FILE", cfg.SeedFile)
	cfg.LogLevel = getEnv("CATALOG_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("CATALOG_LOG_FORMAT", cfg.LogFormat)

	// An explicitly empty CATALOG_DB_PATH disables the local API.
	if value, ok := os.LookupEnv("CATALOG_DB_PATH"); ok {
		cfg.DBPath = strings.TrimSpace(value)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}
	if cfg.APITimeout <= 0 {
		return errors.New("api_timeout must be positive")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}
