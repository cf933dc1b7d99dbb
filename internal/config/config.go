package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v4"
)

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

type Config struct {
	APIBaseURL string        `yaml:"api_base_url"`
	UserID     string        `yaml:"user_id"`
	Timezone   string        `yaml:"timezone"`
	Server     ServerConfig  `yaml:"server"`
	Storage    StorageConfig `yaml:"storage"`
	Log        LogConfig     `yaml:"log"`
	Nudge      NudgeConfig   `yaml:"nudge"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type NudgeConfig struct {
	ResendAPIKey string `yaml:"resend_api_key"`
	From         string `yaml:"from"`
	Email        string `yaml:"email"`
}

func Default() Config {
	return Config{
		APIBaseURL: "http://localhost:8080",
		UserID:     "default",
		Timezone:   "Local",
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"http://localhost:3000"},
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{Driver: DriverBolt, Path: "habits.db"},
		Log:     LogConfig{Level: "info", Format: "text"},
		Nudge:   NudgeConfig{From: "onboarding@resend.dev"},
	}
}

// Path is where Load looks for the config file: $HABITS_CONFIG or ./config.yaml.
func Path() string {
	return getenv("HABITS_CONFIG", "config.yaml")
}

// Load reads the config file over the defaults, then applies HABITS_* overrides.
// A missing file is only an error when HABITS_CONFIG names it explicitly.
func Load() (*Config, error) {
	cfg := Default()

	path := Path()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && os.Getenv("HABITS_CONFIG") == "":
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.APIBaseURL = getenv("HABITS_API_BASE", c.APIBaseURL)
	c.UserID = getenv("HABITS_USER_ID", c.UserID)
	c.Timezone = getenv("HABITS_TIMEZONE", c.Timezone)
	c.Server.Addr = getenv("HABITS_ADDR", c.Server.Addr)
	c.Storage.Driver = getenv("HABITS_DB_DRIVER", c.Storage.Driver)
	c.Storage.Path = getenv("HABITS_DB_PATH", c.Storage.Path)
	c.Log.Level = getenv("HABITS_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getenv("HABITS_LOG_FORMAT", c.Log.Format)
	c.Nudge.ResendAPIKey = getenv("HABITS_RESEND_API_KEY", c.Nudge.ResendAPIKey)
	c.Nudge.Email = getenv("HABITS_NOTIFY_EMAIL", c.Nudge.Email)
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverBolt, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q: want %s or %s", c.Storage.Driver, DriverBolt, DriverSQLite)
	}
	if c.UserID == "" {
		return fmt.Errorf("user_id must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
