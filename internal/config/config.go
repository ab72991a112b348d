package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DateLayout is the format of calendar.start.
const DateLayout = "2006-01-02"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Calendar  CalendarConfig  `yaml:"calendar"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	// URL, when set, is used verbatim instead of the discrete fields.
	URL string `yaml:"dsn"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// CalendarConfig anchors exported events. Start is the Monday of week 1.
type CalendarConfig struct {
	Start string `yaml:"start"`
	Hour  int    `yaml:"hour"`
}

// DSN returns a PostgreSQL connection string.
func (d StorageConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	port := d.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, port, d.Name, sslmode)
}

// StartDate parses calendar.start. An empty value yields the zero time.
func (c CalendarConfig) StartDate() (time.Time, error) {
	if c.Start == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(DateLayout, c.Start, time.Local)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Host: "127.0.0.1", Port: 8080},
		Storage:   StorageConfig{Driver: DriverSQLite, Path: "clab.db"},
		Tailscale: TailscaleConfig{Hostname: "clab"},
		Calendar:  CalendarConfig{Hour: 7},
	}
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. Env vars use the prefix CLAB_:
//
//	CLAB_SERVER_HOST, CLAB_SERVER_PORT,
//	CLAB_STORAGE_DRIVER, CLAB_STORAGE_PATH, CLAB_STORAGE_DSN,
//	CLAB_AUTH_API_KEY,
//	CLAB_TAILSCALE_ENABLED, CLAB_TAILSCALE_HOSTNAME,
//	CLAB_CALENDAR_START
//
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLAB_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("CLAB_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CLAB_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("CLAB_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("CLAB_STORAGE_DSN"); v != "" {
		cfg.Storage.URL = v
	}
	if v := os.Getenv("CLAB_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("CLAB_TAILSCALE_ENABLED"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = on
		}
	}
	if v := os.Getenv("CLAB_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("CLAB_CALENDAR_START"); v != "" {
		cfg.Calendar.Start = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for sqlite")
		}
	case DriverPostgres:
		if c.Storage.URL == "" && (c.Storage.Host == "" || c.Storage.Name == "" || c.Storage.User == "") {
			return fmt.Errorf("storage.dsn or storage.host, name and user are required for postgres")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if _, err := c.Calendar.StartDate(); err != nil {
		return fmt.Errorf("calendar.start must be YYYY-MM-DD: %w", err)
	}
	if c.Calendar.Hour < 0 || c.Calendar.Hour > 23 {
		return fmt.Errorf("calendar.hour must be between 0 and 23")
	}
	return nil
}
