package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Report   ReportConfig   `yaml:"report"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port               int    `yaml:"port"`
	MetricsPort        int    `yaml:"metrics_port"`
	AdminToken         string `yaml:"admin_token"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

type DatabaseConfig struct {
	// Driver is one of "postgres", "sqlite" or "memory".
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
	Path   string `yaml:"path"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type ScoringConfig struct {
	// ClampOutOfRange pins normalized values to [0,1]. Off by default, which
	// lets raw values outside a declared range push scores past 0 or 100.
	ClampOutOfRange bool `yaml:"clamp_out_of_range"`
}

type ReportConfig struct {
	ChromePath   string `yaml:"chrome_path"`
	PDFTimeoutMs int    `yaml:"pdf_timeout_ms"`
}

type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
	Environment string `yaml:"environment"`
	Insecure    bool   `yaml:"insecure"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) PDFTimeout() time.Duration {
	return time.Duration(c.Report.PDFTimeoutMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerMinute: 120,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "decide.db",
		},
		Report: ReportConfig{
			PDFTimeoutMs: 30000,
		},
		Tracing: TracingConfig{
			ServiceName: "decide",
			Environment: "development",
			Insecure:    true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for the postgres driver")
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Report.PDFTimeoutMs <= 0 {
		return fmt.Errorf("report.pdf_timeout_ms must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DECIDE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("DECIDE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("DECIDE_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("DECIDE_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("DECIDE_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DECIDE_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
		if os.Getenv("DECIDE_DATABASE_DRIVER") == "" {
			cfg.Database.Driver = "postgres"
		}
	}
	if v := os.Getenv("DECIDE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("DECIDE_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("DECIDE_CLAMP_OUT_OF_RANGE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Scoring.ClampOutOfRange = b
		}
	}
	if v := os.Getenv("DECIDE_CHROME_PATH"); v != "" {
		cfg.Report.ChromePath = v
	}
	if v := os.Getenv("DECIDE_PDF_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Report.PDFTimeoutMs = n
		}
	}
	if v := os.Getenv("DECIDE_OTLP_ENDPOINT"); v != "" {
		cfg.Tracing.Endpoint = v
	}
	if v := os.Getenv("DECIDE_ENVIRONMENT"); v != "" {
		cfg.Tracing.Environment = v
	}
	if v := os.Getenv("DECIDE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DECIDE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
