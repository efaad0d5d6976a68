package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Feeds struct {
		BaseURL      string        `yaml:"base_url"`
		KnowledgeURL string        `yaml:"knowledge_url"`
		Timeout      time.Duration `yaml:"timeout"`
		CacheTTL     struct {
			Market      time.Duration `yaml:"market"`
			Macro       time.Duration `yaml:"macro"`
			TurkeyMacro time.Duration `yaml:"turkey_macro"`
			Slow        time.Duration `yaml:"slow"`
		} `yaml:"cache_ttl"`
	} `yaml:"feeds"`
	Poll struct {
		BaseInterval time.Duration `yaml:"base_interval"`
	} `yaml:"poll"`
	Scorecard struct {
		ThresholdHigh float64 `yaml:"threshold_high"`
		ThresholdLow  float64 `yaml:"threshold_low"`
	} `yaml:"scorecard"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Archive struct {
		Backend string `yaml:"backend"` // sqlite, kafka or clickhouse
		Kafka   struct {
			Brokers      []string      `yaml:"brokers"`
			Topic        string        `yaml:"topic"`
			Compression  string        `yaml:"compression"`
			RequiredAcks int           `yaml:"required_acks"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
		} `yaml:"kafka"`
		ClickHouse struct {
			Host        string        `yaml:"host"`
			Port        int           `yaml:"port"`
			Database    string        `yaml:"database"`
			User        string        `yaml:"user"`
			Password    string        `yaml:"password"`
			DialTimeout time.Duration `yaml:"dial_timeout"`
		} `yaml:"clickhouse"`
	} `yaml:"archive"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FEEDS_BASE_URL"); v != "" {
		c.Feeds.BaseURL = v
	}
	if v := os.Getenv("ARCHIVE_BACKEND"); v != "" {
		c.Archive.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Archive.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Feeds.Timeout == 0 {
		c.Feeds.Timeout = 15 * time.Second
	}
	if c.Poll.BaseInterval == 0 {
		c.Poll.BaseInterval = 15 * time.Second
	}
	if c.Scorecard.ThresholdHigh == 0 && c.Scorecard.ThresholdLow == 0 {
		c.Scorecard.ThresholdHigh = 25
		c.Scorecard.ThresholdLow = -25
	}
	if c.Archive.Backend == "" {
		c.Archive.Backend = "sqlite"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "terminal.db"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Feeds.BaseURL == "" {
		return fmt.Errorf("feeds.base_url is required")
	}
	switch c.Archive.Backend {
	case "sqlite", "kafka", "clickhouse":
	default:
		return fmt.Errorf("archive.backend must be 'sqlite', 'kafka' or 'clickhouse', got '%s'", c.Archive.Backend)
	}
	if c.Archive.Backend == "kafka" && len(c.Archive.Kafka.Brokers) == 0 {
		return fmt.Errorf("archive.kafka.brokers is required for the kafka backend")
	}
	if c.Archive.Backend == "clickhouse" && c.Archive.ClickHouse.Host == "" {
		return fmt.Errorf("archive.clickhouse.host is required for the clickhouse backend")
	}
	if c.Scorecard.ThresholdHigh <= c.Scorecard.ThresholdLow {
		return fmt.Errorf("scorecard.threshold_high must exceed threshold_low")
	}
	return nil
}
