package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the vine server configuration, loaded from a YAML file.
type Config struct {
	Listen  string        `yaml:"listen"`
	Log     LogConfig     `yaml:"log"`
	Catalog CatalogConfig `yaml:"catalog"`
	Store   StoreConfig   `yaml:"store"`
	Quiz    QuizConfig    `yaml:"quiz"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// CatalogConfig selects where questions, products, rules, and restrictions
// are read from.
type CatalogConfig struct {
	Backend  string `yaml:"backend"` // file, mongo
	Path     string `yaml:"path"`    // file backend
	URI      string `yaml:"uri"`     // mongo backend
	Database string `yaml:"database"`
}

// StoreConfig selects where sessions are kept.
type StoreConfig struct {
	Backend  string   `yaml:"backend"` // memory, redis
	Addr     string   `yaml:"addr"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	TTL      Duration `yaml:"ttl"`
	Lock     bool     `yaml:"lock"` // distributed lock, redis backend only
}

// Duration lets YAML carry values like "30s" or "24h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type QuizConfig struct {
	// StartQuestion pins the question new sessions open at. Empty means
	// the first published question in catalog order.
	StartQuestion string `yaml:"start_question"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen: ":8080",
		Log:    LogConfig{Level: "info", Format: "text"},
		Catalog: CatalogConfig{
			Backend: "file",
			Path:    "quiz.yaml",
		},
		Store: StoreConfig{
			Backend: "memory",
		},
	}
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects backend names the wiring does not know.
func (c Config) Validate() error {
	switch c.Catalog.Backend {
	case "file", "mongo":
	default:
		return fmt.Errorf("unknown catalog backend %q", c.Catalog.Backend)
	}
	switch c.Store.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Catalog.Backend == "mongo" && c.Catalog.URI == "" {
		return fmt.Errorf("catalog backend mongo requires a uri")
	}
	if c.Store.Backend == "redis" && c.Store.Addr == "" {
		return fmt.Errorf("store backend redis requires an addr")
	}
	if c.Store.Lock && c.Store.Backend != "redis" {
		return fmt.Errorf("distributed locking requires the redis store backend")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
