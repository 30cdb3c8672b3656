// Package config loads the synthesizer CLI's settings from an
// optional YAML file, overridable by environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the CLI needs to run a synthesis.
type Config struct {
	// MaxSketchDequeues bounds the sketch search, per pkg/synth.
	MaxSketchDequeues int `yaml:"max_sketch_dequeues"`

	// CacheDir, if non-empty, backs the query cache with Badger at
	// this path instead of the in-process LRU.
	CacheDir string `yaml:"cache_dir"`

	// CacheSize bounds the in-process LRU cache used when CacheDir is
	// empty.
	CacheSize int `yaml:"cache_size"`

	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the settings a run uses when nothing overrides them.
func Default() Config {
	return Config{
		MaxSketchDequeues: 10,
		CacheSize:         256,
		LogLevel:          "info",
	}
}

// Load reads Default(), then overlays path (if non-empty and
// present) and then the environment, so CYPHERSYNTH_* env vars always
// win over the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Missing config file is not an error: defaults plus env apply.
		default:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := getEnvInt("CYPHERSYNTH_MAX_SKETCH_DEQUEUES"); v != 0 {
		c.MaxSketchDequeues = v
	}
	if v := os.Getenv("CYPHERSYNTH_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := getEnvInt("CYPHERSYNTH_CACHE_SIZE"); v != 0 {
		c.CacheSize = v
	}
	if v := os.Getenv("CYPHERSYNTH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func getEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// Validate rejects settings that would make a run meaningless rather
// than failing deep inside the synthesizer.
func (c Config) Validate() error {
	if c.MaxSketchDequeues <= 0 {
		return fmt.Errorf("max_sketch_dequeues must be positive, got %d", c.MaxSketchDequeues)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
