package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Clark-Hu/moviedash/internal/dataset"
)

// Config captures all runtime configuration. Values come from defaults, then
// an optional TOML file, then environment variables.
type Config struct {
	Port             string   `toml:"port"`
	DatasetPath      string   `toml:"dataset_path"`
	Encodings        []string `toml:"encodings"`
	TopN             int      `toml:"top_n"`
	GenreLimit       int      `toml:"genre_limit"`
	HistogramBins    int      `toml:"histogram_bins"`
	ReadTimeoutSecs  int      `toml:"read_timeout_secs"`
	WriteTimeoutSecs int      `toml:"write_timeout_secs"`
	IdleTimeoutSecs  int      `toml:"idle_timeout_secs"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:             "8080",
		DatasetPath:      "IMDb Movies India.csv",
		Encodings:        append([]string(nil), dataset.DefaultEncodings...),
		TopN:             10,
		GenreLimit:       10,
		HistogramBins:    20,
		ReadTimeoutSecs:  15,
		WriteTimeoutSecs: 15,
		IdleTimeoutSecs:  60,
	}
}

// Load reads configuration, applying defaults and validation. path may be
// empty, in which case only defaults and the environment are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		payload, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		var file Config
		if err := toml.Unmarshal(payload, &file); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.merge(file)
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatasetPath = getEnv("DATASET_PATH", cfg.DatasetPath)
	cfg.Encodings = getEnvList("DATASET_ENCODINGS", cfg.Encodings)
	cfg.TopN = getEnvInt("TOP_N", cfg.TopN)
	cfg.GenreLimit = getEnvInt("GENRE_LIMIT", cfg.GenreLimit)
	cfg.HistogramBins = getEnvInt("HISTOGRAM_BINS", cfg.HistogramBins)
	cfg.ReadTimeoutSecs = getEnvInt("SERVER_READ_TIMEOUT", cfg.ReadTimeoutSecs)
	cfg.WriteTimeoutSecs = getEnvInt("SERVER_WRITE_TIMEOUT", cfg.WriteTimeoutSecs)
	cfg.IdleTimeoutSecs = getEnvInt("SERVER_IDLE_TIMEOUT", cfg.IdleTimeoutSecs)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DatasetPath) == "" {
		return errors.New("DATASET_PATH is required")
	}
	if len(c.Encodings) == 0 {
		return errors.New("DATASET_ENCODINGS must list at least one encoding")
	}
	if c.TopN <= 0 {
		return errors.New("TOP_N must be positive")
	}
	if c.GenreLimit <= 0 {
		return errors.New("GENRE_LIMIT must be positive")
	}
	if c.HistogramBins <= 0 {
		return errors.New("HISTOGRAM_BINS must be positive")
	}
	if c.ReadTimeoutSecs < 0 || c.WriteTimeoutSecs < 0 || c.IdleTimeoutSecs < 0 {
		return errors.New("server timeouts must be non-negative")
	}
	return nil
}

// merge copies every field set in other onto c.
func (c *Config) merge(other Config) {
	if other.Port != "" {
		c.Port = other.Port
	}
	if other.DatasetPath != "" {
		c.DatasetPath = other.DatasetPath
	}
	if len(other.Encodings) > 0 {
		c.Encodings = other.Encodings
	}
	if other.TopN != 0 {
		c.TopN = other.TopN
	}
	if other.GenreLimit != 0 {
		c.GenreLimit = other.GenreLimit
	}
	if other.HistogramBins != 0 {
		c.HistogramBins = other.HistogramBins
	}
	if other.ReadTimeoutSecs != 0 {
		c.ReadTimeoutSecs = other.ReadTimeoutSecs
	}
	if other.WriteTimeoutSecs != 0 {
		c.WriteTimeoutSecs = other.WriteTimeoutSecs
	}
	if other.IdleTimeoutSecs != 0 {
		c.IdleTimeoutSecs = other.IdleTimeoutSecs
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
