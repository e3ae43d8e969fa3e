package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// Config holds everything the CLI needs to run a generation.
type Config struct {
	InputPath    string  `json:"input_path"`
	LogLevel     string  `json:"log_level"`
	DatabasePath string  `json:"database_path"`
	Corpus       string  `json:"corpus"`
	MaxWords     int     `json:"max_words"`
	Samples      int     `json:"samples"`
	Parallelism  int     `json:"parallelism"`
	Seed         *uint64 `json:"seed,omitempty"`
	OutputPath   string  `json:"output_path"`
	RecordOutput bool    `json:"record_output"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		InputPath:    "green-eggs.txt",
		LogLevel:     "warn",
		DatabasePath: "./data/sundew.db?_journal_mode=WAL&_busy_timeout=5000",
		Corpus:       "",
		MaxWords:     0,
		Samples:      1,
		Parallelism:  4,
		OutputPath:   "",
		RecordOutput: false,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without a file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// parseLogLevel maps a config string to a slog level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
