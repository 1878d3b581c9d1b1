package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const configFile = ".sproutrc.yml"

// replConfig is the user-tunable REPL surface, read from ~/.sproutrc.yml.
// Absent keys keep their defaults; a malformed file is reported once and
// ignored entirely.
type replConfig struct {
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
	History      string `yaml:"history"`
	Color        *bool  `yaml:"color"`
}

func defaultReplConfig() replConfig {
	return replConfig{
		Prompt:       "==> ",
		Continuation: "... ",
		History:      ".sprout_history",
	}
}

func (c replConfig) colorEnabled() bool { return c.Color == nil || *c.Color }

// historyPath resolves the history file: relative names live in the home
// directory.
func (c replConfig) historyPath() string {
	if filepath.IsAbs(c.History) {
		return c.History
	}
	return homeJoin(c.History)
}

func parseReplConfig(data []byte) (replConfig, error) {
	cfg := defaultReplConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaultReplConfig(), err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = defaultReplConfig().Prompt
	}
	if cfg.Continuation == "" {
		cfg.Continuation = defaultReplConfig().Continuation
	}
	if cfg.History == "" {
		cfg.History = defaultReplConfig().History
	}
	return cfg, nil
}

// loadReplConfig reads the config at path, or ~/.sproutrc.yml when path is
// empty. A missing file is normal; anything else worth knowing about is
// logged and the defaults win.
func loadReplConfig(path string) replConfig {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return defaultReplConfig()
		}
		path = filepath.Join(home, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("cannot read REPL config", "path", path, "error", err)
		}
		return defaultReplConfig()
	}

	cfg, err := parseReplConfig(data)
	if err != nil {
		slog.Warn("malformed REPL config, using defaults", "path", path, "error", err)
	}
	return cfg
}
