// Package config loads application settings: compiled-in defaults, then
// an optional YAML file, then MENTA_* environment variables, each layer
// overriding the previous one.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds everything tunable from outside the binary.
type Config struct {
	DBPath string `koanf:"db_path"`
	Debug  bool   `koanf:"debug"`
	Review Review `koanf:"review"`
}

// Review holds the review policy knobs.
type Review struct {
	// RejectedState is where a rejected card returns to: "planned" or
	// "in_progress".
	RejectedState string `koanf:"rejected_state"`
	// RequiredApprovals is how many approved reviews a card needs before
	// it is approved for good.
	RequiredApprovals int `koanf:"required_approvals"`
}

// DefaultPath is the config file location unless overridden.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".menta", "config.yaml"), nil
}

func defaults() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DBPath: filepath.Join(home, ".menta", "menta.db"),
		Review: Review{
			RejectedState:     "planned",
			RequiredApprovals: 1,
		},
	}, nil
}

// Load reads the config from path (skipped silently if the file does not
// exist) and the environment. MENTA_REVIEW_REQUIRED_APPROVALS=2 maps to
// review.required_approvals.
func Load(path string) (Config, error) {
	cfg, err := defaults()
	if err != nil {
		return Config{}, fmt.Errorf("resolve defaults: %w", err)
	}

	k := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}
	if err := k.Load(env.Provider("MENTA_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "MENTA_"))
		if after, ok := strings.CutPrefix(key, "review_"); ok {
			return "review." + after
		}
		return key
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
