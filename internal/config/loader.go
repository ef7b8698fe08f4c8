package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New)
//  2. YAML file named by SPANMARK_CONFIG, if set
//  3. environment variables with prefix SPANMARK_
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SPANMARK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// SPANMARK_MERGE_STRATEGY -> merge_strategy; underscores match the
	// koanf tags on the struct.
	envProvider := env.Provider("SPANMARK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "spanmark_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	switch cfg.MergeStrategy {
	case "longest", "confidence":
	default:
		return nil, fmt.Errorf("config: merge_strategy must be longest or confidence, got %q", cfg.MergeStrategy)
	}
	switch cfg.Verbosity {
	case "minimal", "standard", "full":
	default:
		return nil, fmt.Errorf("config: verbosity must be minimal, standard, or full, got %q", cfg.Verbosity)
	}
	return &cfg, nil
}
