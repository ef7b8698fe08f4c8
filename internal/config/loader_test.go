package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SPANMARK_CONFIG", "SPANMARK_ADDR", "SPANMARK_LOG_LEVEL",
		"SPANMARK_MERGE_STRATEGY", "SPANMARK_SOURCE_PRIORITY",
		"SPANMARK_SIMILARITY_FLOOR", "SPANMARK_VERBOSITY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.MergeStrategy != "longest" || !cfg.SourcePriority {
		t.Errorf("merge defaults = %q/%v", cfg.MergeStrategy, cfg.SourcePriority)
	}
	if cfg.SimilarityFloor != 0.3 {
		t.Errorf("SimilarityFloor = %v", cfg.SimilarityFloor)
	}
	if !cfg.UseActions || !cfg.UseLighting || cfg.UseOpenVocab {
		t.Errorf("tier defaults = %v/%v/%v", cfg.UseActions, cfg.UseLighting, cfg.UseOpenVocab)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPANMARK_ADDR", ":9999")
	t.Setenv("SPANMARK_MERGE_STRATEGY", "confidence")
	t.Setenv("SPANMARK_SIMILARITY_FLOOR", "0.45")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.MergeStrategy != "confidence" {
		t.Errorf("MergeStrategy = %q", cfg.MergeStrategy)
	}
	if cfg.SimilarityFloor != 0.45 {
		t.Errorf("SimilarityFloor = %v", cfg.SimilarityFloor)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "spanmark.yaml")
	yaml := "addr: \":7777\"\nlog_level: debug\nuse_openvocab: true\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SPANMARK_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7777" || cfg.LogLevel != "debug" || !cfg.UseOpenVocab {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "spanmark.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7777\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SPANMARK_CONFIG", path)
	t.Setenv("SPANMARK_ADDR", ":6666")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":6666" {
		t.Errorf("Addr = %q, env must beat file", cfg.Addr)
	}
}

func TestLoadRejectsBadStrategy(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPANMARK_MERGE_STRATEGY", "widest")

	if _, err := Load(); err == nil {
		t.Fatal("invalid merge_strategy accepted")
	}
}
