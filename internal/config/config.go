// Package config defines process configuration and its loading order:
// defaults, then an optional YAML file, then SPANMARK_-prefixed environment
// variables.
package config

import "time"

// Config holds all spanmark configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the HTTP listen address for serve mode.
	Addr string `koanf:"addr"`

	// VocabPath optionally overrides the embedded closed vocabulary.
	VocabPath string `koanf:"vocab_path"`

	// Embedder settings. An empty model path selects the deterministic
	// hashing fallback.
	ModelPath       string `koanf:"model_path"`
	ModelVocabPath  string `koanf:"model_vocab_path"`
	OnnxLibraryPath string `koanf:"onnx_library_path"`

	// SimilarityFloor is the minimum prototype cosine similarity for the
	// action and lighting tiers.
	SimilarityFloor float64 `koanf:"similarity_floor"`

	// Open-vocabulary worker settings. An empty command disables the tier.
	WorkerCommand      []string `koanf:"worker_command"`
	WorkerModelPath    string   `koanf:"worker_model_path"`
	OpenVocabThreshold float64  `koanf:"openvocab_threshold"`
	OpenVocabTimeoutMS int      `koanf:"openvocab_timeout_ms"`

	// Per-tier defaults; overridable per extraction call.
	UseOpenVocab bool `koanf:"use_openvocab"`
	UseActions   bool `koanf:"use_actions"`
	UseLighting  bool `koanf:"use_lighting"`

	// Merge tie-break configuration.
	MergeStrategy  string `koanf:"merge_strategy"`  // "longest" or "confidence"
	SourcePriority bool   `koanf:"source_priority"` // exact tiers beat model beats heuristics

	// Output destination for extract mode.
	Output     string `koanf:"output"` // stdout, file, webhook
	OutputPath string `koanf:"output_path"`
	WebhookURL string `koanf:"webhook_url"`
	Verbosity  string `koanf:"verbosity"` // minimal, standard, full
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8080",
		SimilarityFloor:    0.3,
		OpenVocabThreshold: 0.5,
		OpenVocabTimeoutMS: 5000,
		UseOpenVocab:       false,
		UseActions:         true,
		UseLighting:        true,
		MergeStrategy:      "longest",
		SourcePriority:     true,
		Output:             "stdout",
		Verbosity:          "standard",
	}
}

// OpenVocabTimeout returns the worker timeout as a duration.
func (c *Config) OpenVocabTimeout() time.Duration {
	return time.Duration(c.OpenVocabTimeoutMS) * time.Millisecond
}
