package spanmark

import (
	"path/filepath"
	"time"
)

type options struct {
	modelDir        string
	modelPath       string
	modelVocabPath  string
	libraryPath     string
	vocabFile       string
	similarityFloor float64
	workerCommand   []string
	workerModelPath string
	workerThreshold float64
	workerTimeout   time.Duration
	mergeStrategy   string
	sourcePriority  bool
	useActions      bool
	useLighting     bool
}

// Option configures a Spanmark instance.
type Option func(*options)

// WithModelDir sets the directory containing the sentence-encoder files.
// Expects: model_quantized.onnx, vocab.txt.
func WithModelDir(dir string) Option {
	return func(o *options) {
		o.modelDir = dir
	}
}

// WithModelPaths sets explicit paths for each encoder file. library may be
// empty; libonnxruntime.so is then looked up next to the model.
func WithModelPaths(model, vocab, library string) Option {
	return func(o *options) {
		o.modelPath = model
		o.modelVocabPath = vocab
		o.libraryPath = library
	}
}

// WithVocabFile overrides the embedded closed vocabulary with a YAML file.
func WithVocabFile(path string) Option {
	return func(o *options) {
		o.vocabFile = path
	}
}

// WithSimilarityFloor sets the minimum prototype cosine similarity for the
// action and lighting tiers. Default: 0.3.
func WithSimilarityFloor(f float64) Option {
	return func(o *options) {
		o.similarityFloor = f
	}
}

// WithWorker enables the open-vocabulary tier, spawning command as the
// inference worker process.
func WithWorker(command []string, modelPath string) Option {
	return func(o *options) {
		o.workerCommand = command
		o.workerModelPath = modelPath
	}
}

// WithWorkerThreshold sets the raw-score threshold below which worker
// detections are dropped. Default: 0.5.
func WithWorkerThreshold(t float64) Option {
	return func(o *options) {
		o.workerThreshold = t
	}
}

// WithWorkerTimeout sets the per-request worker timeout. Default: 5s.
func WithWorkerTimeout(d time.Duration) Option {
	return func(o *options) {
		o.workerTimeout = d
	}
}

// WithMergeStrategy sets the overlap tie-break: strategy is "longest" or
// "confidence"; sourcePriority makes exact tiers beat model and heuristic
// spans first. Defaults: "longest", true.
func WithMergeStrategy(strategy string, sourcePriority bool) Option {
	return func(o *options) {
		o.mergeStrategy = strategy
		o.sourcePriority = sourcePriority
	}
}

// WithoutActions disables the verb-anchor action tier.
func WithoutActions() Option {
	return func(o *options) {
		o.useActions = false
	}
}

// WithoutLighting disables the lighting-noun tier.
func WithoutLighting() Option {
	return func(o *options) {
		o.useLighting = false
	}
}

func defaultOptions() options {
	return options{
		similarityFloor: 0.3,
		workerThreshold: 0.5,
		workerTimeout:   5 * time.Second,
		mergeStrategy:   "longest",
		sourcePriority:  true,
		useActions:      true,
		useLighting:     true,
	}
}

// resolvePaths determines the encoder file paths from the configured
// options. Explicit paths take precedence over modelDir; no modelDir means
// the hashing fallback.
func resolvePaths(o options) (model, vocab, library string) {
	if o.modelPath != "" {
		return o.modelPath, o.modelVocabPath, o.libraryPath
	}
	if o.modelDir == "" {
		return "", "", ""
	}
	return filepath.Join(o.modelDir, "model_quantized.onnx"),
		filepath.Join(o.modelDir, "vocab.txt"),
		""
}
