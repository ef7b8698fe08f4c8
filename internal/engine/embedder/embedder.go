// Package embedder produces vector embeddings for short phrases. The real
// backend is an ONNX sentence encoder; when no model is configured the
// deterministic token-hashing fallback keeps the semantic tiers running with
// lexical-overlap similarity instead of failing the pipeline.
package embedder

import "fmt"

// Embedder produces vector embeddings from text.
type Embedder interface {
	Embed(text string) ([]float32, error)
	EmbedBatch(texts []string) ([][]float32, error)
	Close() error
}

// Config selects and locates the embedding backend.
type Config struct {
	ModelPath   string // path to the ONNX model; empty selects the hashing fallback
	VocabPath   string // WordPiece vocab.txt for the ONNX tokenizer
	LibraryPath string // optional explicit libonnxruntime.so path
}

// New creates the configured embedder. The ONNX pipeline is:
// tokenize → inference → mean pool → L2 normalize.
func New(cfg Config) (Embedder, error) {
	if cfg.ModelPath == "" {
		return NewHashing(hashDim), nil
	}
	e, err := newONNX(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	return e, nil
}
