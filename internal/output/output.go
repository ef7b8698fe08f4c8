// Package output defines where extraction results go. Sinks receive whole
// extractions (one document's spans plus stats); the downstream LLM-fallback
// stage is just another sink, fed through the webhook output.
package output

import (
	"context"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// Output is a destination for extraction results.
type Output interface {
	Write(ctx context.Context, ex model.Extraction) error
	Close() error
}

// Verbosity controls which fields survive formatting.
type Verbosity string

const (
	// Minimal keeps only the span list: no echo of the input text, no stats.
	Minimal Verbosity = "minimal"
	// Standard keeps the text and spans but drops stats.
	Standard Verbosity = "standard"
	// Full keeps everything.
	Full Verbosity = "full"
)

// ParseVerbosity maps a config string to a Verbosity, defaulting to Standard.
func ParseVerbosity(s string) Verbosity {
	switch Verbosity(s) {
	case Minimal, Standard, Full:
		return Verbosity(s)
	default:
		return Standard
	}
}

// Format returns a copy of the extraction with fields stripped according to
// verbosity. Stripped fields are zeroed and omitted from JSON.
func Format(ex model.Extraction, v Verbosity) model.Extraction {
	switch v {
	case Minimal:
		ex.Text = ""
		ex.Stats = model.Stats{}
	case Standard:
		ex.Stats = model.Stats{}
	}
	return ex
}
