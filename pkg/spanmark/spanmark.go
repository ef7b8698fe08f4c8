package spanmark

import (
	"context"
	"fmt"

	"github.com/bharm16/prompt-builder-sub009/internal/engine"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/closedvocab"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/embedder"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/heuristic"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/merge"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/openvocab"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/patterns"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/semantic"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/taxonomy"
	"github.com/bharm16/prompt-builder-sub009/internal/vocab"
)

// Spanmark is a taxonomy span extraction engine. Safe for concurrent use.
type Spanmark struct {
	engine   *engine.Engine
	embedder embedder.Embedder
	taxonomy *taxonomy.Store
}

// New creates a Spanmark instance. With an ONNX model configured this loads
// the encoder and is an expensive operation; create once, reuse across
// requests.
func New(opts ...Option) (*Spanmark, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	tax := taxonomy.Default()

	v := vocab.Default(tax)
	if o.vocabFile != "" {
		v = vocab.LoadFile(o.vocabFile, tax)
	}

	modelPath, modelVocab, libPath := resolvePaths(o)
	emb, err := embedder.New(embedder.Config{
		ModelPath:   modelPath,
		VocabPath:   modelVocab,
		LibraryPath: libPath,
	})
	if err != nil {
		return nil, fmt.Errorf("spanmark: %w", err)
	}

	actions := heuristic.NewActions(
		semantic.New(emb, semantic.ActionClusters(), o.similarityFloor), o.similarityFloor)
	lighting := heuristic.NewLighting(
		semantic.New(emb, semantic.LightingClusters(), o.similarityFloor), o.similarityFloor)

	var open *openvocab.Client
	if len(o.workerCommand) > 0 {
		open = openvocab.NewClient(openvocab.Config{
			Command:   o.workerCommand,
			ModelPath: o.workerModelPath,
			Threshold: o.workerThreshold,
			Timeout:   o.workerTimeout,
		}, openvocab.DefaultMapping(tax))
	}

	merger := merge.New(tax, merge.Options{
		SourcePriority: o.sourcePriority,
		Strategy:       o.mergeStrategy,
	})

	eng := engine.New(
		closedvocab.New(v),
		patterns.New(),
		actions,
		lighting,
		open,
		merger,
		engine.Options{
			UseOpenVocab: open != nil,
			UseActions:   o.useActions,
			UseLighting:  o.useLighting,
		},
	)

	return &Spanmark{engine: eng, embedder: emb, taxonomy: tax}, nil
}

// Extract labels one prompt text.
func (s *Spanmark) Extract(ctx context.Context, text string) (Result, error) {
	res, err := s.engine.Extract(ctx, text, nil)
	if err != nil {
		return Result{}, err
	}
	return resultFromInternal(res), nil
}

// ExtractBatch labels multiple prompt texts.
func (s *Spanmark) ExtractBatch(ctx context.Context, texts []string) ([]Result, error) {
	results := make([]Result, len(texts))
	for i, t := range texts {
		res, err := s.engine.Extract(ctx, t, nil)
		if err != nil {
			return nil, err
		}
		results[i] = resultFromInternal(res)
	}
	return results, nil
}

// Roles returns every valid taxonomy role identifier in sorted order.
// Read-only; consumers can inspect the label space but not modify it.
func (s *Spanmark) Roles() []string {
	return s.taxonomy.Roles()
}

// Close releases engine resources (the open-vocabulary worker, the ONNX
// runtime). Must be called when the instance is no longer needed.
func (s *Spanmark) Close() error {
	engErr := s.engine.Close()
	if err := s.embedder.Close(); err != nil {
		return err
	}
	return engErr
}

// resultFromInternal converts the internal result to the public type.
func resultFromInternal(res engine.Result) Result {
	spans := make([]Span, len(res.Spans))
	for i, sp := range res.Spans {
		spans[i] = Span{
			Text:       sp.Text,
			Role:       sp.Role,
			Confidence: sp.Confidence,
			Start:      sp.Start,
			End:        sp.End,
		}
	}
	tiers := make([]TierStats, len(res.Stats.Tiers))
	for i, t := range res.Stats.Tiers {
		tiers[i] = TierStats{
			Tier:   string(t.Source),
			Count:  t.Count,
			Millis: t.Millis,
		}
	}
	return Result{Spans: spans, Tiers: tiers, TotalMillis: res.Stats.TotalMillis}
}
