// Package engine orchestrates the extraction tiers and the merge pass. One
// Engine is built at process start and shared; Extract itself is stateless,
// so concurrent calls need no coordination.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/bharm16/prompt-builder-sub009/internal/engine/closedvocab"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/heuristic"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/merge"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/openvocab"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/patterns"
	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// Options are the per-call tier toggles. The zero value is not meaningful;
// start from the engine's configured defaults.
type Options struct {
	UseOpenVocab bool `json:"useOpenVocab"`
	UseActions   bool `json:"useActions"`
	UseLighting  bool `json:"useLighting"`
}

// Result is the outcome of one extraction: the final spans with provenance
// stripped, plus per-tier observability stats.
type Result struct {
	Spans []model.Span `json:"spans"`
	Stats model.Stats  `json:"stats"`
}

// Engine holds the compiled tiers. All fields are read-only after New.
type Engine struct {
	closed   *closedvocab.Matcher
	patterns *patterns.Matcher
	actions  *heuristic.Actions
	lighting *heuristic.Lighting
	open     *openvocab.Client // nil when the tier is not configured
	merger   *merge.Merger
	defaults Options
}

// New assembles an engine from its tiers. open may be nil; the open-vocab
// tier is then skipped regardless of options.
func New(
	closed *closedvocab.Matcher,
	pat *patterns.Matcher,
	actions *heuristic.Actions,
	lighting *heuristic.Lighting,
	open *openvocab.Client,
	merger *merge.Merger,
	defaults Options,
) *Engine {
	return &Engine{
		closed:   closed,
		patterns: pat,
		actions:  actions,
		lighting: lighting,
		open:     open,
		merger:   merger,
		defaults: defaults,
	}
}

// Defaults returns the engine's configured default options.
func (e *Engine) Defaults() Options {
	return e.defaults
}

// Extract runs every enabled tier over text and merges the candidates.
// Tier 2 failures are logged and contribute zero candidates; they never fail
// the call.
func (e *Engine) Extract(ctx context.Context, text string, opts *Options) (Result, error) {
	if opts == nil {
		o := e.defaults
		opts = &o
	}
	began := time.Now()

	var all []model.Candidate
	var stats model.Stats

	runTier := func(source model.Source, f func() []model.Candidate) {
		start := time.Now()
		cands := f()
		all = append(all, cands...)
		stats.Tiers = append(stats.Tiers, model.TierStats{
			Source: source,
			Count:  len(cands),
			Millis: float64(time.Since(start).Microseconds()) / 1000,
		})
	}

	runTier(model.SourceClosedVocab, func() []model.Candidate {
		return e.closed.Match(text)
	})
	runTier(model.SourcePattern, func() []model.Candidate {
		return e.patterns.Match(text)
	})
	if opts.UseActions {
		runTier(model.SourceAction, func() []model.Candidate {
			return e.actions.Extract(text)
		})
	}
	if opts.UseLighting {
		runTier(model.SourceLighting, func() []model.Candidate {
			return e.lighting.Extract(text)
		})
	}
	if opts.UseOpenVocab && e.open != nil {
		runTier(model.SourceOpenVocab, func() []model.Candidate {
			cands, err := e.open.Extract(ctx, text)
			if err != nil {
				slog.Warn("open-vocabulary tier failed", "error", err)
				return nil
			}
			return cands
		})
	}

	merged := e.merger.Merge(text, all)
	spans := make([]model.Span, len(merged))
	for i, c := range merged {
		spans[i] = c.Public()
	}
	stats.TotalMillis = float64(time.Since(began).Microseconds()) / 1000

	return Result{Spans: spans, Stats: stats}, nil
}

// Close releases the open-vocabulary worker, if any.
func (e *Engine) Close() error {
	if e.open != nil {
		return e.open.Close()
	}
	return nil
}
