// Package pipeline connects an input source, the extraction engine, and an
// output sink.
package pipeline

import (
	"context"
	"fmt"

	"github.com/bharm16/prompt-builder-sub009/internal/engine"
	"github.com/bharm16/prompt-builder-sub009/internal/input"
	"github.com/bharm16/prompt-builder-sub009/internal/metrics"
	"github.com/bharm16/prompt-builder-sub009/internal/model"
	"github.com/bharm16/prompt-builder-sub009/internal/output"
)

// Pipeline wires source → engine → output.
type Pipeline struct {
	source input.Source
	engine *engine.Engine
	output output.Output
}

// New creates a Pipeline from the given components.
func New(src input.Source, eng *engine.Engine, out output.Output) *Pipeline {
	return &Pipeline{
		source: src,
		engine: eng,
		output: out,
	}
}

// Stream processes documents as they arrive, writing each extraction to the
// output. Blocks until the source is exhausted, the context is cancelled, or
// an error occurs.
func (p *Pipeline) Stream(ctx context.Context) error {
	ch, err := p.source.Stream(ctx)
	if err != nil {
		return fmt.Errorf("pipeline stream: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case doc, ok := <-ch:
			if !ok {
				return nil
			}
			if err := p.process(ctx, doc); err != nil {
				return err
			}
		}
	}
}

// Batch drains the source, then processes every document.
func (p *Pipeline) Batch(ctx context.Context) error {
	docs, err := p.source.Read(ctx)
	if err != nil {
		return fmt.Errorf("pipeline batch: %w", err)
	}
	for _, doc := range docs {
		if err := p.process(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) process(ctx context.Context, doc model.Document) error {
	res, err := p.engine.Extract(ctx, doc.Text, nil)
	if err != nil {
		return fmt.Errorf("pipeline extract %s: %w", doc.ID, err)
	}
	metrics.RecordExtraction(len(res.Spans), res.Stats)

	ex := model.Extraction{
		ID:    doc.ID,
		Text:  doc.Text,
		Spans: res.Spans,
		Stats: res.Stats,
	}
	if err := p.output.Write(ctx, ex); err != nil {
		return fmt.Errorf("pipeline output %s: %w", doc.ID, err)
	}
	return nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
