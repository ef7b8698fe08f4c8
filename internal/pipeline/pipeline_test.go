package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/bharm16/prompt-builder-sub009/internal/engine"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/closedvocab"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/embedder"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/heuristic"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/merge"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/patterns"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/semantic"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/taxonomy"
	"github.com/bharm16/prompt-builder-sub009/internal/model"
	"github.com/bharm16/prompt-builder-sub009/internal/vocab"
)

const testFloor = 0.25

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	tax := taxonomy.Default()
	v := vocab.Default(tax)
	emb := embedder.NewHashing(0)
	actions := heuristic.NewActions(semantic.New(emb, semantic.ActionClusters(), testFloor), testFloor)
	lighting := heuristic.NewLighting(semantic.New(emb, semantic.LightingClusters(), testFloor), testFloor)
	return engine.New(
		closedvocab.New(v),
		patterns.New(),
		actions,
		lighting,
		nil,
		merge.New(tax, merge.DefaultOptions()),
		engine.Options{UseActions: true, UseLighting: true},
	)
}

// sliceSource yields a fixed set of documents.
type sliceSource struct {
	docs []model.Document
}

func (s *sliceSource) Stream(ctx context.Context) (<-chan model.Document, error) {
	ch := make(chan model.Document, len(s.docs))
	for _, d := range s.docs {
		ch <- d
	}
	close(ch)
	return ch, nil
}

func (s *sliceSource) Read(ctx context.Context) ([]model.Document, error) {
	return s.docs, nil
}

// captureOutput records written extractions.
type captureOutput struct {
	extractions []model.Extraction
	closed      bool
	err         error
}

func (c *captureOutput) Write(_ context.Context, ex model.Extraction) error {
	c.extractions = append(c.extractions, ex)
	return c.err
}

func (c *captureOutput) Close() error {
	c.closed = true
	return nil
}

func TestBatchProcessesAllDocuments(t *testing.T) {
	src := &sliceSource{docs: []model.Document{
		{ID: "p-1", Text: "a 35mm close-up at golden hour"},
		{ID: "p-2", Text: "a 24fps tracking shot"},
	}}
	out := &captureOutput{}
	p := New(src, testEngine(t), out)

	if err := p.Batch(context.Background()); err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(out.extractions) != 2 {
		t.Fatalf("got %d extractions, want 2", len(out.extractions))
	}
	if out.extractions[0].ID != "p-1" || out.extractions[1].ID != "p-2" {
		t.Errorf("IDs = %q, %q", out.extractions[0].ID, out.extractions[1].ID)
	}
	if len(out.extractions[0].Spans) == 0 {
		t.Error("first document produced no spans")
	}
	if out.extractions[0].Text != "a 35mm close-up at golden hour" {
		t.Errorf("Text not carried through: %q", out.extractions[0].Text)
	}
}

func TestStreamProcessesAllDocuments(t *testing.T) {
	src := &sliceSource{docs: []model.Document{
		{ID: "p-1", Text: "a slow pan across the valley, shot on camera"},
	}}
	out := &captureOutput{}
	p := New(src, testEngine(t), out)

	if err := p.Stream(context.Background()); err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if len(out.extractions) != 1 {
		t.Fatalf("got %d extractions, want 1", len(out.extractions))
	}
	if len(out.extractions[0].Stats.Tiers) == 0 {
		t.Error("stats not carried through")
	}
}

func TestOutputErrorStopsPipeline(t *testing.T) {
	src := &sliceSource{docs: []model.Document{
		{ID: "p-1", Text: "a wide shot"},
		{ID: "p-2", Text: "a close-up"},
	}}
	out := &captureOutput{err: errors.New("sink failed")}
	p := New(src, testEngine(t), out)

	if err := p.Batch(context.Background()); err == nil {
		t.Fatal("expected error from failing output")
	}
	if len(out.extractions) != 1 {
		t.Errorf("pipeline should stop after first failed write, got %d", len(out.extractions))
	}
}

func TestCloseClosesOutput(t *testing.T) {
	out := &captureOutput{}
	p := New(&sliceSource{}, testEngine(t), out)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !out.closed {
		t.Error("output not closed")
	}
}
