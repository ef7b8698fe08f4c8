// Package multi fans extractions out to several outputs.
package multi

import (
	"context"
	"errors"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
	"github.com/bharm16/prompt-builder-sub009/internal/output"
)

// Output writes each extraction to every wrapped output. Errors are collected,
// not short-circuited, so one failing sink does not starve the rest.
type Output struct {
	outputs []output.Output
}

// New creates a fan-out over the given outputs.
func New(outputs ...output.Output) *Output {
	return &Output{outputs: outputs}
}

func (o *Output) Write(ctx context.Context, ex model.Extraction) error {
	var errs []error
	for _, out := range o.outputs {
		if err := out.Write(ctx, ex); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (o *Output) Close() error {
	var errs []error
	for _, out := range o.outputs {
		if err := out.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
