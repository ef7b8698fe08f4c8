package input

import (
	"context"
	"io"
	"os"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// Stdin reads prompt documents from standard input, one per line.
type Stdin struct {
	r io.Reader
}

// NewStdin creates a stdin source.
func NewStdin() *Stdin {
	return &Stdin{r: os.Stdin}
}

func (s *Stdin) Stream(ctx context.Context) (<-chan model.Document, error) {
	return streamLines(ctx, s.r, "stdin"), nil
}

func (s *Stdin) Read(ctx context.Context) ([]model.Document, error) {
	ch, _ := s.Stream(ctx)
	return collect(ctx, ch)
}
