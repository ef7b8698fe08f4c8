package input

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// File reads prompt documents from a file, one per line. Document IDs are
// derived from the file's base name.
type File struct {
	path string
}

// NewFile creates a file source for path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Stream(ctx context.Context) (<-chan model.Document, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", f.path, err)
	}
	base := strings.TrimSuffix(filepath.Base(f.path), filepath.Ext(f.path))
	return streamLines(ctx, file, base), nil
}

func (f *File) Read(ctx context.Context) ([]model.Document, error) {
	ch, err := f.Stream(ctx)
	if err != nil {
		return nil, err
	}
	return collect(ctx, ch)
}
