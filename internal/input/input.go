// Package input provides prompt document sources for the pipeline.
// A source yields one document per non-blank input line.
package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// Scanner buffer cap: prompt texts are short, but pasted multi-prompt lines
// can run long.
const maxLineBytes = 1024 * 1024

// Source yields prompt documents, either streamed or as a batch.
type Source interface {
	// Stream sends documents as they are read. The channel closes on EOF or
	// context cancellation.
	Stream(ctx context.Context) (<-chan model.Document, error)

	// Read drains the source into a slice.
	Read(ctx context.Context) ([]model.Document, error)
}

// streamLines reads r line by line, emitting one document per non-blank
// line. Closes c (and r, when it is a Closer) on return.
func streamLines(ctx context.Context, r io.Reader, idPrefix string) <-chan model.Document {
	ch := make(chan model.Document)
	go func() {
		defer close(ch)
		if closer, ok := r.(io.Closer); ok {
			defer closer.Close()
		}

		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64*1024), maxLineBytes)

		n := 0
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			n++
			doc := model.Document{
				ID:   fmt.Sprintf("%s-%d", idPrefix, n),
				Text: line,
			}
			select {
			case ch <- doc:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// collect drains a document channel into a slice, honoring cancellation.
func collect(ctx context.Context, ch <-chan model.Document) ([]model.Document, error) {
	var docs []model.Document
	for {
		select {
		case <-ctx.Done():
			return docs, ctx.Err()
		case doc, ok := <-ch:
			if !ok {
				return docs, ctx.Err()
			}
			docs = append(docs, doc)
		}
	}
}
