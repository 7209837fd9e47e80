// Package textsource is the boundary between stored documents and the
// extraction engine. Whatever the source format, the engine receives one
// linear text blob with newline as the structural separator.
package textsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"declascan/constants"
)

// Source turns a stored file into a single text blob.
type Source interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Resolver picks a Source by file extension.
type Resolver struct {
	plain Source
	pdf   Source
}

func NewResolver(pdftotextBin string) *Resolver {
	return &Resolver{
		plain: PlainText{},
		pdf:   NewPDFText(pdftotextBin, nil),
	}
}

// For returns the source handling path's extension, or an error for
// unsupported formats.
func (r *Resolver) For(path string) (Source, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	switch ext {
	case "txt":
		return r.plain, nil
	case "pdf":
		return r.pdf, nil
	default:
		return nil, fmt.Errorf("unsupported file format %q", ext)
	}
}

// Extract resolves and runs the source for path in one call.
func (r *Resolver) Extract(ctx context.Context, path string) (string, error) {
	src, err := r.For(path)
	if err != nil {
		return "", err
	}
	return src.Extract(ctx, path)
}

// PlainText reads a UTF-8 text file as-is.
type PlainText struct{}

func (PlainText) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(data), nil
}
