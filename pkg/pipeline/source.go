package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Source yields the complete training text as one string.
type Source interface {
	ReadText(ctx context.Context) (string, error)
}

// FileSource reads the training text from a file on disk.
type FileSource struct {
	Path string
}

// ReadText reads the whole file.
func (s FileSource) ReadText(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("could not read input file '%s': %w", s.Path, err)
	}
	return string(data), nil
}

// StringSource is a literal training text.
type StringSource string

// ReadText returns the string itself.
func (s StringSource) ReadText(_ context.Context) (string, error) {
	return string(s), nil
}

// ReaderSource reads the training text from an io.Reader until EOF.
type ReaderSource struct {
	Reader io.Reader
}

// ReadText drains the reader.
func (s ReaderSource) ReadText(_ context.Context) (string, error) {
	data, err := io.ReadAll(s.Reader)
	if err != nil {
		return "", fmt.Errorf("could not read input stream: %w", err)
	}
	return string(data), nil
}
