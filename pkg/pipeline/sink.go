package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

// Sink receives each generated sample.
type Sink interface {
	WriteText(ctx context.Context, text string) error
}

// WriterSink writes each sample followed by a newline to an io.Writer, such as
// os.Stdout. Writes are serialized so one WriterSink can be shared by
// concurrent generations.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) WriteText(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, text+"\n"); err != nil {
		return fmt.Errorf("could not write sample: %w", err)
	}
	return nil
}

// FileSink collects samples in memory and replaces the target file with all of
// them, one per line, each time a sample arrives. The file is written
// atomically, so readers never observe a partially written file.
type FileSink struct {
	Path string

	mu      sync.Mutex
	samples []string
}

// NewFileSink returns a sink that writes to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

func (s *FileSink) WriteText(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, text)

	data := strings.Join(s.samples, "\n") + "\n"
	if err := atomic.WriteFile(s.Path, bytes.NewReader([]byte(data))); err != nil {
		return fmt.Errorf("failed to write output file '%s': %w", s.Path, err)
	}
	return nil
}

// MultiSink forwards every sample to each of its sinks in order, stopping at
// the first error.
type MultiSink []Sink

func (m MultiSink) WriteText(ctx context.Context, text string) error {
	for _, s := range m {
		if err := s.WriteText(ctx, text); err != nil {
			return err
		}
	}
	return nil
}
