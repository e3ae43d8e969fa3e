package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/CTAG07/Sundew/pkg/markov"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoSource is returned when a Pipeline is run without a Source.
	ErrNoSource = errors.New("pipeline: no text source configured")
	// ErrNoSamples is returned when fewer than one sample is requested.
	ErrNoSamples = errors.New("pipeline: at least one sample must be requested")
)

// Options configures how a Pipeline walks its chain.
type Options struct {
	// MaxWords caps each sample's length. 0 leaves walks unbounded.
	MaxWords int
	// Parallelism limits concurrent walks in RunN. Values below 1 mean 1.
	Parallelism int
	// Seed makes walks reproducible when non-nil. Sample i of RunN is walked
	// with markov.NewRand(*Seed + i).
	Seed *uint64
}

// Pipeline connects a Source, the chain builder, a Generator and a Sink.
type Pipeline struct {
	Source    Source
	Tokenizer markov.Tokenizer
	Sink      Sink
	Options   Options

	logger *slog.Logger
}

// New returns a Pipeline with the default tokenizer. A nil sink discards
// samples.
func New(source Source, sink Sink, opts Options) *Pipeline {
	return &Pipeline{
		Source:    source,
		Tokenizer: markov.NewDefaultTokenizer(),
		Sink:      sink,
		Options:   opts,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger used by the Pipeline and by the Generators it
// creates. By default, all logs are discarded.
func (p *Pipeline) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Build reads the source and builds a chain from its text.
func (p *Pipeline) Build(ctx context.Context) (*markov.Chain, error) {
	if p.Source == nil {
		return nil, ErrNoSource
	}
	text, err := p.Source.ReadText(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	chain := markov.BuildWithTokenizer(p.tokenizer(), text)
	stats := chain.Stats()
	p.log().InfoContext(ctx, "Chain built",
		slog.Int("input_bytes", len(text)),
		slog.Int("keys", stats.Keys),
		slog.Int("transitions", stats.Transitions),
		slog.Int("vocabulary", stats.Vocabulary),
	)
	return chain, nil
}

// Run builds the chain, generates one sample and writes it to the sink.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	samples, err := p.RunN(ctx, 1)
	if err != nil {
		return "", err
	}
	return samples[0], nil
}

// RunN builds the chain once and generates n samples from it, walking up to
// Options.Parallelism chains at a time. ErrNoSamples is returned if n < 1.
func (p *Pipeline) RunN(ctx context.Context, n int) ([]string, error) {
	chain, err := p.Build(ctx)
	if err != nil {
		return nil, err
	}
	return p.Generate(ctx, chain, n)
}

// Generate walks an already built chain n times. The chain is only read, so
// the walks share it without locking. Once every walk has finished, samples
// are written to the sink in index order, so a seeded run produces the same
// output regardless of Options.Parallelism. ErrNoSamples is returned if n < 1.
func (p *Pipeline) Generate(ctx context.Context, chain *markov.Chain, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoSamples, n)
	}
	limit := p.Options.Parallelism
	if limit < 1 {
		limit = 1
	}

	logger := p.log()
	samples := make([]string, n)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for i := 0; i < n; i++ {
		group.Go(func() error {
			g := markov.NewGenerator(p.tokenizer(), p.rand(i))
			g.SetLogger(logger)

			text, err := g.Generate(groupCtx, chain, markov.WithMaxLength(p.Options.MaxWords))
			if err != nil {
				return fmt.Errorf("failed to generate sample %d: %w", i, err)
			}
			samples[i] = text
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if p.Sink != nil {
		for i, text := range samples {
			if err := p.Sink.WriteText(ctx, text); err != nil {
				return nil, fmt.Errorf("failed to write sample %d: %w", i, err)
			}
		}
	}

	logger.InfoContext(ctx, "Generation completed", slog.Int("samples", n))
	return samples, nil
}

func (p *Pipeline) tokenizer() markov.Tokenizer {
	if p.Tokenizer == nil {
		return markov.NewDefaultTokenizer()
	}
	return p.Tokenizer
}

// rand returns the random source for sample i. Without a seed every walk
// shares the concurrency-safe default.
func (p *Pipeline) rand(i int) markov.Rand {
	if p.Options.Seed == nil {
		return nil
	}
	return markov.NewRand(*p.Options.Seed + uint64(i))
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.logger
}
