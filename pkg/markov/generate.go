package markov

import (
	"context"
	"log/slog"
	"strings"
)

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	maxLength int
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in generation functions like Generate and GenerateStream.
type GenerateOption func(*generateOptions)

// WithMaxLength caps the number of words a walk may produce. The walk still
// stops earlier if it reaches a bigram with no recorded successor. A value of
// 0 or less, the default, leaves the walk unbounded.
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) { o.maxLength = n }
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{
		maxLength: 0,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// reached reports whether a walk of n words has hit the configured cap.
func (o *generateOptions) reached(n int) bool {
	return o.maxLength > 0 && n >= o.maxLength
}

// Generate performs one random walk over the chain and returns the words it
// produced joined by the tokenizer's separator.
//
// The walk picks a starting bigram uniformly from the chain's keys, emits its
// second word, and then keeps appending a uniformly chosen successor of the
// last two words until that pair has no recorded successor. ErrEmptyChain is
// returned if the chain has no keys.
func (g *Generator) Generate(ctx context.Context, chain *Chain, opts ...GenerateOption) (string, error) {
	if chain.Len() == 0 {
		return "", ErrEmptyChain
	}
	options := newGenerateOptions(opts)

	start := chain.keys[g.rng.IntN(len(chain.keys))]
	words := []string{start.Second}
	prev := start

	for !options.reached(len(words)) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		choices, ok := chain.next(prev)
		if !ok { // Dead end in chain
			g.logger.DebugContext(ctx, "Generation terminated due to dead-end",
				slog.String("last_bigram", prev.String()),
				slog.Int("generated_length", len(words)),
			)
			return strings.Join(words, g.tokenizer.Separator()), nil
		}

		word := g.choose(choices)
		words = append(words, word)
		prev = Bigram{First: prev.Second, Second: word}
	}

	g.logger.DebugContext(ctx, "Generation terminated by reaching maxLength",
		slog.Int("max_length", options.maxLength),
		slog.Int("generated_length", len(words)),
	)
	return strings.Join(words, g.tokenizer.Separator()), nil
}

// choose picks one entry uniformly from a non-empty successor list. Repeated
// entries are proportionally more likely to be picked.
func (g *Generator) choose(choices []string) string {
	return choices[g.rng.IntN(len(choices))]
}
