package markov

import (
	"context"
	"log/slog"
)

// GenerateStream performs the same walk as Generate but returns a read-only
// channel that receives each word as soon as it is chosen. This is useful for
// very long walks or for writing output progressively. The channel is closed
// once the walk terminates or the context is cancelled.
//
// ErrEmptyChain is returned immediately if the chain has no keys.
func (g *Generator) GenerateStream(ctx context.Context, chain *Chain, opts ...GenerateOption) (<-chan string, error) {
	if chain.Len() == 0 {
		return nil, ErrEmptyChain
	}
	options := newGenerateOptions(opts)

	// The starting key is drawn before returning so that the Rand is only ever
	// touched from one goroutine at a time when the caller walks sequentially.
	start := chain.keys[g.rng.IntN(len(chain.keys))]

	wordChan := make(chan string)

	go func() {
		defer close(wordChan)

		send := func(word string) bool {
			select {
			case <-ctx.Done():
				g.logger.DebugContext(ctx, "Generation stream cancelled by context")
				return false
			case wordChan <- word:
				return true
			}
		}

		if !send(start.Second) {
			return
		}
		count := 1
		prev := start

		for !options.reached(count) {
			choices, ok := chain.next(prev)
			if !ok {
				g.logger.DebugContext(ctx, "Generation stream terminated due to dead-end",
					slog.String("last_bigram", prev.String()),
					slog.Int("generated_length", count),
				)
				return
			}

			word := g.choose(choices)
			if !send(word) {
				return
			}
			count++
			prev = Bigram{First: prev.Second, Second: word}
		}
	}()

	return wordChan, nil
}
