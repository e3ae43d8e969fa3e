package markov

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
)

// ErrEmptyChain is returned when a walk is requested on a chain that has no
// keys, leaving no bigram to start from.
var ErrEmptyChain = errors.New("markov: chain has no bigrams to start from")

// Rand is the source of randomness used for every choice made during a walk.
// IntN must return a uniformly distributed integer in [0, n) and may panic if
// n <= 0. *rand.Rand from math/rand/v2 satisfies this interface.
type Rand interface {
	IntN(n int) int
}

// globalRand uses the top-level math/rand/v2 functions, which are safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// NewRand returns a deterministic Rand seeded with seed. Two walks over the
// same Chain with Rands built from the same seed produce the same text. The
// returned value is not safe for concurrent use.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator walks Chains to produce text. It holds the tokenizer whose
// separator joins the output and the random source used for every choice.
type Generator struct {
	tokenizer Tokenizer
	rng       Rand
	logger    *slog.Logger
}

// NewGenerator creates and returns a new Generator. A nil tokenizer selects the
// DefaultTokenizer and a nil rng selects the shared math/rand/v2 source.
//
// A Generator is safe for concurrent use exactly when its Rand is.
func NewGenerator(tokenizer Tokenizer, rng Rand) *Generator {
	if tokenizer == nil {
		tokenizer = defaultTokenizer
	}
	if rng == nil {
		rng = globalRand{}
	}
	return &Generator{
		tokenizer: tokenizer,
		rng:       rng,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
// Providing a `log/slog.Logger` will enable debug records describing why each
// walk terminated.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Logger returns the logger currently in use.
func (g *Generator) Logger() *slog.Logger {
	return g.logger
}
