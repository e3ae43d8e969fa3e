package markov

import (
	"slices"
)

// Bigram is an ordered pair of consecutive words. It is comparable and is used
// directly as a map key, so Bigram{"a", "b"} and Bigram{"b", "a"} are distinct.
type Bigram struct {
	First  string
	Second string
}

// String returns both words joined by a single space.
func (b Bigram) String() string {
	return b.First + " " + b.Second
}

// Chain maps each bigram seen in the training text to the words observed to
// follow it. Successor lists keep duplicates in order of appearance, so a word
// that followed a bigram three times is three times as likely to be chosen.
//
// A Chain is read-only once Build returns and is safe for concurrent use.
type Chain struct {
	successors map[Bigram][]string
	// keys holds every bigram in order of first appearance. Walks pick their
	// starting key from this slice so that a fixed Rand gives a fixed walk.
	keys []Bigram
}

// Len returns the number of distinct bigram keys in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns every bigram key in order of first appearance in the training
// text.
func (c *Chain) Keys() []Bigram {
	if c == nil {
		return nil
	}
	return slices.Clone(c.keys)
}

// Successors returns a copy of the successor list recorded for a bigram,
// including duplicates, and whether the bigram is a key at all.
func (c *Chain) Successors(b Bigram) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	words, ok := c.successors[b]
	if !ok {
		return nil, false
	}
	return slices.Clone(words), true
}

// Contains reports whether the bigram has at least one recorded successor.
func (c *Chain) Contains(b Bigram) bool {
	if c == nil {
		return false
	}
	_, ok := c.successors[b]
	return ok
}

// next returns the live successor list for a bigram. Callers must not modify it.
func (c *Chain) next(b Bigram) ([]string, bool) {
	words, ok := c.successors[b]
	return words, ok
}
