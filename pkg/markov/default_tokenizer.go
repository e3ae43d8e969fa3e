package markov

import (
	"strings"
)

// DefaultTokenizer is the default implementation of the Tokenizer interface.
// It splits text on runs of Unicode whitespace, performing no case folding or
// punctuation handling, so "Sam," and "sam" are distinct words.
type DefaultTokenizer struct {
	separator string
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithSeparator Sets the string used for joining words during generation.
// Default: " "
func WithSeparator(sep string) Option {
	return func(t *DefaultTokenizer) {
		t.separator = sep
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		separator: " ",
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Tokenize splits text around each run of whitespace. Leading and trailing
// whitespace is dropped, so no empty words are ever produced.
func (t *DefaultTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}

// Separator Returns the configured separator string.
func (t *DefaultTokenizer) Separator() string {
	return t.separator
}
