package markov

// Tokenizer is an interface that defines the contract for splitting input text
// into words. This allows the chain builder to be independent of the specific
// tokenization strategy.
type Tokenizer interface {
	// Tokenize splits text into words. Implementations must never return
	// empty words.
	Tokenize(text string) []string
	// Separator returns the string used to join words when building a final
	// generated string.
	Separator() string
}

// Tokenize splits text into words using the DefaultTokenizer.
func Tokenize(text string) []string {
	return defaultTokenizer.Tokenize(text)
}

var defaultTokenizer = NewDefaultTokenizer()
