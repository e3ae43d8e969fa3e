package markov

// Build constructs a Chain from an ordered word sequence. For every position i
// that still has a third word after it, words[i+2] is appended to the
// successor list of Bigram{words[i], words[i+1]}.
//
// The final bigram of the sequence has no following word and is therefore
// never recorded on its behalf. It only becomes a key if the same pair also
// appears earlier in the text with a successor. Sequences shorter than three
// words produce an empty Chain. Build never fails.
func Build(words []string) *Chain {
	c := &Chain{
		successors: make(map[Bigram][]string),
	}

	for i := 0; i+2 < len(words); i++ {
		key := Bigram{First: words[i], Second: words[i+1]}
		list, ok := c.successors[key]
		if !ok {
			c.keys = append(c.keys, key)
		}
		c.successors[key] = append(list, words[i+2])
	}

	return c
}

// BuildFromText tokenizes text with the DefaultTokenizer and builds a Chain
// from the resulting words.
func BuildFromText(text string) *Chain {
	return Build(Tokenize(text))
}

// BuildWithTokenizer tokenizes text with the given Tokenizer and builds a Chain
// from the resulting words.
func BuildWithTokenizer(tokenizer Tokenizer, text string) *Chain {
	return Build(tokenizer.Tokenize(text))
}
