package markov

// ChainStats holds aggregated statistics for a single Chain.
type ChainStats struct {
	Keys              int // The number of distinct bigram keys.
	Transitions       int // The total number of successor entries, duplicates included; one per trained position.
	UniqueTransitions int // The number of distinct bigram->word links.
	Vocabulary        int // The number of distinct words appearing in keys or successor lists.
	MaxBranching      int // The largest number of distinct successors recorded for one key.
}

// Stats returns a snapshot of statistics for the chain.
func (c *Chain) Stats() ChainStats {
	var stats ChainStats
	if c == nil {
		return stats
	}

	vocab := make(map[string]struct{})
	stats.Keys = len(c.keys)

	for _, key := range c.keys {
		vocab[key.First] = struct{}{}
		vocab[key.Second] = struct{}{}

		words := c.successors[key]
		stats.Transitions += len(words)

		distinct := make(map[string]struct{}, len(words))
		for _, w := range words {
			distinct[w] = struct{}{}
			vocab[w] = struct{}{}
		}
		stats.UniqueTransitions += len(distinct)
		if len(distinct) > stats.MaxBranching {
			stats.MaxBranching = len(distinct)
		}
	}

	stats.Vocabulary = len(vocab)
	return stats
}
