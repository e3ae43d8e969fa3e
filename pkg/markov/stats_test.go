package markov

import (
	"testing"
)

func TestStats(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected ChainStats
	}{
		{
			name:     "Empty",
			text:     "",
			expected: ChainStats{},
		},
		{
			name: "Hi there",
			text: hiThere,
			expected: ChainStats{
				Keys:              3,
				Transitions:       4,
				UniqueTransitions: 4,
				Vocabulary:        4,
				MaxBranching:      2,
			},
		},
		{
			name: "Duplicates",
			text: "i am sam i am sam i am tom",
			expected: ChainStats{
				Keys:              3,
				Transitions:       7,
				UniqueTransitions: 4,
				Vocabulary:        4,
				MaxBranching:      2,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildFromText(tc.text).Stats()
			if got != tc.expected {
				t.Errorf("Stats() = %+v, want %+v", got, tc.expected)
			}
		})
	}
}
