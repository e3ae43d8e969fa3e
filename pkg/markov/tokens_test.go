package markov

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "Empty", input: "", expected: []string{}},
		{name: "Only whitespace", input: " \t\n  ", expected: []string{}},
		{name: "Simple", input: "hi there mary", expected: []string{"hi", "there", "mary"}},
		{name: "Collapses runs", input: "  hi   there\n\nmary\t", expected: []string{"hi", "there", "mary"}},
		{name: "No normalization", input: "Sam, sam SAM-I-am.", expected: []string{"Sam,", "sam", "SAM-I-am."}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.input)
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Tokenize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
			for _, w := range got {
				if w == "" {
					t.Errorf("Tokenize(%q) produced an empty token", tc.input)
				}
			}
		})
	}
}

func TestDefaultTokenizerSeparator(t *testing.T) {
	if sep := NewDefaultTokenizer().Separator(); sep != " " {
		t.Errorf("default separator = %q, want %q", sep, " ")
	}
	if sep := NewDefaultTokenizer(WithSeparator("\n")).Separator(); sep != "\n" {
		t.Errorf("custom separator = %q, want %q", sep, "\n")
	}
}
