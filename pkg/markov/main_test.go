package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const hiThere = "hi there mary hi there juanita"

// scriptedRand returns a fixed sequence of values, reporting an error and
// returning 0 if a value is out of range or the script runs out. It never calls
// Fatalf because streaming walks draw from it on their own goroutine.
type scriptedRand struct {
	t      testing.TB
	values []int
	index  int
}

func newScriptedRand(t testing.TB, values ...int) *scriptedRand {
	return &scriptedRand{t: t, values: values}
}

func (s *scriptedRand) IntN(n int) int {
	if s.index >= len(s.values) {
		s.t.Errorf("scriptedRand exhausted, needed value for n=%d", n)
		return 0
	}
	v := s.values[s.index]
	s.index++
	if v < 0 || v >= n {
		s.t.Errorf("scriptedRand value %d out of range for n=%d", v, n)
		return 0
	}
	return v
}

// successorSet collects every word that appears in any successor list.
func successorSet(c *Chain) map[string]struct{} {
	set := make(map[string]struct{})
	for _, key := range c.Keys() {
		words, _ := c.Successors(key)
		for _, w := range words {
			set[w] = struct{}{}
		}
	}
	return set
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = strings.Repeat("this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. ", 50)
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
