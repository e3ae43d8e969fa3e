package pipeline

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

const greenEggs = `I do not like them in a house. I do not like them with a mouse.
I do not like them here or there. I do not like them anywhere.
I do not like green eggs and ham. I do not like them, Sam-I-am.`

// setupTestStore creates a new SQLite database file and a Store for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestStore(t *testing.T) (*sql.DB, *Store) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

// memorySink records samples for assertions.
type memorySink struct {
	samples chan string
}

func newMemorySink(n int) *memorySink {
	return &memorySink{samples: make(chan string, n)}
}

func (m *memorySink) WriteText(_ context.Context, text string) error {
	m.samples <- text
	return nil
}

func (m *memorySink) drain() []string {
	close(m.samples)
	var out []string
	for s := range m.samples {
		out = append(out, s)
	}
	return out
}
