package pipeline

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSetupSchemaIdempotent(t *testing.T) {
	db, _ := setupTestStore(t)
	if err := SetupSchema(db); err != nil {
		t.Fatalf("second SetupSchema() failed: %v", err)
	}
}

func TestStoreDocuments(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	if err := s.AddDocument(ctx, "seuss", "i am sam"); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}
	if err := s.AddDocument(ctx, "seuss", "sam i am"); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}
	if err := s.AddDocument(ctx, "other", "one fish two fish"); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	n, err := s.DocumentCount(ctx, "seuss")
	if err != nil {
		t.Fatalf("DocumentCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 documents, got %d", n)
	}

	text, err := s.CorpusText(ctx, "seuss")
	if err != nil {
		t.Fatalf("CorpusText failed: %v", err)
	}
	if text != "i am sam\nsam i am" {
		t.Errorf("CorpusText() = %q", text)
	}

	corpora, err := s.Corpora(ctx)
	if err != nil {
		t.Fatalf("Corpora failed: %v", err)
	}
	if !reflect.DeepEqual(corpora, map[string]int{"seuss": 2, "other": 1}) {
		t.Errorf("Corpora() = %v", corpora)
	}

	text, err = CorpusSource{Store: s, Corpus: "missing"}.ReadText(ctx)
	if err != nil {
		t.Fatalf("ReadText for missing corpus failed: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text for missing corpus, got %q", text)
	}
}

func TestStoreSamples(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()
	sink := SampleSink{Store: s, Corpus: "seuss"}

	for _, sample := range []string{"first sample", "second sample"} {
		if err := sink.WriteText(ctx, sample); err != nil {
			t.Fatalf("WriteText failed: %v", err)
		}
	}

	got, err := s.Samples(ctx, "seuss")
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"first sample", "second sample"}) {
		t.Errorf("Samples() = %v", got)
	}
}

func TestNewStoreClosesStatementsOnFailure(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "partial.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()

	// Only the documents table exists, so preparing the sample statements fails.
	if _, err = db.Exec(`CREATE TABLE corpus_documents (document_id INTEGER PRIMARY KEY, corpus_name TEXT NOT NULL, body TEXT NOT NULL, added_at INTEGER NOT NULL);`); err != nil {
		t.Fatal(err)
	}

	if s, err := NewStore(db); err == nil || s != nil {
		t.Fatalf("NewStore() = %v, %v; want nil store and an error", s, err)
	}

	partial, err := prepareStore(db)
	if err == nil {
		t.Fatal("expected prepareStore to fail without the samples table")
	}
	if !strings.Contains(err.Error(), "generated_samples") {
		t.Errorf("expected the error to name the failing statement, got %v", err)
	}
	if partial.stmtAddDocument == nil || partial.stmtCorpora == nil {
		t.Fatal("expected the statements before the failure to have been prepared")
	}
	if partial.stmtRecordSample != nil || partial.stmtSamples != nil {
		t.Error("expected no statements after the failure")
	}

	_, err = partial.stmtAddDocument.ExecContext(ctx, "seuss", "i am sam", 0)
	if err == nil || !strings.Contains(err.Error(), "statement is closed") {
		t.Errorf("expected earlier statements to be closed, got %v", err)
	}
}
