package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// SetupSchema initializes the corpus and sample tables in the provided
// database. It is idempotent and safe to call on an already-initialized
// database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaDocuments = `
CREATE TABLE IF NOT EXISTS corpus_documents (
    document_id INTEGER PRIMARY KEY,
    corpus_name TEXT NOT NULL,
    body TEXT NOT NULL,
    added_at INTEGER NOT NULL
);
`
		schemaDocumentsIndex = `
CREATE INDEX IF NOT EXISTS idx_corpus_documents_name ON corpus_documents (corpus_name);
`
		schemaSamples = `
CREATE TABLE IF NOT EXISTS generated_samples (
    sample_id INTEGER PRIMARY KEY,
    corpus_name TEXT NOT NULL,
    sample_text TEXT NOT NULL,
    generated_at INTEGER NOT NULL
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaDocuments); err != nil {
		return fmt.Errorf("could not create documents schema: %w", err)
	}
	if _, err = tx.Exec(schemaDocumentsIndex); err != nil {
		return fmt.Errorf("could not create documents index: %w", err)
	}
	if _, err = tx.Exec(schemaSamples); err != nil {
		return fmt.Errorf("could not create samples schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store keeps named corpora of training text and a log of generated samples in
// a SQLite database. It never stores chains; those are rebuilt from the corpus
// on every run.
type Store struct {
	db               *sql.DB
	stmtAddDocument  *sql.Stmt
	stmtDocuments    *sql.Stmt
	stmtCountDocs    *sql.Stmt
	stmtCorpora      *sql.Stmt
	stmtRecordSample *sql.Stmt
	stmtSamples      *sql.Stmt
	logger           *slog.Logger
}

// NewStore creates a Store over db, pre-compiling its SQL statements.
// SetupSchema must have been called on db first.
func NewStore(db *sql.DB) (*Store, error) {
	s, err := prepareStore(db)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// prepareStore prepares every statement in turn. If one fails, the statements
// already prepared are closed and the partially built Store is returned with
// the error.
func prepareStore(db *sql.DB) (*Store, error) {
	s := &Store{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	statements := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.stmtAddDocument, `INSERT INTO corpus_documents (corpus_name, body, added_at) VALUES (?, ?, ?);`},
		{&s.stmtDocuments, `SELECT body FROM corpus_documents WHERE corpus_name = ? ORDER BY document_id;`},
		{&s.stmtCountDocs, `SELECT COUNT(*) FROM corpus_documents WHERE corpus_name = ?;`},
		{&s.stmtCorpora, `SELECT corpus_name, COUNT(*) FROM corpus_documents GROUP BY corpus_name ORDER BY corpus_name;`},
		{&s.stmtRecordSample, `INSERT INTO generated_samples (corpus_name, sample_text, generated_at) VALUES (?, ?, ?);`},
		{&s.stmtSamples, `SELECT sample_text FROM generated_samples WHERE corpus_name = ? ORDER BY sample_id;`},
	}

	for _, st := range statements {
		stmt, err := db.Prepare(st.query)
		if err != nil {
			s.Close()
			return s, fmt.Errorf("could not prepare statement %q: %w", st.query, err)
		}
		*st.dst = stmt
	}

	return s, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	for _, stmt := range []*sql.Stmt{
		s.stmtAddDocument,
		s.stmtDocuments,
		s.stmtCountDocs,
		s.stmtCorpora,
		s.stmtRecordSample,
		s.stmtSamples,
	} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// AddDocument appends a document to the named corpus.
func (s *Store) AddDocument(ctx context.Context, corpus, body string) error {
	if _, err := s.stmtAddDocument.ExecContext(ctx, corpus, body, time.Now().Unix()); err != nil {
		return fmt.Errorf("could not add document to corpus '%s': %w", corpus, err)
	}
	s.logger.InfoContext(ctx, "Document added",
		slog.String("corpus", corpus),
		slog.Int("bytes", len(body)),
	)
	return nil
}

// DocumentCount returns the number of documents in the named corpus.
func (s *Store) DocumentCount(ctx context.Context, corpus string) (int, error) {
	var n int
	if err := s.stmtCountDocs.QueryRowContext(ctx, corpus).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Corpora returns every corpus name with its document count.
func (s *Store) Corpora(ctx context.Context) (map[string]int, error) {
	rows, err := s.stmtCorpora.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	corpora := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err = rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		corpora[name] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return corpora, nil
}

// CorpusText returns all documents of the named corpus in insertion order,
// joined by newlines.
func (s *Store) CorpusText(ctx context.Context, corpus string) (string, error) {
	bodies, err := queryStrings(ctx, s.stmtDocuments, corpus)
	if err != nil {
		return "", fmt.Errorf("could not read corpus '%s': %w", corpus, err)
	}
	return strings.Join(bodies, "\n"), nil
}

// RecordSample appends a generated sample to the log for the named corpus.
func (s *Store) RecordSample(ctx context.Context, corpus, text string) error {
	if _, err := s.stmtRecordSample.ExecContext(ctx, corpus, text, time.Now().Unix()); err != nil {
		return fmt.Errorf("could not record sample for corpus '%s': %w", corpus, err)
	}
	return nil
}

// Samples returns every recorded sample for the named corpus, oldest first.
func (s *Store) Samples(ctx context.Context, corpus string) ([]string, error) {
	return queryStrings(ctx, s.stmtSamples, corpus)
}

func queryStrings(ctx context.Context, stmt *sql.Stmt, args ...any) ([]string, error) {
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var out []string
	for rows.Next() {
		var v string
		if err = rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CorpusSource reads a named corpus from a Store.
type CorpusSource struct {
	Store  *Store
	Corpus string
}

func (c CorpusSource) ReadText(ctx context.Context) (string, error) {
	return c.Store.CorpusText(ctx, c.Corpus)
}

// SampleSink records every sample into a Store under a corpus name.
type SampleSink struct {
	Store  *Store
	Corpus string
}

func (c SampleSink) WriteText(ctx context.Context, text string) error {
	return c.Store.RecordSample(ctx, c.Corpus, text)
}
