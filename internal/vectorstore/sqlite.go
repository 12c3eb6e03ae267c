package vectorstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	sqlite "modernc.org/sqlite"
)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    embedding BLOB,
    created_at TEXT NOT NULL
);
`

var registerOnce sync.Once

// registerVectorFunctions makes vec_cosine(blob, blob) available on
// connections opened after this call. Registration is driver-global, hence
// the once guard.
func registerVectorFunctions() {
	registerOnce.Do(func() {
		_ = sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, vecCosineImpl)
	})
}

func vecCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("vec_cosine: expected 2 arguments, got %d", len(args))
	}
	a, err := asEmbedding(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asEmbedding(args[1])
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	return cosine(a, b)
}

func asEmbedding(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return DecodeEmbedding(v)
	default:
		return nil, fmt.Errorf("vec_cosine: unsupported argument type %T, want BLOB", arg)
	}
}

func cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vec_cosine: dimension mismatch %d vs %d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		va, vb := float64(a[i]), float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// SQLiteStore persists documents in a standalone SQLite database, separate
// from the relational store. Similarity ranking runs in SQL through the
// registered vec_cosine function.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the vector database at path. Use ":memory:" for
// an in-memory store.
func Open(path string) (*SQLiteStore, error) {
	registerVectorFunctions()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("vectorstore: failed to open database: %w", err)
	}
	if _, err := db.Exec(documentsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("vectorstore: failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Upsert(ctx context.Context, doc Document) error {
	if doc.ID == "" {
		return errors.New("vectorstore: document id must not be empty")
	}
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, content, embedding, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			embedding = excluded.embedding,
			created_at = excluded.created_at`,
		doc.ID, doc.Title, doc.Text, EncodeEmbedding(doc.Embedding), createdAt.Format(time.RFC3339Nano))
	return err
}

func (s *SQLiteStore) Query(ctx context.Context, embedding []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, created_at, vec_cosine(embedding, ?) AS score
		FROM documents
		WHERE embedding IS NOT NULL
		ORDER BY score DESC
		LIMIT ?`,
		EncodeEmbedding(embedding), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hits := make([]Hit, 0, k)
	for rows.Next() {
		var hit Hit
		var createdAt string
		if err := rows.Scan(&hit.ID, &hit.Title, &hit.Text, &createdAt, &hit.Score); err != nil {
			return nil, err
		}
		hit.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	var createdAt string
	var embedding []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, embedding, created_at FROM documents WHERE id = ?`, id).
		Scan(&doc.ID, &doc.Title, &doc.Text, &embedding, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if doc.Embedding, err = DecodeEmbedding(embedding); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *SQLiteStore) GetAll(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, created_at FROM documents ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var doc Document
		var createdAt string
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Text, &createdAt); err != nil {
			return nil, err
		}
		doc.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

var _ Store = (*SQLiteStore)(nil)
