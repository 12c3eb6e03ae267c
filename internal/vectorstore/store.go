// Package vectorstore provides the document vector store used for
// retrieval-augmented generation: an Embedder turns text into vectors and a
// Store persists documents and ranks them by cosine similarity.
package vectorstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no document has the requested id.
var ErrNotFound = errors.New("document not found")

type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Hit is one ranked search result. Score is cosine similarity in [-1, 1].
type Hit struct {
	Document
	Score float64 `json:"similarity_score"`
}

// Store is the vector database collaborator. Upsert overwrites any
// existing document with the same id.
type Store interface {
	Upsert(ctx context.Context, doc Document) error
	Query(ctx context.Context, embedding []float32, k int) ([]Hit, error)
	Get(ctx context.Context, id string) (*Document, error)
	GetAll(ctx context.Context) ([]Document, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(text string) []float32
	Dimensions() int
}
