package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rag-chat/internal/vectorstore"
)

// ErrDocumentNotFound is the document-store counterpart of the relational
// not-found errors.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentService vectorizes documents and delegates storage and search to
// the vector store collaborator.
type DocumentService struct {
	store      vectorstore.Store
	embedder   vectorstore.Embedder
	collection string
	path       string
}

func NewDocumentService(store vectorstore.Store, embedder vectorstore.Embedder, collection, path string) *DocumentService {
	return &DocumentService{store: store, embedder: embedder, collection: collection, path: path}
}

type AddDocumentRequest struct {
	ID    string `json:"id"`
	Title string `json:"title" binding:"required"`
	Text  string `json:"text" binding:"required"`
}

type SearchDocumentsRequest struct {
	Query    string `json:"query" binding:"required"`
	NResults int    `json:"n_results"`
}

// CollectionInfo mirrors the vector store's collection metadata.
type CollectionInfo struct {
	CollectionName string `json:"collection_name"`
	DocumentCount  int64  `json:"document_count"`
	StorageType    string `json:"storage_type"`
	Path           string `json:"path"`
}

// Add embeds the text and upserts the document; an existing id is
// overwritten. A missing id gets a generated one.
func (s *DocumentService) Add(ctx context.Context, req AddDocumentRequest) (*vectorstore.Document, error) {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	doc := vectorstore.Document{
		ID:        id,
		Title:     req.Title,
		Text:      req.Text,
		Embedding: s.embedder.Embed(req.Text),
	}
	if err := s.store.Upsert(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Search embeds the query and returns up to n ranked hits.
func (s *DocumentService) Search(ctx context.Context, query string, n int) ([]vectorstore.Hit, error) {
	return s.store.Query(ctx, s.embedder.Embed(query), n)
}

func (s *DocumentService) Get(ctx context.Context, id string) (*vectorstore.Document, error) {
	doc, err := s.store.Get(ctx, id)
	if errors.Is(err, vectorstore.ErrNotFound) {
		return nil, ErrDocumentNotFound
	}
	return doc, err
}

func (s *DocumentService) GetAll(ctx context.Context) ([]vectorstore.Document, error) {
	return s.store.GetAll(ctx)
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *DocumentService) DeleteAll(ctx context.Context) (int64, error) {
	return s.store.DeleteAll(ctx)
}

func (s *DocumentService) Info(ctx context.Context) (*CollectionInfo, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &CollectionInfo{
		CollectionName: s.collection,
		DocumentCount:  count,
		StorageType:    "local_persistent",
		Path:           s.path,
	}, nil
}
