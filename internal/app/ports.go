package app

import (
	"context"

	"docstore-rag/internal/model"
)

// DocumentStore persists documents. Implemented by repository.DocumentRepository.
type DocumentStore interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, id uint) (*model.Document, error)
	FindByNameAndSource(ctx context.Context, name, source string) (*model.Document, error)
	FindBySource(ctx context.Context, source string) (*model.Document, error)
	List(ctx context.Context) ([]model.Document, error)
	Delete(ctx context.Context, id uint) error
}

// ChunkStore persists and searches chunks. Implemented by repository.ChunkRepository.
type ChunkStore interface {
	CreateBatch(ctx context.Context, chunks []model.Chunk) error
	SearchPhrase(ctx context.Context, phrase string, limit int) ([]model.SimilarChunk, error)
	SearchNearest(ctx context.Context, embedding []float32, limit int) ([]model.SimilarChunk, error)
	ListByDocumentID(ctx context.Context, documentID uint) ([]model.Chunk, error)
}

// Embedder maps text to fixed-dimension dense vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator runs a prompt against the language model. It always returns a
// text response; endpoint failures come back as diagnostic strings.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// PageFetcher downloads a web page and returns its extracted text.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// AnswerCache stores answers keyed by query. Get reports a miss with ok=false.
type AnswerCache interface {
	Get(ctx context.Context, query string) (string, bool, error)
	Set(ctx context.Context, query, answer string) error
}

// IngestNotifier announces a completed ingestion to interested consumers.
type IngestNotifier interface {
	DocumentIngested(ctx context.Context, event model.IngestEvent) error
}
