package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/pgvector/pgvector-go"

	"docstore-rag/internal/model"
	"docstore-rag/internal/pkg/textsplit"
	"docstore-rag/internal/repository"
)

// Embedding APIs often limit how many inputs one call may carry.
const embeddingBatchSize = 10

const (
	SkipReasonAlreadyIngested = "already ingested"
	SkipReasonEmptyContent    = "no content after cleaning"
)

// IngestService turns raw extracted text into stored, embedded chunks.
type IngestService struct {
	docs         DocumentStore
	chunks       ChunkStore
	embedder     Embedder
	pages        PageFetcher
	notifier     IngestNotifier // optional
	chunkSize    int
	chunkOverlap int
}

func NewIngestService(
	docs DocumentStore,
	chunks ChunkStore,
	embedder Embedder,
	pages PageFetcher,
	notifier IngestNotifier,
	chunkSize, chunkOverlap int,
) *IngestService {
	if chunkSize <= 0 {
		chunkSize = textsplit.DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = textsplit.DefaultChunkOverlap
	}
	return &IngestService{
		docs:         docs,
		chunks:       chunks,
		embedder:     embedder,
		pages:        pages,
		notifier:     notifier,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// IngestResult reports what happened to one ingestion request. Validation
// outcomes (duplicate, empty content) come back as Skipped with a Reason
// instead of an error; nothing is written in those cases.
type IngestResult struct {
	Document   model.Document `json:"document"`
	ChunkCount int            `json:"chunk_count"`
	Skipped    bool           `json:"skipped"`
	Reason     string         `json:"reason,omitempty"`
}

// IngestPDF stores extracted PDF text under the constant pdf source tag.
// At most one document may exist per (name, pdf) pair.
func (s *IngestService) IngestPDF(ctx context.Context, name, text string) (*IngestResult, error) {
	return s.ingest(ctx, name, model.SourcePDF, text)
}

// IngestURL fetches the page, extracts its paragraph text and stores it with
// the URL as source. At most one document may exist per URL.
func (s *IngestService) IngestURL(ctx context.Context, url, name string) (*IngestResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrInvalidInput
	}
	// Cheap duplicate check before touching the network.
	existing, err := s.docs.FindBySource(ctx, url)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &IngestResult{Document: *existing, Skipped: true, Reason: SkipReasonAlreadyIngested}, nil
	}

	text, err := s.pages.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.ingest(ctx, name, url, text)
}

func (s *IngestService) ingest(ctx context.Context, name, source, rawText string) (*IngestResult, error) {
	name = strings.TrimSpace(name)
	if name == "" || source == "" {
		return nil, ErrInvalidInput
	}

	content := textsplit.Normalize(rawText)
	if content == "" {
		return &IngestResult{
			Document: model.Document{Name: name, Source: source},
			Skipped:  true,
			Reason:   SkipReasonEmptyContent,
		}, nil
	}

	existing, err := s.findExisting(ctx, name, source)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &IngestResult{Document: *existing, Skipped: true, Reason: SkipReasonAlreadyIngested}, nil
	}

	chunks, err := textsplit.Chunk(content, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return nil, err
	}

	// Embed before inserting anything so an embedder failure leaves no
	// half-written document behind.
	var embeddings [][]float32
	for i := 0; i < len(chunks); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch, err := s.embedder.EmbedBatch(ctx, chunks[i:end])
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, batch...)
	}

	doc := &model.Document{Name: name, Source: source}
	if err := s.docs.Create(ctx, doc); err != nil {
		// The unique indexes catch the check-then-insert race: a caller
		// that lost the race gets the same skipped outcome.
		if errors.Is(err, repository.ErrDuplicateDocument) {
			winner, findErr := s.findExisting(ctx, name, source)
			if findErr == nil && winner != nil {
				return &IngestResult{Document: *winner, Skipped: true, Reason: SkipReasonAlreadyIngested}, nil
			}
			return &IngestResult{
				Document: model.Document{Name: name, Source: source},
				Skipped:  true,
				Reason:   SkipReasonAlreadyIngested,
			}, nil
		}
		return nil, err
	}

	rows := make([]model.Chunk, len(chunks))
	for i := range chunks {
		rows[i] = model.Chunk{
			DocumentID: doc.ID,
			ChunkText:  chunks[i],
			Embedding:  pgvector.NewVector(embeddings[i]),
		}
	}
	if err := s.chunks.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		event := model.IngestEvent{
			DocumentID: doc.ID,
			Name:       doc.Name,
			Source:     doc.Source,
			ChunkCount: len(rows),
		}
		if err := s.notifier.DocumentIngested(ctx, event); err != nil {
			log.Printf("publish ingest event failed: %v", err)
		}
	}

	return &IngestResult{Document: *doc, ChunkCount: len(rows)}, nil
}

func (s *IngestService) findExisting(ctx context.Context, name, source string) (*model.Document, error) {
	if source == model.SourcePDF {
		return s.docs.FindByNameAndSource(ctx, name, source)
	}
	return s.docs.FindBySource(ctx, source)
}
