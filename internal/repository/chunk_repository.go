package repository

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"docstore-rag/internal/model"
)

type ChunkRepository struct {
	db *gorm.DB
}

func NewChunkRepository(db *gorm.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// CreateBatch inserts chunks in slice order so that ascending id reproduces
// document order.
func (r *ChunkRepository) CreateBatch(ctx context.Context, chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&chunks).Error; err != nil {
		return fmt.Errorf("create chunks batch failed: %w", err)
	}
	return nil
}

// SearchPhrase returns up to limit chunks whose text contains phrase,
// case-insensitively, in store order. Hits carry distance 0: the policy
// treats exact phrase containment as certain relevance.
func (r *ChunkRepository) SearchPhrase(ctx context.Context, phrase string, limit int) ([]model.SimilarChunk, error) {
	var hits []model.SimilarChunk
	err := r.db.WithContext(ctx).Raw(`
		SELECT dc.id, dc.document_id, d.name AS doc_name, dc.chunk_text, 0.0 AS distance
		FROM doc_chunks dc
		JOIN documents d ON d.id = dc.document_id
		WHERE dc.chunk_text ILIKE ?
		LIMIT ?`,
		"%"+phrase+"%", limit,
	).Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("phrase search failed: %w", err)
	}
	return hits, nil
}

// SearchNearest returns up to limit chunks ordered by ascending cosine
// distance to the query embedding.
func (r *ChunkRepository) SearchNearest(ctx context.Context, embedding []float32, limit int) ([]model.SimilarChunk, error) {
	vec := pgvector.NewVector(embedding)
	var hits []model.SimilarChunk
	err := r.db.WithContext(ctx).Raw(`
		SELECT dc.id, dc.document_id, d.name AS doc_name, dc.chunk_text,
			(dc.embedding <=> ?) AS distance
		FROM doc_chunks dc
		JOIN documents d ON d.id = dc.document_id
		ORDER BY dc.embedding <=> ?
		LIMIT ?`,
		vec, vec, limit,
	).Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	return hits, nil
}

// ListByDocumentID returns all chunks of a document ordered by insertion,
// reconstructing the original document order.
func (r *ChunkRepository) ListByDocumentID(ctx context.Context, documentID uint) ([]model.Chunk, error) {
	var chunks []model.Chunk
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("id ASC").
		Find(&chunks).Error
	if err != nil {
		return nil, fmt.Errorf("list chunks by document failed: %w", err)
	}
	return chunks, nil
}

func (r *ChunkRepository) DeleteByDocumentID(ctx context.Context, documentID uint) error {
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Delete(&model.Chunk{}).Error; err != nil {
		return fmt.Errorf("delete chunks by document failed: %w", err)
	}
	return nil
}

// CountByDocumentID reports how many chunks a document has.
func (r *ChunkRepository) CountByDocumentID(ctx context.Context, documentID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Chunk{}).
		Where("document_id = ?", documentID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count chunks by document failed: %w", err)
	}
	return n, nil
}
