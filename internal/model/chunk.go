package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Chunk stores one overlapping text window of a document together with its
// embedding. Rows are ordered by ID to reconstruct the original document
// order, so chunks must be inserted in document order.
type Chunk struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	DocumentID uint            `gorm:"not null;index" json:"document_id"`
	ChunkText  string          `gorm:"type:text;not null" json:"chunk_text"`
	Embedding  pgvector.Vector `gorm:"type:vector" json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (Chunk) TableName() string { return "doc_chunks" }

// SimilarChunk is a chunk row returned by a retrieval query, joined with its
// document name and annotated with the cosine distance to the query vector.
// Lexical-stage hits carry distance 0.
type SimilarChunk struct {
	ID         uint    `json:"id"`
	DocumentID uint    `json:"document_id"`
	DocName    string  `json:"doc_name"`
	ChunkText  string  `json:"chunk_text"`
	Distance   float64 `json:"distance"`
}
