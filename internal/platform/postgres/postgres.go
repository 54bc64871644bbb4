package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func New(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get postgres sql db failed: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping postgres failed: %w", err)
	}

	return db, nil
}

// Migrate creates the pgvector extension, the documents and doc_chunks
// tables, and the uniqueness indexes that close the duplicate-ingest race.
// embeddingDim is fixed at schema-creation time; every stored vector must
// match it. It is the only value interpolated into SQL text.
func Migrate(db *gorm.DB, embeddingDim int) error {
	if embeddingDim <= 0 {
		return fmt.Errorf("invalid embedding dimension %d", embeddingDim)
	}

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS documents (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			source TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT now()
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS doc_chunks (
			id SERIAL PRIMARY KEY,
			document_id INTEGER REFERENCES documents(id) ON DELETE CASCADE,
			chunk_text TEXT NOT NULL,
			embedding vector(%d),
			created_at TIMESTAMP DEFAULT now()
		)`, embeddingDim),
		// One document per (name, pdf) pair, one per distinct URL.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_documents_pdf_name
			ON documents (name, source) WHERE source = 'pdf'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_documents_url_source
			ON documents (source) WHERE source <> 'pdf'`,
		`CREATE INDEX IF NOT EXISTS idx_doc_chunks_document_id
			ON doc_chunks (document_id)`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate schema failed: %w", err)
		}
	}
	return nil
}
