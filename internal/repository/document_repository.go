package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docstore-rag/internal/model"
)

// ErrDuplicateDocument is returned when an insert hits one of the
// uniqueness indexes on documents. Two concurrent ingests of the same
// name/URL resolve here instead of producing a second row.
var ErrDuplicateDocument = errors.New("document already exists")

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateDocument
		}
		return fmt.Errorf("create document failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*model.Document, error) {
	var doc model.Document
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return &doc, nil
}

// FindByNameAndSource returns the document with the given name and source
// tag, or nil when none exists. Used for the friendly pre-insert duplicate
// check on PDF ingestion.
func (r *DocumentRepository) FindByNameAndSource(ctx context.Context, name, source string) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).Where("name = ? AND source = ?", name, source).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find document by name and source failed: %w", err)
	}
	return &doc, nil
}

// FindBySource returns the document whose source matches exactly (URL
// ingestion dedup), or nil when none exists.
func (r *DocumentRepository) FindBySource(ctx context.Context, source string) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).Where("source = ?", source).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find document by source failed: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) List(ctx context.Context) ([]model.Document, error) {
	var list []model.Document
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return list, nil
}

// Delete removes the document; its chunks go with it through the cascade on
// doc_chunks.document_id.
func (r *DocumentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Document{}, id).Error; err != nil {
		return fmt.Errorf("delete document failed: %w", err)
	}
	return nil
}
