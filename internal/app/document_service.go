package app

import (
	"context"

	"docstore-rag/internal/model"
)

// DocumentService covers the read and delete side of document management.
type DocumentService struct {
	docs DocumentStore
}

func NewDocumentService(docs DocumentStore) *DocumentService {
	return &DocumentService{docs: docs}
}

func (s *DocumentService) List(ctx context.Context) ([]model.Document, error) {
	return s.docs.List(ctx)
}

func (s *DocumentService) Get(ctx context.Context, id uint) (*model.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// Delete removes the document; the store cascades the removal to its chunks.
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrDocumentNotFound
	}
	return s.docs.Delete(ctx, id)
}
