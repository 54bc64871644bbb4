package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docstore-rag/internal/model"
)

func TestSummarizeUnknownDocument(t *testing.T) {
	svc := NewSummaryService(&fakeDocumentStore{}, &fakeChunkStore{}, &fakeGenerator{})
	_, err := svc.Summarize(context.Background(), 42)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestSummarizeEmptyDocumentSkipsModel(t *testing.T) {
	docs := &fakeDocumentStore{docs: []model.Document{{ID: 1, Name: "Taylor Swift", Source: "https://example.com"}}}
	gen := &fakeGenerator{response: "should not be used"}
	svc := NewSummaryService(docs, &fakeChunkStore{byDocument: map[uint][]model.Chunk{}}, gen)

	out, err := svc.Summarize(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "No content found for document 'Taylor Swift'.", out)
	assert.Zero(t, gen.calls)
}

func TestSummarizeJoinsChunksInOrder(t *testing.T) {
	docs := &fakeDocumentStore{docs: []model.Document{{ID: 1, Name: "paper", Source: model.SourcePDF}}}
	chunks := &fakeChunkStore{byDocument: map[uint][]model.Chunk{
		1: {
			{ID: 1, DocumentID: 1, ChunkText: "intro section"},
			{ID: 2, DocumentID: 1, ChunkText: "middle section"},
			{ID: 3, DocumentID: 1, ChunkText: "final section"},
		},
	}}
	gen := &fakeGenerator{response: "a short summary"}
	svc := NewSummaryService(docs, chunks, gen)

	out, err := svc.Summarize(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a short summary", out)
	require.Equal(t, 1, gen.calls)

	prompt := gen.lastPrompt
	assert.Contains(t, prompt, "intro section"+contextSeparator+"middle section"+contextSeparator+"final section")
	assert.Contains(t, prompt, "Document Name: paper")
	assert.Contains(t, prompt, "No content available to summarize.")
	assert.Contains(t, prompt, "3-5 sentences")
}

func TestDocumentServiceDelete(t *testing.T) {
	docs := &fakeDocumentStore{docs: []model.Document{{ID: 1, Name: "a", Source: model.SourcePDF}}}
	svc := NewDocumentService(docs)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, docs.docs)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentServiceGet(t *testing.T) {
	docs := &fakeDocumentStore{docs: []model.Document{{ID: 5, Name: "a", Source: model.SourcePDF}}}
	svc := NewDocumentService(docs)

	doc, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "a", doc.Name)

	_, err = svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}
