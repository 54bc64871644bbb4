package app

import (
	"context"
	"errors"
	"strings"

	"docstore-rag/internal/model"
)

type fakeDocumentStore struct {
	docs      []model.Document
	nextID    uint
	createErr error
}

func (f *fakeDocumentStore) Create(_ context.Context, doc *model.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	doc.ID = f.nextID
	f.docs = append(f.docs, *doc)
	return nil
}

func (f *fakeDocumentStore) GetByID(_ context.Context, id uint) (*model.Document, error) {
	for i := range f.docs {
		if f.docs[i].ID == id {
			d := f.docs[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeDocumentStore) FindByNameAndSource(_ context.Context, name, source string) (*model.Document, error) {
	for i := range f.docs {
		if f.docs[i].Name == name && f.docs[i].Source == source {
			d := f.docs[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeDocumentStore) FindBySource(_ context.Context, source string) (*model.Document, error) {
	for i := range f.docs {
		if f.docs[i].Source == source {
			d := f.docs[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeDocumentStore) List(_ context.Context) ([]model.Document, error) {
	return f.docs, nil
}

func (f *fakeDocumentStore) Delete(_ context.Context, id uint) error {
	for i := range f.docs {
		if f.docs[i].ID == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeChunkStore struct {
	created     []model.Chunk
	phraseHits  []model.SimilarChunk
	nearestHits []model.SimilarChunk
	byDocument  map[uint][]model.Chunk

	phraseCalls  int
	nearestCalls int
	lastPhrase   string
	lastLimit    int
}

func (f *fakeChunkStore) CreateBatch(_ context.Context, chunks []model.Chunk) error {
	f.created = append(f.created, chunks...)
	return nil
}

func (f *fakeChunkStore) SearchPhrase(_ context.Context, phrase string, limit int) ([]model.SimilarChunk, error) {
	f.phraseCalls++
	f.lastPhrase = phrase
	f.lastLimit = limit
	return f.phraseHits, nil
}

func (f *fakeChunkStore) SearchNearest(_ context.Context, _ []float32, limit int) ([]model.SimilarChunk, error) {
	f.nearestCalls++
	f.lastLimit = limit
	return f.nearestHits, nil
}

func (f *fakeChunkStore) ListByDocumentID(_ context.Context, documentID uint) ([]model.Chunk, error) {
	return f.byDocument[documentID], nil
}

type fakeEmbedder struct {
	dim        int
	embedCalls int
	batchCalls int
	err        error
}

func (f *fakeEmbedder) vector() []float32 {
	dim := f.dim
	if dim == 0 {
		dim = 3
	}
	return make([]float32, dim)
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.embedCalls++
	if f.err != nil {
		return nil, f.err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("embedding input is empty")
	}
	return f.vector(), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector()
	}
	return out, nil
}

type fakeGenerator struct {
	response   string
	calls      int
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) string {
	f.calls++
	f.lastPrompt = prompt
	return f.response
}

type fakeAnswerCache struct {
	entries  map[string]string
	getCalls int
	setCalls int
}

func newFakeAnswerCache() *fakeAnswerCache {
	return &fakeAnswerCache{entries: map[string]string{}}
}

func (f *fakeAnswerCache) Get(_ context.Context, query string) (string, bool, error) {
	f.getCalls++
	answer, ok := f.entries[query]
	return answer, ok, nil
}

func (f *fakeAnswerCache) Set(_ context.Context, query, answer string) error {
	f.setCalls++
	f.entries[query] = answer
	return nil
}

type fakePageFetcher struct {
	text    string
	err     error
	calls   int
	lastURL string
}

func (f *fakePageFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls++
	f.lastURL = url
	return f.text, f.err
}

type fakeNotifier struct {
	events []model.IngestEvent
	err    error
}

func (f *fakeNotifier) DocumentIngested(_ context.Context, event model.IngestEvent) error {
	f.events = append(f.events, event)
	return f.err
}
