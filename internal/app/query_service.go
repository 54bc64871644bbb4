package app

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	DefaultTopK                = 5
	DefaultSimilarityThreshold = 0.3

	// NoAnswerSentinel is returned verbatim whenever the retrieved context
	// is insufficient. The prompt instructs the model to reply with the
	// exact same string.
	NoAnswerSentinel = "I don't know. The ingested documents don't contain this information."

	contextSeparator = "\n\n---\n\n"
)

// Candidate is a scored retrieval hit, alive only within one query call.
type Candidate struct {
	ChunkID    uint    `json:"chunk_id"`
	DocumentID uint    `json:"document_id"`
	DocName    string  `json:"doc_name"`
	ChunkText  string  `json:"chunk_text"`
	Distance   float64 `json:"distance"`
	Similarity float64 `json:"similarity"`
}

// CandidateObserver receives the ranked candidate list of each search. It
// is an observability hook and has no effect on the returned candidates.
type CandidateObserver func(query string, candidates []Candidate)

// LogCandidates is the default observer; it prints the ranked list in a
// compact single-line-per-candidate form.
func LogCandidates(query string, candidates []Candidate) {
	for i, c := range candidates {
		excerpt := c.ChunkText
		if len(excerpt) > 120 {
			excerpt = excerpt[:120]
		}
		log.Printf("retriever: %d. doc_id=%d doc=%q distance=%.4f similarity=%.3f excerpt=%q",
			i+1, c.DocumentID, c.DocName, c.Distance, c.Similarity, excerpt)
	}
}

// QueryService retrieves relevant chunks for a question and composes the
// constrained prompt around them.
type QueryService struct {
	chunks    ChunkStore
	embedder  Embedder
	generator Generator
	cache     AnswerCache // optional
	observer  CandidateObserver
	topK      int
	threshold float64
}

func NewQueryService(
	chunks ChunkStore,
	embedder Embedder,
	generator Generator,
	cache AnswerCache,
	observer CandidateObserver,
	topK int,
	threshold float64,
) *QueryService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if observer == nil {
		observer = LogCandidates
	}
	return &QueryService{
		chunks:    chunks,
		embedder:  embedder,
		generator: generator,
		cache:     cache,
		observer:  observer,
		topK:      topK,
		threshold: threshold,
	}
}

// Search returns up to topK candidates ordered best-first.
//
// Queries of two or more words go through a case-insensitive substring
// match first; any hit is taken as certain relevance (distance 0,
// similarity 1). Only when that stage yields nothing does the query get
// embedded and matched by ascending cosine distance, with
// similarity = 1/(1+distance). An empty result is not an error.
func (s *QueryService) Search(ctx context.Context, query string, topK int) ([]Candidate, error) {
	if topK <= 0 {
		topK = s.topK
	}

	phrase := strings.TrimSpace(query)
	if len(strings.Fields(phrase)) >= 2 {
		hits, err := s.chunks.SearchPhrase(ctx, phrase, topK)
		if err != nil {
			return nil, err
		}
		if len(hits) > 0 {
			candidates := make([]Candidate, len(hits))
			for i, h := range hits {
				candidates[i] = Candidate{
					ChunkID:    h.ID,
					DocumentID: h.DocumentID,
					DocName:    h.DocName,
					ChunkText:  h.ChunkText,
					Distance:   0.0,
					Similarity: 1.0,
				}
			}
			s.observer(query, candidates)
			return candidates, nil
		}
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	hits, err := s.chunks.SearchNearest(ctx, embedding, topK)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, len(hits))
	for i, h := range hits {
		candidates[i] = Candidate{
			ChunkID:    h.ID,
			DocumentID: h.DocumentID,
			DocName:    h.DocName,
			ChunkText:  h.ChunkText,
			Distance:   h.Distance,
			Similarity: 1.0 / (1.0 + h.Distance),
		}
	}
	s.observer(query, candidates)
	return candidates, nil
}

// Ask answers a question from ingested documents only. Candidates below the
// similarity threshold are discarded; with nothing left the sentinel is
// returned without a model call.
func (s *QueryService) Ask(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrInvalidInput
	}

	if s.cache != nil {
		answer, ok, err := s.cache.Get(ctx, query)
		if err != nil {
			log.Printf("answer cache get failed: %v", err)
		} else if ok {
			return answer, nil
		}
	}

	candidates, err := s.Search(ctx, query, s.topK)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return NoAnswerSentinel, nil
	}

	var kept []string
	for _, c := range candidates {
		if c.Similarity >= s.threshold {
			kept = append(kept, c.ChunkText)
		}
	}
	if len(kept) == 0 {
		return NoAnswerSentinel, nil
	}

	prompt := buildAnswerPrompt(query, strings.Join(kept, contextSeparator))
	answer := s.generator.Generate(ctx, prompt)

	if s.cache != nil {
		if err := s.cache.Set(ctx, query, answer); err != nil {
			log.Printf("answer cache set failed: %v", err)
		}
	}
	return answer, nil
}

func buildAnswerPrompt(query, contextBlock string) string {
	return fmt.Sprintf(`You are a strict assistant. Use ONLY the provided CHUNKS to answer the question.
- If the answer is in the CHUNKS, extract only that part.
- Do NOT add any extra information beyond what is in the CHUNKS.
- If the CHUNKS do not contain the answer, reply exactly:
%q

Question:
%s

CHUNKS:
%s

Answer:
`, NoAnswerSentinel, query, contextBlock)
}
