package app

import (
	"context"
	"fmt"
	"strings"
)

// SummaryService condenses one whole document from its stored chunks.
type SummaryService struct {
	docs      DocumentStore
	chunks    ChunkStore
	generator Generator
}

func NewSummaryService(docs DocumentStore, chunks ChunkStore, generator Generator) *SummaryService {
	return &SummaryService{docs: docs, chunks: chunks, generator: generator}
}

// Summarize joins every chunk of the document, in insertion order, into the
// summarization prompt. A document without chunks yields a fixed message
// naming the document; no model call is made for it.
func (s *SummaryService) Summarize(ctx context.Context, documentID uint) (string, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", ErrDocumentNotFound
	}

	chunks, err := s.chunks.ListByDocumentID(ctx, documentID)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return fmt.Sprintf("No content found for document '%s'.", doc.Name), nil
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].ChunkText
	}

	prompt := buildSummaryPrompt(doc.Name, strings.Join(texts, contextSeparator))
	return s.generator.Generate(ctx, prompt), nil
}

func buildSummaryPrompt(docName, contextBlock string) string {
	return fmt.Sprintf(`You are a precise summarizer.
Your task is to summarize the following document into a few clear lines.

Rules:
- Use ONLY the provided document text.
- Do NOT add any information that is not present in the document.
- Keep the summary concise (3-5 sentences).
- If the document is empty, reply with: "No content available to summarize."

Document Name: %s

DOCUMENT CONTENT:
%s

Summary:
`, docName, contextBlock)
}
