package textsplit

import (
	"errors"
	"strings"
)

const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

// ErrInvalidChunking is returned when the window parameters cannot produce
// an advancing window.
var ErrInvalidChunking = errors.New("chunk size must be positive and greater than overlap")

// Normalize collapses every run of whitespace (spaces, tabs, newlines) into
// a single space and trims the result. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Chunk splits text into overlapping windows of size words, advancing the
// window start by size-overlap words each step. The final window may be
// shorter. Each window is normalized and dropped if empty. Output depends
// only on the input text and the two parameters.
func Chunk(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, ErrInvalidChunking
	}

	words := strings.Fields(text)
	var chunks []string
	for i := 0; i < len(words); i += size - overlap {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		window := Normalize(strings.Join(words[i:end], " "))
		if window != "" {
			chunks = append(chunks, window)
		}
	}
	return chunks, nil
}
