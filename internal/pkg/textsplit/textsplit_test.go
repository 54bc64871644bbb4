package textsplit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "a  b\tc\n\nd", "a b c d"},
		{"trims edges", "  hello world  ", "hello world"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
		{"already normalized", "a b c", "a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"a  b\nc", "  x ", "", "plain text here"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestChunkTwelveWords(t *testing.T) {
	chunks, err := Chunk("a b c d e f g h i j k l", 5, 2)
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	assert.Equal(t, "a b c d e", chunks[0])
	assert.Equal(t, "d e f g h", chunks[1])
	assert.Equal(t, "g h i j k", chunks[2])
	assert.Equal(t, "j k l", chunks[3])
}

func TestChunkPreservesWordOrder(t *testing.T) {
	words := make([]string, 0, 1200)
	for i := 0; i < 1200; i++ {
		words = append(words, string(rune('a'+i%26)))
	}
	text := strings.Join(words, " ")

	chunks, err := Chunk(text, DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)
	// 1200 words, step 400: windows start at 0, 400, 800.
	require.Len(t, chunks, 3)

	// Dropping each window's leading overlap words and rejoining must give
	// back the original text.
	step := DefaultChunkSize - DefaultChunkOverlap
	rejoined := chunks[0]
	for i := 1; i < len(chunks); i++ {
		tail := strings.Fields(chunks[i])
		overlapLen := len(strings.Fields(chunks[i-1])) - step
		rejoined += " " + strings.Join(tail[overlapLen:], " ")
	}
	assert.Equal(t, text, rejoined)
}

func TestChunkShortText(t *testing.T) {
	chunks, err := Chunk("only three words", 500, 100)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "only three words", chunks[0])
}

func TestChunkNormalizesWindows(t *testing.T) {
	chunks, err := Chunk("a\t\tb\n c   d", 3, 1)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "a b c", chunks[0])
	assert.Equal(t, "c d", chunks[1])
}

func TestChunkEmptyInput(t *testing.T) {
	chunks, err := Chunk("", 500, 100)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = Chunk("   \n\t ", 500, 100)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkInvalidParams(t *testing.T) {
	for _, p := range []struct{ size, overlap int }{
		{5, 5},
		{5, 6},
		{0, 0},
		{-1, 0},
		{5, -1},
	} {
		_, err := Chunk("a b c", p.size, p.overlap)
		assert.ErrorIs(t, err, ErrInvalidChunking)
	}
}
