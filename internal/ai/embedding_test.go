package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddingServer(t *testing.T, vectors [][]float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		data := make([]map[string]interface{}, len(vectors))
		for i, v := range vectors {
			data[i] = map[string]interface{}{"embedding": v}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))
}

func TestEmbed(t *testing.T) {
	srv := embeddingServer(t, [][]float32{{0.1, 0.2, 0.3}})
	defer srv.Close()

	c := NewEmbeddingClient(srv.URL, "key", "test-model", 3)
	vec, err := c.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbedEmptyInput(t *testing.T) {
	c := NewEmbeddingClient("http://unused", "", "m", 3)
	_, err := c.Embed(context.Background(), "   ")
	assert.Error(t, err)
}

func TestEmbedDimensionMismatch(t *testing.T) {
	srv := embeddingServer(t, [][]float32{{0.1, 0.2}})
	defer srv.Close()

	c := NewEmbeddingClient(srv.URL, "", "m", 3)
	_, err := c.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestEmbedBatch(t *testing.T) {
	srv := embeddingServer(t, [][]float32{{1, 0, 0}, {0, 1, 0}})
	defer srv.Close()

	c := NewEmbeddingClient(srv.URL, "", "m", 3)
	vecs, err := c.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{0, 1, 0}, vecs[1])
}

func TestEmbedBatchCountMismatch(t *testing.T) {
	srv := embeddingServer(t, [][]float32{{1, 0, 0}})
	defer srv.Close()

	c := NewEmbeddingClient(srv.URL, "", "m", 3)
	_, err := c.EmbedBatch(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count mismatch")
}

func TestEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewEmbeddingClient(srv.URL, "", "m", 3)
	_, err := c.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
