package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParagraphText(t *testing.T) {
	src := `<html><head><title>T</title><style>p{color:red}</style></head>
	<body>
	<h1>Heading</h1>
	<p>First <b>paragraph</b> text.</p>
	<div><p>Second paragraph.</p></div>
	<script>var x = "not text";</script>
	</body></html>`

	got := ParagraphText(src)
	assert.Contains(t, got, "First paragraph text.")
	assert.Contains(t, got, "Second paragraph.")
	assert.NotContains(t, got, "Heading")
	assert.NotContains(t, got, "not text")
	assert.NotContains(t, got, "color:red")
}

func TestParagraphTextEmpty(t *testing.T) {
	assert.Equal(t, "", ParagraphText("<html><body><div>no paragraphs</div></body></html>"))
	assert.Equal(t, "", ParagraphText(""))
}

func TestWebPageFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte("<html><body><p>Hello page.</p></body></html>"))
	}))
	defer srv.Close()

	f := NewWebPageFetcher(0)
	text, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Hello page.", text)
}

func TestWebPageFetcherBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewWebPageFetcher(0)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
