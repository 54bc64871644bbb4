package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Some sites reject requests without a browser-like user agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

const maxPageBody = 8 << 20 // 8 MB

// WebPageFetcher downloads a web page and extracts its paragraph text.
type WebPageFetcher struct {
	httpClient *http.Client
}

func NewWebPageFetcher(timeout time.Duration) *WebPageFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &WebPageFetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the page at url and returns the concatenated text of its
// <p> elements. The returned text is raw; the caller normalizes it.
func (f *WebPageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build page request failed: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s failed: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBody))
	if err != nil {
		return "", fmt.Errorf("read page body failed: %w", err)
	}
	return ParagraphText(string(body)), nil
}

// ParagraphText parses an HTML document and returns the text content of all
// <p> elements, separated by spaces. Markup outside paragraphs (navigation,
// scripts, headings) is ignored.
func ParagraphText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}

	var paragraphs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			var sb strings.Builder
			collectText(n, &sb)
			if text := strings.Join(strings.Fields(sb.String()), " "); text != "" {
				paragraphs = append(paragraphs, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(paragraphs, " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
		return
	}
	// Script and style bodies are text nodes too, skip them.
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
