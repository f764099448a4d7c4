// Package extract implements the Extractor interface.
// It parses fetched HTML into a title, cleaned text, and a normalized
// absolute link set, removing noise elements first.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/brochurepipe/core"
	"github.com/gaurav-prasanna/brochurepipe/core/links"
)

// DefaultTitle is used when a page has no usable <title>.
const DefaultTitle = "No title found"

// noiseSelectors are elements removed from the body before text
// extraction. They contribute no brochure-worthy content.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"img", "input",
	"nav", "footer", "header",
}

// HTMLExtractor turns fetch results into cleaned page content.
// It is stateless; Extract is a pure transform of its input.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses the fetched bytes as HTML. For a failed fetch it returns
// a PageContent whose text carries the failure message, so the landing
// section of an aggregation can still be rendered.
func (e *HTMLExtractor) Extract(res core.FetchResult) core.PageContent {
	if !res.Succeeded {
		return core.PageContent{
			SourceURL: res.URL,
			Title:     DefaultTitle,
			Text:      fmt.Sprintf("Failed to fetch content from %s: %s", res.URL, res.ErrMessage),
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return core.PageContent{
			SourceURL: res.URL,
			Title:     DefaultTitle,
			Text:      fmt.Sprintf("Failed to parse content from %s: %v", res.URL, err),
		}
	}

	return core.PageContent{
		SourceURL: res.URL,
		Title:     extractTitle(doc),
		Text:      extractText(doc),
		Links:     extractLinks(doc, res.URL),
	}
}

// CleanFragment returns the body of the page with noise elements removed,
// serialized as an HTML fragment. Used by archival side channels that
// normalize pages to Markdown.
func (e *HTMLExtractor) CleanFragment(res core.FetchResult) (string, error) {
	if !res.Succeeded {
		return "", fmt.Errorf("no content for %s: %s", res.URL, res.ErrMessage)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", fmt.Errorf("no body element in %s", res.URL)
	}
	body.Find(strings.Join(noiseSelectors, ", ")).Remove()

	fragment, err := goquery.OuterHtml(body)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return fragment, nil
}

func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return DefaultTitle
	}
	return title
}

// extractText removes noise elements from the body and returns its
// visible text, one trimmed line per text node, with no blank lines.
func extractText(doc *goquery.Document) string {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return ""
	}
	body.Find(strings.Join(noiseSelectors, ", ")).Remove()

	var lines []string
	for _, node := range body.Nodes {
		collectText(node, &lines)
	}
	return strings.Join(lines, "\n")
}

// collectText walks the node tree appending each non-empty, trimmed text
// node as its own line.
func collectText(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			*out = append(*out, collapseSpace(s))
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}

// collapseSpace squeezes runs of whitespace inside a line to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// extractLinks resolves every anchor href against the page URL, keeping
// only absolute http/https links, deduplicated in first-seen order.
func extractLinks(doc *goquery.Document, pageURL string) []string {
	seen := make(map[string]bool)
	var result []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		resolved := resolveHref(href, pageURL)
		if resolved == "" {
			return
		}
		normalized := links.Normalize(resolved)
		if seen[normalized] {
			return
		}
		seen[normalized] = true
		result = append(result, normalized)
	})

	return result
}

// resolveHref resolves a possibly relative href against the page URL and
// filters out non-http(s) schemes.
func resolveHref(href, pageURL string) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	resolved := links.Resolve(href, pageURL)
	if resolved == "" {
		return ""
	}
	if !strings.HasPrefix(resolved, "http://") && !strings.HasPrefix(resolved, "https://") {
		return ""
	}
	return resolved
}
