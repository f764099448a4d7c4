// Package core defines the pipeline types and interfaces for brochurepipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw body and response metadata from one fetch.
// Succeeded is false once retries are exhausted; callers must check it
// rather than expect an error.
type FetchResult struct {
	URL        string
	Body       []byte
	StatusCode int
	Succeeded  bool
	ErrMessage string
}

// PageContent holds the cleaned text and hyperlinks of a fetched page.
// Text contains no markup and no blank lines. Links are absolute,
// deduplicated http/https URLs.
type PageContent struct {
	SourceURL string
	Title     string
	Text      string
	Links     []string
}

// LinkCandidate is one model-selected link with its classified label
// (e.g. "about page", "careers page").
type LinkCandidate struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Section is one labeled page inside an aggregated document.
type Section struct {
	Label string
	Page  PageContent
}

// AggregatedDocument is the ordered multi-page content fed into brochure
// generation. The landing page is always the first section.
type AggregatedDocument struct {
	Sections []Section
}

// BrochureMeta carries the header fields renderers put above the brochure.
type BrochureMeta struct {
	Company     string
	SourceURL   string
	GeneratedAt string // ISO8601
}

// BrochureResult is the terminal artifact: either the brochure Markdown or
// a human-readable failure reason.
type BrochureResult struct {
	Markdown      string
	FailureReason string
}

// Failed reports whether brochure generation produced no usable output.
func (r BrochureResult) Failed() bool {
	return r.FailureReason != ""
}

// CompletionRequest is one chat completion exchange with the model.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// Fetcher retrieves a URL, absorbing transport errors into the result.
type Fetcher interface {
	Fetch(ctx context.Context, url string) FetchResult
}

// Prober performs a lightweight reachability check on a URL.
type Prober interface {
	Probe(ctx context.Context, url string) bool
}

// Extractor turns a fetch result into cleaned page content. Pure transform.
type Extractor interface {
	Extract(res FetchResult) PageContent
}

// Classifier selects the brochure-relevant links from a candidate set.
// Output is best effort: at most 5 candidates, possibly none.
type Classifier interface {
	Classify(ctx context.Context, pageURL string, links []string) []LinkCandidate
}

// Completer is the LLM collaborator behind classification and generation.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Aggregator assembles the multi-page document for one company URL.
type Aggregator interface {
	Aggregate(ctx context.Context, companyURL string) AggregatedDocument
}

// PageArchiver receives every successfully fetched page, for archival
// side channels such as --dump-pages. Implementations must not fail the
// pipeline.
type PageArchiver interface {
	Archive(res FetchResult)
}

// Renderer converts brochure Markdown into a final output format.
type Renderer interface {
	Render(markdown string, meta BrochureMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
