// Package fetch implements the Fetcher and Prober interfaces.
// It performs HTTP GETs with a browser-like header set and retries
// transient failures with exponential backoff.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/brochurepipe/core"
)

// browserHeaders make the request look like a regular desktop browser;
// plenty of company sites reject the Go default user agent outright.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// HTTPFetcher fetches web pages via HTTP with retry/backoff. It also
// serves as the reachability prober, sharing header configuration but
// using a shorter per-request timeout.
type HTTPFetcher struct {
	client      *http.Client
	probeClient *http.Client
	maxAttempts int
	log         zerolog.Logger

	// backoff returns the sleep before retrying after the given
	// zero-based attempt. Overridable in tests.
	backoff func(attempt int) time.Duration
}

// New creates an HTTPFetcher. timeout applies to each GET attempt,
// probeTimeout to HEAD probes, and maxAttempts bounds the retry loop
// (minimum 1). Redirects are followed in both cases.
func New(timeout, probeTimeout time.Duration, maxAttempts int, log zerolog.Logger) *HTTPFetcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &HTTPFetcher{
		client:      &http.Client{Timeout: timeout},
		probeClient: &http.Client{Timeout: probeTimeout},
		maxAttempts: maxAttempts,
		log:         log.With().Str("component", "fetch").Logger(),
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * time.Second
		},
	}
}

// Fetch retrieves the given URL, retrying failed attempts with
// exponential backoff. Exhausted retries are reported in the result,
// never returned as an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) core.FetchResult {
	var lastErr error
	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		f.log.Info().Str("url", url).Int("attempt", attempt+1).Int("max", f.maxAttempts).Msg("fetching")

		res, err := f.fetchOnce(ctx, url)
		if err == nil {
			f.log.Info().Str("url", url).Int("status", res.StatusCode).Msg("fetched")
			return res
		}
		lastErr = err
		f.log.Warn().Str("url", url).Int("attempt", attempt+1).Err(err).Msg("fetch attempt failed")

		if attempt < f.maxAttempts-1 {
			select {
			case <-ctx.Done():
				return failedResult(url, ctx.Err())
			case <-time.After(f.backoff(attempt)):
			}
		}
	}

	f.log.Error().Str("url", url).Int("attempts", f.maxAttempts).Err(lastErr).Msg("fetch failed")
	return failedResult(url, lastErr)
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.FetchResult{}, fmt.Errorf("creating request: %w", err)
	}
	setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return core.FetchResult{}, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return core.FetchResult{}, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.FetchResult{}, fmt.Errorf("reading response body: %w", err)
	}

	return core.FetchResult{
		URL:        url,
		Body:       body,
		StatusCode: resp.StatusCode,
		Succeeded:  true,
	}, nil
}

// Probe checks whether a URL answers a HEAD request with a non-error
// status. Any transport error or status >= 400 counts as unreachable;
// probes are not retried.
func (f *HTTPFetcher) Probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	setHeaders(req)

	resp, err := f.probeClient.Do(req)
	if err != nil {
		f.log.Debug().Str("url", url).Err(err).Msg("probe failed")
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 400
}

func setHeaders(req *http.Request) {
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
}

func failedResult(url string, err error) core.FetchResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return core.FetchResult{
		URL:        url,
		Succeeded:  false,
		ErrMessage: msg,
	}
}
