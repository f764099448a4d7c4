package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/brochurepipe/core"
)

type fakeCompleter struct {
	resp string
	err  error
	got  core.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req core.CompletionRequest) (string, error) {
	f.got = req
	return f.resp, f.err
}

type fakeProber struct {
	reachable func(url string) bool
}

func (f fakeProber) Probe(_ context.Context, url string) bool {
	if f.reachable == nil {
		return true
	}
	return f.reachable(url)
}

func newTestClassifier(completer core.Completer, prober core.Prober) *LinkClassifier {
	return New(completer, prober, zerolog.Nop())
}

func TestClassifySelectsLinks(t *testing.T) {
	completer := &fakeCompleter{resp: `{
		"links": [
			{"type": "about page", "url": "https://example.com/about"},
			{"type": "careers page", "url": "https://example.com/careers"}
		]
	}`}

	got := newTestClassifier(completer, fakeProber{}).Classify(
		context.Background(), "https://example.com",
		[]string{"https://example.com/about", "https://example.com/careers"})

	require.Len(t, got, 2)
	assert.Equal(t, core.LinkCandidate{Type: "about page", URL: "https://example.com/about"}, got[0])
	assert.Equal(t, core.LinkCandidate{Type: "careers page", URL: "https://example.com/careers"}, got[1])

	// The completion must run in structured mode at low temperature.
	assert.True(t, completer.got.JSONMode)
	assert.InDelta(t, 0.1, completer.got.Temperature, 0.001)
	assert.Contains(t, completer.got.User, "https://example.com/about")
}

func TestClassifyParsesFencedResponse(t *testing.T) {
	completer := &fakeCompleter{resp: "Here you go:\n```json\n" +
		`{"links": [{"type": "about page", "url": "https://example.com/about"}]}` +
		"\n```"}

	got := newTestClassifier(completer, fakeProber{}).Classify(
		context.Background(), "https://example.com", []string{"https://example.com/about"})

	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/about", got[0].URL)
}

func TestClassifyMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		resp string
	}{
		{"not json", "I could not find any links, sorry!"},
		{"broken json", `{"links": [{"type": "about"`},
		{"wrong shape", `{"selected": ["https://example.com/about"]}`},
		{"empty", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			completer := &fakeCompleter{resp: tc.resp}
			got := newTestClassifier(completer, fakeProber{}).Classify(
				context.Background(), "https://example.com", []string{"https://example.com/about"})
			assert.Empty(t, got)
		})
	}
}

func TestClassifyCompleterError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("model unavailable")}
	got := newTestClassifier(completer, fakeProber{}).Classify(
		context.Background(), "https://example.com", []string{"https://example.com/about"})
	assert.Empty(t, got)
}

func TestClassifyCapsAtFive(t *testing.T) {
	var entries []string
	for i := 0; i < 8; i++ {
		entries = append(entries, fmt.Sprintf(`{"type": "page %d", "url": "https://example.com/p%d"}`, i, i))
	}
	completer := &fakeCompleter{resp: `{"links": [` + strings.Join(entries, ",") + `]}`}

	got := newTestClassifier(completer, fakeProber{}).Classify(
		context.Background(), "https://example.com", []string{"https://example.com/p0"})

	assert.Len(t, got, maxSelected)
}

func TestClassifyDropsNonAddressable(t *testing.T) {
	completer := &fakeCompleter{resp: `{"links": [
		{"type": "about page", "url": "/about"},
		{"type": "team page", "url": "team.html"},
		{"type": "careers page", "url": "https://example.com/careers"}
	]}`}

	got := newTestClassifier(completer, fakeProber{}).Classify(
		context.Background(), "https://example.com", []string{"https://example.com/careers"})

	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/careers", got[0].URL)
}

func TestClassifyDropsUnreachable(t *testing.T) {
	completer := &fakeCompleter{resp: `{"links": [
		{"type": "about page", "url": "https://example.com/about"},
		{"type": "dead page", "url": "https://example.com/gone"}
	]}`}
	prober := fakeProber{reachable: func(url string) bool {
		return url != "https://example.com/gone"
	}}

	got := newTestClassifier(completer, prober).Classify(
		context.Background(), "https://example.com", []string{"https://example.com/about"})

	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/about", got[0].URL)
}

func TestClassifyNoCandidates(t *testing.T) {
	completer := &fakeCompleter{resp: `{"links": []}`}

	got := newTestClassifier(completer, fakeProber{}).Classify(
		context.Background(), "https://example.com", nil)

	assert.Empty(t, got)
	assert.Empty(t, completer.got.User, "completer must not be called without candidates")
}

func TestClassifyCandidatePrepFiltersAndCaps(t *testing.T) {
	var candidates []string
	candidates = append(candidates, "https://example.com/logo.png")
	for i := 0; i < 60; i++ {
		candidates = append(candidates, fmt.Sprintf("https://example.com/page-%d", i))
	}

	prepared := prepareCandidates(candidates)

	assert.Len(t, prepared, maxCandidates)
	assert.NotContains(t, prepared, "https://example.com/logo.png")
	assert.Equal(t, "https://example.com/page-0", prepared[0])
}
