// Package classify implements the Classifier interface.
// It delegates link selection to the language model in structured output
// mode, then validates every selected URL before handing it on. Model
// output is untrusted: malformed responses degrade to an empty selection.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/brochurepipe/core"
	"github.com/gaurav-prasanna/brochurepipe/core/links"
)

const (
	// maxCandidates bounds how many links go into the prompt.
	maxCandidates = 50
	// maxSelected bounds how many links the model may pick.
	maxSelected = 5

	classifyTemperature = 0.1
)

const systemPrompt = `You are provided with a list of links found on a webpage.
You are able to decide which of the links would be most relevant to include in a brochure about the company,
such as links to an About page, Company page, Careers/Jobs pages, Products/Services pages, or Team pages.

You should respond in JSON format with only the most relevant links (maximum 5 links).
Example response:
{
    "links": [
        {"type": "about page", "url": "https://full.url/goes/here/about"},
        {"type": "careers page", "url": "https://another.full.url/careers"},
        {"type": "products page", "url": "https://example.com/products"}
    ]
}

Important: Only include links that are clearly relevant for a company brochure.
Exclude: Terms of Service, Privacy Policy, Contact forms, Social media links, Blog posts, Documentation.`

// LinkClassifier selects brochure-relevant links via the model.
type LinkClassifier struct {
	completer core.Completer
	prober    core.Prober
	log       zerolog.Logger
}

// New creates a LinkClassifier.
func New(completer core.Completer, prober core.Prober, log zerolog.Logger) *LinkClassifier {
	return &LinkClassifier{
		completer: completer,
		prober:    prober,
		log:       log.With().Str("component", "classify").Logger(),
	}
}

// Classify asks the model to pick at most 5 brochure-relevant links from
// the candidate set and returns only the selections that are addressable
// and reachable. Every failure mode degrades to a shorter (possibly
// empty) selection; Classify never reports an error.
func (c *LinkClassifier) Classify(ctx context.Context, pageURL string, candidates []string) []core.LinkCandidate {
	prepared := prepareCandidates(candidates)
	if len(prepared) == 0 {
		return nil
	}

	raw, err := c.completer.Complete(ctx, core.CompletionRequest{
		System:      systemPrompt,
		User:        userPrompt(pageURL, prepared),
		Temperature: classifyTemperature,
		JSONMode:    true,
	})
	if err != nil {
		c.log.Warn().Str("url", pageURL).Err(err).Msg("link classification failed")
		return nil
	}

	selected := parseSelection(raw)
	if len(selected) == 0 {
		c.log.Warn().Str("url", pageURL).Msg("no usable links in classifier response")
		return nil
	}

	var validated []core.LinkCandidate
	for _, cand := range selected {
		if len(validated) == maxSelected {
			break
		}
		if !links.Addressable(cand.URL) {
			c.log.Debug().Str("url", cand.URL).Msg("dropping non-addressable candidate")
			continue
		}
		// Probe failures are conflated with dead links on purpose: the
		// aggregator tolerates a short selection, a dead fetch costs more.
		if !c.prober.Probe(ctx, cand.URL) {
			c.log.Debug().Str("url", cand.URL).Msg("dropping unreachable candidate")
			continue
		}
		validated = append(validated, cand)
	}

	c.log.Info().Str("url", pageURL).Int("selected", len(validated)).Msg("links classified")
	return validated
}

// prepareCandidates filters out static assets and caps the set fed into
// the prompt.
func prepareCandidates(candidates []string) []string {
	var prepared []string
	for _, link := range candidates {
		if links.IsStaticAsset(link) {
			continue
		}
		prepared = append(prepared, link)
		if len(prepared) == maxCandidates {
			break
		}
	}
	return prepared
}

func userPrompt(pageURL string, candidates []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is the list of links on the website of %s - ", pageURL)
	b.WriteString("please decide which of these are relevant web links for a brochure about the company. ")
	b.WriteString("Respond with the full https URL in JSON format. Select only the most important links (max 5).\n\n")
	b.WriteString("Links:\n")
	b.WriteString(strings.Join(candidates, "\n"))
	return b.String()
}

// selection is the expected shape of the classifier response.
type selection struct {
	Links []core.LinkCandidate `json:"links"`
}

// parseSelection extracts the selection from the raw model output.
// Local models often wrap JSON in prose or code fences even in JSON mode,
// so the outermost object is cut out before unmarshaling. Anything that
// still fails to parse yields nil.
func parseSelection(raw string) []core.LinkCandidate {
	payload := extractJSONObject(raw)
	if payload == "" {
		return nil
	}
	var sel selection
	if err := json.Unmarshal([]byte(payload), &sel); err != nil {
		return nil
	}
	return sel.Links
}

// extractJSONObject returns the substring from the first '{' to the last
// '}', or "" when no object is present.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
