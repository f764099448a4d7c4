// Package aggregate implements the Aggregator interface.
// It orchestrates the fetch → classify → fetch flow and assembles the
// labeled sections fed into brochure generation: landing page first, then
// each classified link in selection order. One bad link never aborts the
// aggregation of the rest.
package aggregate

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/brochurepipe/core"
)

// LandingLabel is the label of the first section of every document.
const LandingLabel = "Landing page"

// DocumentAggregator assembles an AggregatedDocument for one company URL.
type DocumentAggregator struct {
	fetcher    core.Fetcher
	extractor  core.Extractor
	classifier core.Classifier
	archiver   core.PageArchiver // optional
	log        zerolog.Logger
}

// New creates a DocumentAggregator. archiver may be nil.
func New(fetcher core.Fetcher, extractor core.Extractor, classifier core.Classifier, archiver core.PageArchiver, log zerolog.Logger) *DocumentAggregator {
	return &DocumentAggregator{
		fetcher:    fetcher,
		extractor:  extractor,
		classifier: classifier,
		archiver:   archiver,
		log:        log.With().Str("component", "aggregate").Logger(),
	}
}

// Aggregate fetches the landing page and, when that succeeds, every
// classified link. The landing section is always present; on a landing
// fetch failure it carries the failure text and is the only section.
func (a *DocumentAggregator) Aggregate(ctx context.Context, companyURL string) core.AggregatedDocument {
	landing := a.fetcher.Fetch(ctx, companyURL)
	a.archive(landing)

	landingPage := a.extractor.Extract(landing)
	doc := core.AggregatedDocument{
		Sections: []core.Section{{Label: LandingLabel, Page: landingPage}},
	}

	if !landing.Succeeded {
		a.log.Warn().Str("url", companyURL).Msg("landing fetch failed, skipping link classification")
		return doc
	}

	selected := a.classifier.Classify(ctx, companyURL, landingPage.Links)
	a.log.Info().Str("url", companyURL).Int("links", len(selected)).Msg("aggregating selected links")

	for _, cand := range selected {
		res := a.fetcher.Fetch(ctx, cand.URL)
		if !res.Succeeded {
			a.log.Warn().Str("url", cand.URL).Str("type", cand.Type).Msg("skipping unfetchable link")
			continue
		}
		a.archive(res)
		doc.Sections = append(doc.Sections, core.Section{
			Label: titleCase(cand.Type),
			Page:  a.extractor.Extract(res),
		})
	}

	return doc
}

func (a *DocumentAggregator) archive(res core.FetchResult) {
	if a.archiver == nil || !res.Succeeded {
		return
	}
	a.archiver.Archive(res)
}

// titleCase capitalizes each word of a label ("about page" → "About Page").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
