// Package brochure implements the final generation stage.
// It builds the generation prompt from the aggregated document and asks
// the model for the brochure text once. Failures surface as a
// BrochureResult failure, never as a fault.
package brochure

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/brochurepipe/core"
)

const (
	generateTemperature = 0.7
	maxOutputTokens     = 2000
)

const systemPrompt = `You are an assistant that analyzes the contents of several relevant pages from a company website
and creates a comprehensive yet concise brochure about the company for prospective customers, investors and recruits.

Your brochure should be well-structured and include:
- Company overview and mission
- Key products/services
- Company culture and values
- Career opportunities (if available)
- Target customers and market position

Respond in clean, professional markdown format. Make the brochure engaging and informative while keeping it concise.`

// Generator produces the brochure for one company.
type Generator struct {
	aggregator core.Aggregator
	completer  core.Completer
	budget     int
	log        zerolog.Logger
}

// New creates a Generator. budget bounds the aggregated content length in
// characters.
func New(aggregator core.Aggregator, completer core.Completer, budget int, log zerolog.Logger) *Generator {
	return &Generator{
		aggregator: aggregator,
		completer:  completer,
		budget:     budget,
		log:        log.With().Str("component", "brochure").Logger(),
	}
}

// Generate aggregates the company's pages and asks the model for the
// brochure. Any failure, including an empty completion, comes back as a
// failed BrochureResult with a human-readable reason.
func (g *Generator) Generate(ctx context.Context, companyName, companyURL string) core.BrochureResult {
	g.log.Info().Str("company", companyName).Str("url", companyURL).Msg("creating brochure")

	doc := g.aggregator.Aggregate(ctx, companyURL)
	details := doc.Render(g.budget)

	text, err := g.completer.Complete(ctx, core.CompletionRequest{
		System:      systemPrompt,
		User:        userPrompt(companyName, details),
		Temperature: generateTemperature,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return core.BrochureResult{
			FailureReason: fmt.Sprintf("failed to create brochure for %s: %v", companyName, err),
		}
	}
	if strings.TrimSpace(text) == "" {
		return core.BrochureResult{
			FailureReason: fmt.Sprintf("failed to create brochure for %s: model returned empty output", companyName),
		}
	}

	return core.BrochureResult{Markdown: text}
}

func userPrompt(companyName, details string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are looking at a company called: %s\n", companyName)
	b.WriteString("Here are the contents of its landing page and other relevant pages; ")
	b.WriteString("use this information to build a comprehensive brochure of the company in markdown.\n\n")
	b.WriteString(details)
	return b.String()
}
