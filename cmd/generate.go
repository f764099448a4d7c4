// Package cmd — generate command.
// This is the main command that assembles the pipeline:
// fetch → extract → classify → fetch each link → aggregate → generate.
//
// It handles flag validation, renderer selection, company-name detection,
// and writing the finished brochure.
package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/brochurepipe/core"
	"github.com/gaurav-prasanna/brochurepipe/core/aggregate"
	"github.com/gaurav-prasanna/brochurepipe/core/brochure"
	"github.com/gaurav-prasanna/brochurepipe/core/classify"
	"github.com/gaurav-prasanna/brochurepipe/core/config"
	"github.com/gaurav-prasanna/brochurepipe/core/extract"
	"github.com/gaurav-prasanna/brochurepipe/core/fetch"
	"github.com/gaurav-prasanna/brochurepipe/core/llm"
	"github.com/gaurav-prasanna/brochurepipe/core/normalize"
	"github.com/gaurav-prasanna/brochurepipe/core/output"
	"github.com/gaurav-prasanna/brochurepipe/core/render"
)

// Flag variables.
var (
	flagName      string
	flagMarkdown  bool
	flagPDF       bool
	flagOutputDir string
	flagDumpPages string
	flagVerbose   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <url>",
	Short: "Generate a company brochure from a website",
	Long: `Generate fetches the landing page of the given URL, selects brochure-relevant
subpages with the language model, aggregates their content, and writes a
marketing brochure.

Examples:
  brochurepipe generate https://example.com
  brochurepipe generate example.com --name "Example Co" --pdf
  brochurepipe generate https://example.com --output_dir ./out --dump-pages ./pages`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&flagName, "name", "", "Company name (default: detected from the domain)")

	// Output format flags (mutually exclusive; Markdown is the default).
	generateCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Write the brochure as Markdown (default)")
	generateCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Write the brochure as PDF")

	generateCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	generateCmd.Flags().StringVar(&flagDumpPages, "dump-pages", "", "Also archive every fetched page as Markdown into this directory")
	generateCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if flagMarkdown && flagPDF {
		return fmt.Errorf("--markdown and --pdf are mutually exclusive")
	}

	rawURL := normalizeInputURL(args[0])
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include a host, e.g. https://example.com)", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(flagVerbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var renderer core.Renderer = render.NewMarkdownRenderer()
	if flagPDF {
		renderer = render.NewPDFRenderer()
	}

	fetcher := fetch.New(cfg.FetchTimeout, cfg.ProbeTimeout, cfg.FetchMaxAttempts, logger)
	extractor := extract.New()
	completer := llm.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, logger)
	classifier := classify.New(completer, fetcher, logger)

	var archiver core.PageArchiver
	if flagDumpPages != "" {
		archiver, err = newPageDumper(flagDumpPages, extractor, logger)
		if err != nil {
			return fmt.Errorf("initializing page dump directory: %w", err)
		}
	}

	aggregator := aggregate.New(fetcher, extractor, classifier, archiver, logger)
	generator := brochure.New(aggregator, completer, cfg.ContentBudget, logger)

	companyName := flagName
	if companyName == "" {
		companyName = detectCompanyName(rawURL)
		logger.Info().Str("company", companyName).Msg("company name detected from domain")
	}

	// Advisory pre-flight check; a slow or HEAD-hostile site still gets
	// the full retry treatment in the pipeline proper.
	if !fetcher.Probe(ctx, rawURL) {
		logger.Warn().Str("url", rawURL).Msg("site did not answer the pre-flight probe, continuing anyway")
	}

	result := generator.Generate(ctx, companyName, rawURL)
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "Interrupted, shutting down.")
		return nil
	}
	if result.Failed() {
		return fmt.Errorf("%s", result.FailureReason)
	}

	fmt.Fprintln(os.Stdout, result.Markdown)

	// Persistence is best effort: a write failure must not discard the
	// brochure that was just printed.
	if err := writeBrochure(result.Markdown, companyName, rawURL, renderer, logger); err != nil {
		logger.Error().Err(err).Msg("could not save brochure")
	}
	return nil
}

func writeBrochure(markdown, companyName, sourceURL string, renderer core.Renderer, logger zerolog.Logger) error {
	writer, err := output.New(flagOutputDir)
	if err != nil {
		return err
	}

	meta := core.BrochureMeta{
		Company:     companyName,
		SourceURL:   sourceURL,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := renderer.Render(markdown, meta)
	if err != nil {
		return err
	}

	path, err := writer.WriteBrochure(companyName, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Brochure saved to: %s\n", path)
	return nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// normalizeInputURL prefixes https:// when the input has no scheme.
func normalizeInputURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

// detectCompanyName derives a display name from the domain:
// https://www.acme-corp.com → "Acme-corp".
func detectCompanyName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "Company"
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	label := strings.Split(host, ".")[0]
	if label == "" {
		return "Company"
	}
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// pageDumper archives fetched pages as Markdown. Failures are logged and
// swallowed: archiving never affects the pipeline.
type pageDumper struct {
	extractor  *extract.HTMLExtractor
	normalizer *normalize.MarkdownNormalizer
	writer     *output.Writer
	log        zerolog.Logger
}

func newPageDumper(dir string, extractor *extract.HTMLExtractor, logger zerolog.Logger) (*pageDumper, error) {
	writer, err := output.New(dir)
	if err != nil {
		return nil, err
	}
	return &pageDumper{
		extractor:  extractor,
		normalizer: normalize.New(),
		writer:     writer,
		log:        logger.With().Str("component", "dump").Logger(),
	}, nil
}

func (d *pageDumper) Archive(res core.FetchResult) {
	fragment, err := d.extractor.CleanFragment(res)
	if err != nil {
		d.log.Warn().Str("url", res.URL).Err(err).Msg("skipping page dump")
		return
	}
	markdown, err := d.normalizer.Normalize(fragment)
	if err != nil {
		d.log.Warn().Str("url", res.URL).Err(err).Msg("skipping page dump")
		return
	}
	path, err := d.writer.WritePage(res.URL, []byte(markdown), ".md")
	if err != nil {
		d.log.Warn().Str("url", res.URL).Err(err).Msg("could not write page dump")
		return
	}
	d.log.Debug().Str("url", res.URL).Str("path", path).Msg("page archived")
}
