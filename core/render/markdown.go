// Package render provides output renderers for the finished brochure.
// This file implements the Markdown renderer, which is a passthrough
// since the model already produces Markdown.
package render

import (
	"github.com/gaurav-prasanna/brochurepipe/core"
)

// MarkdownRenderer writes the brochure Markdown as-is.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes (passthrough).
func (r *MarkdownRenderer) Render(markdown string, meta core.BrochureMeta) ([]byte, error) {
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
