// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textextract turns PDF files into plain text. Extraction is treated
// as an external collaborator of the summary pipeline, so the backends here
// only wrap third-party tools behind a common interface.
package textextract

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/material-summary/pkg/types"
)

// Extractor returns the full plain text of a PDF, all pages concatenated.
// Implementations open and close the file within a single call.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// New returns the Extractor selected by cfg.Backend.
func New(cfg types.ExtractorConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendLedongthuc, "":
		return &LedongthucExtractor{}, nil
	case types.BackendPdfcpu:
		return &PdfcpuExtractor{}, nil
	case types.BackendPdftotext:
		return NewPdftotextExtractor(cfg.Pdftotext), nil
	default:
		return nil, fmt.Errorf("unsupported extractor backend %q: use ledongthuc, pdfcpu, or pdftotext", cfg.Backend)
	}
}

// joinPages concatenates page texts with a newline between pages.
func joinPages(pages []string) string {
	var b strings.Builder
	for i, p := range pages {
		if i > 0 && !strings.HasSuffix(p, "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(p)
	}
	return b.String()
}
