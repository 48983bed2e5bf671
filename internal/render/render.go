// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns an ExtractedReport into the summary PDF. The page
// layout is described as a pdfcpu "create" JSON document and rendered by
// pdfcpu.
package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/material-summary/pkg/types"
)

// filenameSuffix is appended to the component name to form the output file.
const filenameSuffix = "_material_analysis_summary.pdf"

// Renderer writes a summary document for an extracted report.
type Renderer interface {
	Render(report types.ExtractedReport, path string) error
}

// OutputFilename returns the summary file name for component: lowercased,
// spaces replaced by underscores.
func OutputFilename(component string) string {
	name := strings.ToLower(strings.TrimSpace(component))
	return strings.ReplaceAll(name, " ", "_") + filenameSuffix
}

// DisplayName returns component in title case, e.g. "steel pipe" -> "Steel Pipe".
func DisplayName(component string) string {
	return cases.Title(language.English).String(strings.TrimSpace(component))
}

// Title returns the document title for component.
func Title(component string) string {
	return "Material Analysis of " + DisplayName(component)
}

// PDFRenderer renders reports with pdfcpu.
type PDFRenderer struct {
	conf *model.Configuration
}

// NewPDFRenderer creates a renderer using pdfcpu's default configuration.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{conf: model.NewDefaultConfiguration()}
}

// Render writes the summary PDF for report to path, replacing any existing
// file.
func (r *PDFRenderer) Render(report types.ExtractedReport, path string) error {
	layout, err := NewLayout(report).JSON()
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(layout), &out, r.conf); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
