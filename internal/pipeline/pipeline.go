// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the single-pass summary workflow over one directory:
// select the first report mentioning the component, classify it, extract its
// fields, and render the summary PDF.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/material-summary/internal/classify"
	"github.com/pdiddy/material-summary/internal/extract"
	"github.com/pdiddy/material-summary/internal/history"
	"github.com/pdiddy/material-summary/internal/render"
	"github.com/pdiddy/material-summary/internal/selector"
	"github.com/pdiddy/material-summary/internal/textextract"
	"github.com/pdiddy/material-summary/pkg/types"
)

// Status is the final state of a run.
type Status string

const (
	// StatusCreated means a summary PDF was written.
	StatusCreated Status = "created"
	// StatusWrongCategory means the matching report was not a Material
	// Analysis and the search stopped there.
	StatusWrongCategory Status = "wrong_category"
	// StatusNotFound means no report mentioned the component.
	StatusNotFound Status = "not_found"
)

// Outcome describes what a run did.
type Outcome struct {
	Status Status

	// Source is the matched report, empty for StatusNotFound.
	Source string

	// Category is the category of Source.
	Category types.Category

	// Output is the path of the generated PDF for StatusCreated.
	Output string

	// Report is the extracted data for StatusCreated.
	Report types.ExtractedReport

	// Skipped lists files passed over: unreadable PDFs and, when the search
	// continues past them, reports of the wrong category.
	Skipped []string
}

// Recorder stores generated summaries. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// Pipeline wires the collaborators of a run.
type Pipeline struct {
	Extractor textextract.Extractor
	Renderer  render.Renderer
	Options   types.PipelineOptions

	// OutputDir is where the summary PDF is written (default ".").
	OutputDir string

	// History is optional; nil disables recording.
	History Recorder

	Log *slog.Logger

	now func() time.Time
}

// New creates a Pipeline. A nil logger uses slog.Default().
func New(ex textextract.Extractor, r render.Renderer, opts types.PipelineOptions, outputDir string, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if outputDir == "" {
		outputDir = "."
	}
	return &Pipeline{Extractor: ex, Renderer: r, Options: opts, OutputDir: outputDir, Log: log, now: time.Now}
}

// Validate checks that cfg names a directory and a component.
func Validate(cfg types.SummaryConfig) error {
	if strings.TrimSpace(cfg.Directory) == "" {
		return errors.New("directory is required")
	}
	if strings.TrimSpace(cfg.Component) == "" {
		return errors.New("component name is required")
	}
	return nil
}

// Run searches cfg.Directory for the first report mentioning cfg.Component
// and writes its summary PDF. Human-readable status lines go to w.
//
// A missing component and a report of the wrong category are outcomes, not
// errors. Errors are returned for invalid input, an unreadable directory,
// and render or history failures.
func (p *Pipeline) Run(ctx context.Context, cfg types.SummaryConfig, w io.Writer) (Outcome, error) {
	if err := Validate(cfg); err != nil {
		return Outcome{}, err
	}
	component := strings.ToLower(strings.TrimSpace(cfg.Component))

	var out Outcome
	sel := selector.New(p.Extractor, p.Log)
	sel.OnSkip = func(re *selector.ReadError) {
		fmt.Fprintf(w, "Could not read '%s', skipping: %v\n", filepath.Base(re.Path), re.Err)
		out.Skipped = append(out.Skipped, re.Path)
	}

	for doc, err := range sel.Matches(ctx, cfg.Directory, component) {
		if err != nil {
			return out, err
		}

		category := classify.Classify(doc.Text)
		p.Log.Debug("component found", "path", doc.Path, "category", category)
		if category != types.CategoryMaterialAnalysis {
			fmt.Fprintf(w, "File '%s' is %s, not Material Analysis. Skipping.\n", filepath.Base(doc.Path), category)
			if p.Options.ContinueOnWrongCategory {
				out.Skipped = append(out.Skipped, doc.Path)
				continue
			}
			out.Status = StatusWrongCategory
			out.Source = doc.Path
			out.Category = category
			return out, nil
		}

		return p.summarize(ctx, doc, component, out, w)
	}

	fmt.Fprintln(w, "Component not found in any PDF.")
	out.Status = StatusNotFound
	return out, nil
}

// summarize extracts, renders, and records the summary for doc.
func (p *Pipeline) summarize(ctx context.Context, doc types.RawDocument, component string, out Outcome, w io.Writer) (Outcome, error) {
	report := extract.Report(component, doc.Text)
	outPath := filepath.Join(p.OutputDir, render.OutputFilename(component))

	p.Log.Debug("rendering summary", "path", outPath, "observations", len(report.Observations))
	if err := p.Renderer.Render(report, outPath); err != nil {
		return out, err
	}
	fmt.Fprintf(w, "PDF created: %s\n", outPath)

	out.Status = StatusCreated
	out.Source = doc.Path
	out.Category = types.CategoryMaterialAnalysis
	out.Output = outPath
	out.Report = report

	if p.History != nil {
		entry := history.Entry{
			Component:    component,
			SourcePath:   doc.Path,
			Category:     out.Category,
			ReportDate:   report.Date,
			Summary:      report.Summary,
			Observations: report.Observations,
			OutputPath:   outPath,
			GeneratedAt:  p.now().UTC(),
		}
		if err := p.History.Record(ctx, entry); err != nil {
			return out, fmt.Errorf("recording history: %w", err)
		}
	}
	return out, nil
}
