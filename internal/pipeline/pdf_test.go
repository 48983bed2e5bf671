// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/material-summary/internal/render"
	"github.com/pdiddy/material-summary/internal/textextract"
	"github.com/pdiddy/material-summary/pkg/types"
)

// writeInputPDF creates a one-page report PDF holding lines.
func writeInputPDF(t *testing.T, path string, lines ...string) {
	t.Helper()
	l := render.Layout{
		Paper:  "A4P",
		Origin: "UpperLeft",
		Pages: map[string]render.Page{
			"1": {Content: render.Content{Text: []render.TextBox{{
				Value: strings.Join(lines, "\n"),
				Pos:   [2]float64{40, 50},
				Font:  &render.Font{Name: "Helvetica", Size: 11},
			}}}},
		},
	}
	data, err := l.JSON()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, api.Create(nil, bytes.NewReader(data), &out, nil))
	require.NoError(t, os.WriteFile(path, out.Bytes(), 0o644))
}

var feRowRe = regexp.MustCompile(`Fe\s+10`)

func TestRunEndToEndWithRealPDFs(t *testing.T) {
	for _, backend := range []types.ExtractorBackend{types.BackendLedongthuc, types.BackendPdfcpu} {
		t.Run(string(backend), func(t *testing.T) {
			ex, err := textextract.New(types.ExtractorConfig{Backend: backend})
			require.NoError(t, err)

			dir := t.TempDir()
			writeInputPDF(t, filepath.Join(dir, "a_gear.pdf"),
				"Material Analysis Report", "Component: gear", "Date: 1/2/2022")
			writeInputPDF(t, filepath.Join(dir, "b_bolt.pdf"),
				"Material Analysis Report", "Component: bolt", "Date: 5/6/2023",
				"Summary of Analysis", "Fe 10", "Grain normal.")

			outDir := t.TempDir()
			p := New(ex, render.NewPDFRenderer(), types.PipelineOptions{}, outDir, nil)

			var log bytes.Buffer
			out, err := p.Run(context.Background(), types.SummaryConfig{Directory: dir, Component: "bolt"}, &log)
			require.NoError(t, err)
			require.Equal(t, StatusCreated, out.Status, log.String())

			assert.Equal(t, filepath.Join(dir, "b_bolt.pdf"), out.Source)
			assert.Equal(t, "5/6/2023", out.Report.Date)
			assert.Equal(t, []types.ObservationRecord{{Element: "Fe", Value: "10"}}, out.Report.Observations)
			assert.Contains(t, out.Report.Summary, "Grain normal.")
			assert.NotContains(t, out.Report.Summary, "Fe 10")

			wantPath := filepath.Join(outDir, "bolt_material_analysis_summary.pdf")
			assert.Equal(t, wantPath, out.Output)

			text, err := ex.Extract(context.Background(), wantPath)
			require.NoError(t, err)
			assert.Contains(t, text, "Material Analysis of Bolt")
			assert.Contains(t, text, "Date: 5/6/2023")
			assert.Contains(t, text, "Summary of Analysis:")
			assert.Contains(t, text, "Grain normal.")
			assert.Contains(t, text, "Observation")
			assert.Regexp(t, feRowRe, text)
		})
	}
}

func TestRunUnknownCategoryRealPDFWritesNothing(t *testing.T) {
	ex, err := textextract.New(types.ExtractorConfig{Backend: types.BackendLedongthuc})
	require.NoError(t, err)

	dir := t.TempDir()
	writeInputPDF(t, filepath.Join(dir, "notes.pdf"), "Inspection notes", "Component: bolt", "Date: 5/6/2023")

	outDir := t.TempDir()
	p := New(ex, render.NewPDFRenderer(), types.PipelineOptions{}, outDir, nil)

	var log bytes.Buffer
	out, err := p.Run(context.Background(), types.SummaryConfig{Directory: dir, Component: "bolt"}, &log)
	require.NoError(t, err)
	assert.Equal(t, StatusWrongCategory, out.Status)
	assert.Equal(t, types.CategoryUnknown, out.Category)
	assert.Contains(t, log.String(), "File 'notes.pdf' is Unknown, not Material Analysis. Skipping.")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
