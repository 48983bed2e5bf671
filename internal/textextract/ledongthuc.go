// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LedongthucExtractor extracts text with github.com/ledongthuc/pdf. It is the
// default backend: pure Go and tolerant of most producer quirks.
type LedongthucExtractor struct{}

// Extract reads every page of the PDF at path and returns its plain text,
// one line per text baseline.
func (LedongthucExtractor) Extract(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		texts, err := pageTexts(p)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		pages = append(pages, linesFromTexts(texts))
	}
	return joinPages(pages), nil
}

// pageTexts returns the positioned glyphs of p. The library panics on
// malformed content streams.
func pageTexts(p pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			texts, err = nil, errors.New(fmt.Sprint(r))
		}
	}()
	return p.Content().Text, nil
}

// linesFromTexts rebuilds lines from glyphs in content-stream order. A glyph
// whose baseline differs from the previous one by more than half the font
// size starts a new line; a horizontal gap wider than a fifth of the font
// size becomes a space.
func linesFromTexts(texts []pdf.Text) string {
	var sb strings.Builder
	var prev pdf.Text
	started := false
	for _, t := range texts {
		if t.S == "" || t.S == "\n" || t.S == "\r" {
			continue
		}
		if started {
			size := math.Max(math.Min(math.Abs(t.FontSize), math.Abs(prev.FontSize)), 2)
			switch {
			case math.Abs(t.Y-prev.Y) > size/2:
				sb.WriteByte('\n')
			case math.Abs(t.X-(prev.X+prev.W)) > size/5 && prev.S != " " && t.S != " ":
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
		prev, started = t, true
	}
	return trimLines(sb.String())
}
