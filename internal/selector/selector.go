// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selector finds the inspection report that mentions a component.
// Candidate documents are produced lazily in directory order so a search can
// stop at the first match without reading the remaining files.
package selector

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/material-summary/internal/textextract"
	"github.com/pdiddy/material-summary/pkg/types"
)

// pdfExt is the extension, compared case-insensitively, of candidate files.
const pdfExt = ".pdf"

// ErrNotFound is returned by First when no document mentions the component.
var ErrNotFound = errors.New("component not found in any PDF")

// ReadError reports a candidate PDF whose text could not be extracted.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Selector walks a directory of PDFs using an injected text extractor.
type Selector struct {
	extractor textextract.Extractor
	logger    *slog.Logger

	// OnSkip is called for every unreadable PDF that Matches and First
	// step over. It may be nil.
	OnSkip func(*ReadError)
}

// New creates a Selector. A nil logger uses slog.Default().
func New(ex textextract.Extractor, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{extractor: ex, logger: logger}
}

// Candidates lists the PDF files of dir in directory order (sorted by name).
// Subdirectories are skipped, not descended into.
func Candidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), pdfExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// Documents yields one RawDocument per candidate PDF. Text is extracted only
// when the consumer asks for the next document. A failed extraction yields
// the document path together with a *ReadError; listing failures yield a
// zero document and the error, and end the sequence.
func (s *Selector) Documents(ctx context.Context, dir string) iter.Seq2[types.RawDocument, error] {
	return func(yield func(types.RawDocument, error) bool) {
		paths, err := Candidates(dir)
		if err != nil {
			yield(types.RawDocument{}, err)
			return
		}
		for _, p := range paths {
			if err := ctx.Err(); err != nil {
				yield(types.RawDocument{}, err)
				return
			}
			s.logger.Debug("extracting text", "path", p)
			text, err := s.extractor.Extract(ctx, p)
			if err != nil {
				if !yield(types.RawDocument{Path: p}, &ReadError{Path: p, Err: err}) {
					return
				}
				continue
			}
			if !yield(types.RawDocument{Path: p, Text: text}, nil) {
				return
			}
		}
	}
}

// Matches yields the documents whose text contains component, compared
// case-insensitively after trimming. Unreadable PDFs are reported through
// OnSkip and skipped. Any other error is yielded and ends the sequence.
func (s *Selector) Matches(ctx context.Context, dir, component string) iter.Seq2[types.RawDocument, error] {
	needle := strings.ToLower(strings.TrimSpace(component))
	return func(yield func(types.RawDocument, error) bool) {
		for doc, err := range s.Documents(ctx, dir) {
			if err != nil {
				var re *ReadError
				if errors.As(err, &re) {
					s.logger.Warn("skipping unreadable PDF", "path", re.Path, "error", re.Err)
					if s.OnSkip != nil {
						s.OnSkip(re)
					}
					continue
				}
				yield(doc, err)
				return
			}
			if !Mentions(doc.Text, needle) {
				s.logger.Debug("component not mentioned", "path", doc.Path)
				continue
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}

// First returns the first document mentioning component, or ErrNotFound.
func (s *Selector) First(ctx context.Context, dir, component string) (types.RawDocument, error) {
	for doc, err := range s.Matches(ctx, dir, component) {
		return doc, err
	}
	return types.RawDocument{}, ErrNotFound
}

// Mentions reports whether the lowercased component occurs in the lowercased
// text.
func Mentions(text, component string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(component))
}
