// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns canned text per file name and records every call.
type fakeExtractor struct {
	texts  map[string]string
	errors map[string]error
	calls  []string
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) (string, error) {
	name := filepath.Base(path)
	f.calls = append(f.calls, name)
	if err, ok := f.errors[name]; ok {
		return "", err
	}
	return f.texts[name], nil
}

// setupDir creates empty files with the given names in a temp directory.
func setupDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("%PDF-1.4"), 0o644))
	}
	return dir
}

func TestCandidates(t *testing.T) {
	dir := setupDir(t, "b.pdf", "a.PDF", "notes.txt", "c.Pdf", "pdf")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.pdf"), 0o755))

	got, err := Candidates(dir)
	require.NoError(t, err)

	var names []string
	for _, p := range got {
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{"a.PDF", "b.pdf", "c.Pdf"}, names)
}

func TestCandidatesMissingDirectory(t *testing.T) {
	_, err := Candidates(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading directory")
}

func TestFirst(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		texts     map[string]string
		component string
		wantFile  string
		wantErr   error
		wantCalls []string
	}{
		{
			name:      "first match wins and stops the scan",
			files:     []string{"a.pdf", "b.pdf", "c.pdf"},
			texts:     map[string]string{"a.pdf": "gear report", "b.pdf": "BOLT inspection", "c.pdf": "bolt again"},
			component: "bolt",
			wantFile:  "b.pdf",
			wantCalls: []string{"a.pdf", "b.pdf"},
		},
		{
			name:      "component is matched case-insensitively and trimmed",
			files:     []string{"a.pdf"},
			texts:     map[string]string{"a.pdf": "Report on the Steel Pipe assembly"},
			component: "  STEEL pipe ",
			wantFile:  "a.pdf",
			wantCalls: []string{"a.pdf"},
		},
		{
			name:      "no match",
			files:     []string{"a.pdf", "b.pdf"},
			texts:     map[string]string{"a.pdf": "gear", "b.pdf": "shaft"},
			component: "bolt",
			wantErr:   ErrNotFound,
			wantCalls: []string{"a.pdf", "b.pdf"},
		},
		{
			name:      "empty directory",
			component: "bolt",
			wantErr:   ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupDir(t, tt.files...)
			ex := &fakeExtractor{texts: tt.texts}
			s := New(ex, nil)

			doc, err := s.First(context.Background(), dir, tt.component)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantFile, filepath.Base(doc.Path))
				assert.Equal(t, tt.texts[tt.wantFile], doc.Text)
			}
			assert.Equal(t, tt.wantCalls, ex.calls)
		})
	}
}

func TestFirstSkipsUnreadablePDF(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf")
	ex := &fakeExtractor{
		texts:  map[string]string{"b.pdf": "bolt material analysis"},
		errors: map[string]error{"a.pdf": errors.New("malformed xref")},
	}
	s := New(ex, nil)
	var skipped []*ReadError
	s.OnSkip = func(re *ReadError) { skipped = append(skipped, re) }

	doc, err := s.First(context.Background(), dir, "bolt")
	require.NoError(t, err)
	assert.Equal(t, "b.pdf", filepath.Base(doc.Path))

	require.Len(t, skipped, 1)
	assert.Equal(t, "a.pdf", filepath.Base(skipped[0].Path))
	assert.EqualError(t, skipped[0].Unwrap(), "malformed xref")
	assert.Contains(t, skipped[0].Error(), "malformed xref")
}

func TestFirstMissingDirectory(t *testing.T) {
	s := New(&fakeExtractor{}, nil)
	_, err := s.First(context.Background(), filepath.Join(t.TempDir(), "nope"), "bolt")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDocumentsYieldsReadErrors(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf")
	ex := &fakeExtractor{
		texts:  map[string]string{"b.pdf": "text"},
		errors: map[string]error{"a.pdf": errors.New("encrypted")},
	}
	s := New(ex, nil)

	var paths []string
	var errs []error
	for doc, err := range s.Documents(context.Background(), dir) {
		paths = append(paths, filepath.Base(doc.Path))
		errs = append(errs, err)
	}
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, paths)
	var re *ReadError
	require.ErrorAs(t, errs[0], &re)
	assert.NoError(t, errs[1])
}

func TestDocumentsIsLazy(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf", "c.pdf")
	ex := &fakeExtractor{texts: map[string]string{}}
	s := New(ex, nil)

	for range s.Documents(context.Background(), dir) {
		break
	}
	assert.Equal(t, []string{"a.pdf"}, ex.calls)
}

func TestMatchesYieldsEveryMatch(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf", "c.pdf")
	ex := &fakeExtractor{texts: map[string]string{"a.pdf": "bolt", "b.pdf": "nut", "c.pdf": "Bolt"}}
	s := New(ex, nil)

	var names []string
	for doc, err := range s.Matches(context.Background(), dir, "bolt") {
		require.NoError(t, err)
		names = append(names, filepath.Base(doc.Path))
	}
	assert.Equal(t, []string{"a.pdf", "c.pdf"}, names)
}

func TestDocumentsStopsOnCancelledContext(t *testing.T) {
	dir := setupDir(t, "a.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(&fakeExtractor{}, nil)
	_, err := s.First(ctx, dir, "bolt")
	require.ErrorIs(t, err, context.Canceled)
}

func TestMentions(t *testing.T) {
	assert.True(t, Mentions("The BOLT failed", "bolt"))
	assert.True(t, Mentions("Steel Pipe", "steel PIPE"))
	assert.False(t, Mentions("nut", "bolt"))
}
