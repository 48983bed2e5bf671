// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every entry matching q to w as a YAML sequence.
func (s *Store) ExportYAML(ctx context.Context, q Query, w io.Writer) error {
	entries, err := s.exportEntries(ctx, q)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes every entry matching q to w as an indented JSON array.
func (s *Store) ExportJSON(ctx context.Context, q Query, w io.Writer) error {
	entries, err := s.exportEntries(ctx, q)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func (s *Store) exportEntries(ctx context.Context, q Query) ([]Entry, error) {
	q.Limit = -1
	entries, err := s.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
