// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/material-summary/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{DBPath: filepath.Join(t.TempDir(), "db", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(component string, at time.Time) Entry {
	return Entry{
		Component:    component,
		SourcePath:   "/reports/" + component + ".pdf",
		Category:     types.CategoryMaterialAnalysis,
		ReportDate:   "5/6/2023",
		Summary:      "Summary of Analysis\nok",
		Observations: []types.ObservationRecord{{Element: "Fe", Value: "10"}},
		OutputPath:   component + "_material_analysis_summary.pdf",
		GeneratedAt:  at,
	}
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, entry("bolt", base)))
	require.NoError(t, s.Record(ctx, entry("gear", base.Add(time.Hour))))
	require.NoError(t, s.Record(ctx, entry("Bolt", base.Add(2*time.Hour))))

	all, err := s.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "bolt", all[0].Component, "newest first, stored lowercased")
	assert.Equal(t, "gear", all[1].Component)
	assert.True(t, all[0].GeneratedAt.Equal(base.Add(2*time.Hour)))
	assert.Equal(t, []types.ObservationRecord{{Element: "Fe", Value: "10"}}, all[0].Observations)
	assert.Equal(t, types.CategoryMaterialAnalysis, all[0].Category)
	assert.Equal(t, "5/6/2023", all[0].ReportDate)
	assert.NotZero(t, all[0].ID)

	bolts, err := s.List(ctx, Query{Component: "BOLT"})
	require.NoError(t, err)
	assert.Len(t, bolts, 2)

	limited, err := s.List(ctx, Query{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestListOrdersSubsecondTimestamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	// Recorded out of order: whole second first, then half a second before
	// it, then half a second after.
	require.NoError(t, s.Record(ctx, entry("whole", base.Add(time.Second))))
	require.NoError(t, s.Record(ctx, entry("before", base.Add(500*time.Millisecond))))
	require.NoError(t, s.Record(ctx, entry("after", base.Add(1500*time.Millisecond))))

	all, err := s.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"after", "whole", "before"},
		[]string{all[0].Component, all[1].Component, all[2].Component})
	assert.True(t, all[1].GeneratedAt.Equal(base.Add(time.Second)))
}

func TestRecordWithoutObservations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := entry("nut", time.Now())
	e.Observations = nil
	require.NoError(t, s.Record(ctx, e))

	got, err := s.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Observations)
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.List(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExportYAML(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, entry("bolt", time.Now())))

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, Query{}, &buf))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "bolt", got[0]["component"])
	assert.Equal(t, "Material Analysis", got[0]["category"])
	assert.Contains(t, buf.String(), "element: Fe")
}

func TestExportJSON(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var empty bytes.Buffer
	require.NoError(t, s.ExportJSON(ctx, Query{}, &empty))
	assert.JSONEq(t, "[]", empty.String())

	for i := range 25 {
		require.NoError(t, s.Record(ctx, entry("bolt", time.Now().Add(time.Duration(i)*time.Second))))
	}
	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(ctx, Query{}, &buf))

	var got []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got, 25, "export is not capped by the list default")
}
