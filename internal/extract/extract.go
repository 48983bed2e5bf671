// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls the report date, the summary section, and the
// metallurgical observations out of a report's plain text.
//
// The extractors are heuristics over unstructured text. Each one is
// independent and total: when nothing is found it returns a sentinel value
// instead of an error.
package extract

import "github.com/pdiddy/material-summary/pkg/types"

// Report runs all extractors over text and assembles the result for
// component.
func Report(component, text string) types.ExtractedReport {
	return types.ExtractedReport{
		Component:    component,
		Date:         Date(text),
		Summary:      Summary(text),
		Observations: Observations(text),
	}
}
