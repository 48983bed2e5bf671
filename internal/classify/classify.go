// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns an inspection report to a category by looking for
// marker phrases in its text.
package classify

import (
	"strings"

	"github.com/pdiddy/material-summary/pkg/types"
)

// Marker phrases, matched case-insensitively. The material marker is checked
// first, so a report mentioning both is a Material Analysis.
const (
	MaterialMarker = "material analysis"
	FailureMarker  = "failure analysis"
)

// Classify returns the category of a report's text.
func Classify(text string) types.Category {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, MaterialMarker):
		return types.CategoryMaterialAnalysis
	case strings.Contains(lower, FailureMarker):
		return types.CategoryFailureAnalysis
	default:
		return types.CategoryUnknown
	}
}
