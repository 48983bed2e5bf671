// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"

	"github.com/pdiddy/material-summary/pkg/types"
)

// Elements is the fixed set of element symbols recognised as observations.
var Elements = []string{"Cu", "Fe", "C"}

// observationRe matches an element symbol, whitespace (Unicode spaces
// included), and a decimal number. Cu precedes C in the alternation so
// "Cu 12" is not read as C.
var observationRe = regexp.MustCompile(`(Cu|Fe|C)[\s\p{Zs}]+(\d+(?:\.\d+)?)`)

// Observations returns every element/value pair in text in order of
// appearance. Repeated pairs are kept.
func Observations(text string) []types.ObservationRecord {
	matches := observationRe.FindAllStringSubmatch(text, -1)
	records := make([]types.ObservationRecord, 0, len(matches))
	for _, m := range matches {
		records = append(records, types.ObservationRecord{Element: m[1], Value: m[2]})
	}
	return records
}

// Table returns the observation table for text: the header row followed by
// one row per observation, or the "no observations" row when there are none.
func Table(text string) [][]string {
	return types.ExtractedReport{Observations: Observations(text)}.Table()
}
