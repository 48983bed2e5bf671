// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"

	"github.com/pdiddy/material-summary/pkg/types"
)

// dateRe matches D/M/YYYY-like dates. Each separator may independently be a
// slash or a hyphen; the values are not validated.
var dateRe = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`)

// Date returns the first date-like substring of text verbatim, or
// types.UnknownDate.
func Date(text string) string {
	if m := dateRe.FindString(text); m != "" {
		return m
	}
	return types.UnknownDate
}
