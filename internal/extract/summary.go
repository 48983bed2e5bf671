// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/material-summary/pkg/types"
)

const (
	// SummaryMarker starts the summary section, matched case-insensitively.
	SummaryMarker = "summary of analysis"

	// SummaryWindow is the number of characters, marker included, taken as
	// the summary section.
	SummaryWindow = 700
)

// summaryRowRe matches table rows that bleed into the summary window. The
// separator also admits Unicode spaces such as U+00A0, common in PDF text.
var summaryRowRe = regexp.MustCompile(`^(?:Cu|Fe|C)[\s\p{Zs}]+\d+`)

// Summary returns the summary section of text, or types.SummaryNotFound.
func Summary(text string) string {
	return SummaryWithWindow(text, SummaryWindow)
}

// SummaryWithWindow is Summary with a custom window size. The window starts
// at the marker and may end mid-line; observation rows (Cu, Fe, C followed by
// a number) are dropped from it.
func SummaryWithWindow(text string, window int) string {
	runes := []rune(text)
	lower := strings.Map(unicode.ToLower, string(runes))
	idx := strings.Index(lower, SummaryMarker)
	if idx < 0 {
		return types.SummaryNotFound
	}
	start := utf8.RuneCountInString(lower[:idx])
	end := min(start+window, len(runes))

	var kept []string
	for _, line := range splitLines(string(runes[start:end])) {
		if summaryRowRe.MatchString(strings.TrimLeftFunc(line, unicode.IsSpace)) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// splitLines splits s on line boundaries: \n, \r\n, \r, vertical tab, form
// feed, file/group/record separators, NEL, and the Unicode line and paragraph
// separators. A trailing boundary does not produce an empty last line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
