// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Category classifies an inspection report by the marker phrases it contains.
type Category string

const (
	CategoryMaterialAnalysis Category = "Material Analysis"
	CategoryFailureAnalysis  Category = "Failure Analysis"
	CategoryUnknown          Category = "Unknown"
)

// Sentinel values used when an extractor finds nothing.
const (
	UnknownDate        = "Unknown Date"
	SummaryNotFound    = "Summary not found."
	NoObservationsText = "No metallurgical observations found."
)

// TableHeader is the fixed first row of the observation table.
var TableHeader = []string{"Observation", "Details"}

// RawDocument is the plain text of one PDF in the scanned directory.
// It lives only for the duration of classification and extraction.
type RawDocument struct {
	// Path is the filesystem path of the source PDF.
	Path string `json:"path" yaml:"path"`

	// Text is the full extracted plain text, all pages concatenated.
	Text string `json:"text" yaml:"text"`
}

// ObservationRecord is one element/value pair found in a report,
// e.g. {Element: "Cu", Value: "12"}.
type ObservationRecord struct {
	Element string `json:"element" yaml:"element"`
	Value   string `json:"value" yaml:"value"`
}

// ExtractedReport holds everything the renderer needs for one component.
// Every field always carries a value; missing data is represented by the
// UnknownDate and SummaryNotFound sentinels.
type ExtractedReport struct {
	// Component is the search key as entered by the user (lowercased).
	Component string `json:"component" yaml:"component"`

	// Date is the first date-like substring, verbatim.
	Date string `json:"date" yaml:"date"`

	// Summary is the trimmed text of the summary window.
	Summary string `json:"summary" yaml:"summary"`

	// Observations lists element/value pairs in order of appearance,
	// duplicates included.
	Observations []ObservationRecord `json:"observations" yaml:"observations"`
}

// Table returns the observation table as rendered: the header row followed by
// one row per observation, or a single sentinel row when there are none.
func (r ExtractedReport) Table() [][]string {
	rows := make([][]string, 0, len(r.Observations)+1)
	rows = append(rows, []string{TableHeader[0], TableHeader[1]})
	for _, o := range r.Observations {
		rows = append(rows, []string{o.Element, o.Value})
	}
	if len(rows) == 1 {
		rows = append(rows, []string{NoObservationsText, ""})
	}
	return rows
}
