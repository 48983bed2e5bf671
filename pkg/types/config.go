// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SummaryConfig is the per-run input of the pipeline: which directory to
// scan and which component to look for. The CLI fills it from interactive
// prompts; tests construct it directly.
type SummaryConfig struct {
	// Directory is scanned non-recursively for *.pdf files.
	Directory string `json:"directory" yaml:"directory"`

	// Component is the free-text search key, matched case-insensitively.
	Component string `json:"component" yaml:"component"`
}

// ExtractorBackend identifies the PDF text extraction tool.
type ExtractorBackend string

const (
	BackendLedongthuc ExtractorBackend = "ledongthuc"
	BackendPdfcpu     ExtractorBackend = "pdfcpu"
	BackendPdftotext  ExtractorBackend = "pdftotext"
)

// ExtractorConfig holds settings for PDF text extraction.
type ExtractorConfig struct {
	// Backend selects the extraction tool (default ledongthuc).
	Backend ExtractorBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Pdftotext is the binary name or absolute path used by the pdftotext
	// backend (default "pdftotext").
	Pdftotext string `json:"pdftotext" yaml:"pdftotext" mapstructure:"pdftotext"`
}

// OutputConfig holds settings for the generated summary PDF.
type OutputConfig struct {
	// Dir is the directory the summary PDF is written to (default ".").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// PipelineOptions tunes the search behaviour.
type PipelineOptions struct {
	// ContinueOnWrongCategory keeps searching other files when the first
	// document mentioning the component is not a Material Analysis report.
	// When false the search stops at that document.
	ContinueOnWrongCategory bool `json:"continue_on_wrong_category" yaml:"continue_on_wrong_category" mapstructure:"continue_on_wrong_category"`
}

// HistoryConfig holds settings for the summary history store.
type HistoryConfig struct {
	// Enabled turns on recording of generated summaries.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// DBPath is the SQLite database file (default "material-summary.db").
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// AppConfig groups all settings loaded from the config file and environment.
type AppConfig struct {
	Extractor ExtractorConfig `json:"extractor" yaml:"extractor" mapstructure:"extractor"`
	Output    OutputConfig    `json:"output" yaml:"output" mapstructure:"output"`
	Pipeline  PipelineOptions `json:"pipeline" yaml:"pipeline" mapstructure:"pipeline"`
	History   HistoryConfig   `json:"history" yaml:"history" mapstructure:"history"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}

// Defaults fills zero-valued fields with their default values.
func (c *AppConfig) Defaults() {
	if c.Extractor.Backend == "" {
		c.Extractor.Backend = BackendLedongthuc
	}
	if c.Extractor.Pdftotext == "" {
		c.Extractor.Pdftotext = "pdftotext"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.History.DBPath == "" {
		c.History.DBPath = "material-summary.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
