// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ContentBackend identifies the tool that pulls text and tables out of a PDF.
type ContentBackend string

const (
	BackendPDF        ContentBackend = "pdf"
	BackendFitz       ContentBackend = "fitz"
	BackendMarkitdown ContentBackend = "markitdown"
)

// OutputFormat selects how an extracted statement is written.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatCSV  OutputFormat = "csv"
	FormatXLSX OutputFormat = "xlsx"
	FormatText OutputFormat = "text"
)

// Extension returns the file extension used for batch output files.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatCSV:
		return ".csv"
	case FormatXLSX:
		return ".xlsx"
	case FormatText:
		return ".txt"
	default:
		return ".json"
	}
}

// ExtractionConfig holds settings for the extract command.
type ExtractionConfig struct {
	// Backend selects the content backend: pdf, fitz, or markitdown.
	Backend ContentBackend `json:"backend" yaml:"backend"`

	// Password unlocks encrypted statements. Empty means none supplied.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Format is the output format for extracted records.
	Format OutputFormat `json:"format" yaml:"format"`

	// OutputDir receives one output file per input statement. Empty writes
	// to stdout.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Force re-extracts statements whose output file already exists.
	Force bool `json:"force" yaml:"force"`
}

// GenerationConfig holds settings for sample statement generation.
type GenerationConfig struct {
	// OutputDir is where generated PDFs are written (default "test_statements").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Seed makes generated transactions reproducible. Zero picks a random seed.
	Seed int64 `json:"seed" yaml:"seed"`
}

// TemplateStoreConfig locates the bank template database.
type TemplateStoreConfig struct {
	// DBPath is the SQLite database file (default "db/custom.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ToolConfig groups the configuration of every command.
type ToolConfig struct {
	Extraction ExtractionConfig    `json:"extraction" yaml:"extraction"`
	Generation GenerationConfig    `json:"generation" yaml:"generation"`
	Templates  TemplateStoreConfig `json:"templates" yaml:"templates"`
}
