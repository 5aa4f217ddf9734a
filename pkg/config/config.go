package config

import (
	"github.com/sdejongh/dirdiff/pkg/models"
)

// Report formats
const (
	FormatUnified = "unified"
	FormatContext = "context"
	FormatNdiff   = "ndiff"
	FormatHTML    = "html"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the application configuration
type Config struct {
	Diff    DiffConfig    `yaml:"diff" toml:"diff"`
	Compare CompareConfig `yaml:"compare" toml:"compare"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Exclude []string      `yaml:"exclude" toml:"exclude"`
}

// DiffConfig holds report format settings
type DiffConfig struct {
	Format           string `yaml:"format" toml:"format"`                         // unified, context, ndiff or html
	ContextLines     int    `yaml:"context_lines" toml:"context_lines"`           // unified/context diff context
	HTMLWrapColumn   int    `yaml:"html_wrap_column" toml:"html_wrap_column"`     // 0 disables wrapping
	HTMLContext      bool   `yaml:"html_context" toml:"html_context"`             // only changed groups in tables
	HTMLContextLines int    `yaml:"html_context_lines" toml:"html_context_lines"` // context around changed groups
}

// CompareConfig holds content comparison settings
type CompareConfig struct {
	Method          string                     `yaml:"method" toml:"method"` // binary or hash
	BufferSize      int                        `yaml:"buffer_size" toml:"buffer_size"`
	BinaryChunkSize int                        `yaml:"binary_chunk_size" toml:"binary_chunk_size"`
	MissingMember   models.MissingMemberPolicy `yaml:"missing_member" toml:"missing_member"`
	PartialHash     bool                       `yaml:"partial_hash" toml:"partial_hash"` // hash method: reject large files on their first 256KB
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Color             string `yaml:"color" toml:"color"`       // auto, always or never
	Progress          bool   `yaml:"progress" toml:"progress"` // progress bar on stderr
	Summary           bool   `yaml:"summary" toml:"summary"`   // summary table on stderr
	Brief             bool   `yaml:"brief" toml:"brief"`       // only report whether files differ
	ShowEmptySections bool   `yaml:"show_empty_sections" toml:"show_empty_sections"`
	HTMLTitle         string `yaml:"html_title" toml:"html_title"`
	HTMLFile          string `yaml:"html_file" toml:"html_file"`
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format     string `yaml:"format" toml:"format"` // "json" or "text"
	Level      string `yaml:"level" toml:"level"`   // "debug", "info", "warn", "error"
	File       string `yaml:"file" toml:"file"`     // Log file path (empty = stderr)
	MaxSize    int64  `yaml:"max_size" toml:"max_size"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Diff: DiffConfig{
			Format:           FormatUnified,
			ContextLines:     3,
			HTMLWrapColumn:   80,
			HTMLContext:      true,
			HTMLContextLines: 5,
		},
		Compare: CompareConfig{
			Method:          "binary",
			BufferSize:      65536,
			BinaryChunkSize: 1024,
			MissingMember:   models.MissingSkip,
			PartialHash:     true,
		},
		Output: OutputConfig{
			Color:             ColorAuto,
			ShowEmptySections: true,
			HTMLTitle:         "Diff Report",
		},
		Logging: LoggingConfig{
			Format:     "text",
			Level:      "warn",
			MaxSize:    10 * 1024 * 1024,
			MaxBackups: 3,
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validFormats := map[string]bool{FormatUnified: true, FormatContext: true, FormatNdiff: true, FormatHTML: true}
	if !validFormats[c.Diff.Format] {
		return &models.ValidationError{
			Field:   "diff.format",
			Message: "must be 'unified', 'context', 'ndiff' or 'html'",
		}
	}

	if c.Diff.ContextLines < 0 {
		return &models.ValidationError{
			Field:   "diff.context_lines",
			Message: "must not be negative",
		}
	}

	if c.Diff.HTMLWrapColumn < 0 {
		return &models.ValidationError{
			Field:   "diff.html_wrap_column",
			Message: "must not be negative",
		}
	}

	if c.Diff.HTMLContextLines < 0 {
		return &models.ValidationError{
			Field:   "diff.html_context_lines",
			Message: "must not be negative",
		}
	}

	if c.Diff.Format == FormatHTML && c.Output.HTMLFile == "" {
		return &models.ValidationError{
			Field:   "output.html_file",
			Message: "is required for the html format",
		}
	}

	if c.Compare.Method != "binary" && c.Compare.Method != "hash" {
		return &models.ValidationError{
			Field:   "compare.method",
			Message: "must be 'binary' or 'hash'",
		}
	}

	if c.Compare.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "compare.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if c.Compare.BinaryChunkSize < 1 {
		return &models.ValidationError{
			Field:   "compare.binary_chunk_size",
			Message: "must be at least 1 byte",
		}
	}

	if c.Compare.MissingMember != models.MissingSkip && c.Compare.MissingMember != models.MissingReport {
		return &models.ValidationError{
			Field:   "compare.missing_member",
			Message: "must be 'skip' or 'report'",
		}
	}

	validColors := map[string]bool{ColorAuto: true, ColorAlways: true, ColorNever: true}
	if !validColors[c.Output.Color] {
		return &models.ValidationError{
			Field:   "output.color",
			Message: "must be 'auto', 'always' or 'never'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
