package cli

import (
	"github.com/spf13/cobra"

	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/config"
	"github.com/sdejongh/dirdiff/pkg/models"
)

// loadConfig loads configuration from file or returns default
func loadConfig(f *Flags) (*config.Config, error) {
	if f.ConfigFile != "" {
		return config.LoadFromFile(f.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with the flags the user set
func applyFlagsToConfig(cmd *cobra.Command, f *Flags, cfg *config.Config) {
	changed := cmd.Flags().Changed

	// Output mode
	switch {
	case changed("context"):
		cfg.Diff.Format = config.FormatContext
		cfg.Diff.ContextLines = 3
	case changed("context-lines"):
		cfg.Diff.Format = config.FormatContext
		cfg.Diff.ContextLines = f.ContextLines
	case changed("unified"):
		cfg.Diff.Format = config.FormatUnified
		cfg.Diff.ContextLines = 3
	case changed("unified-lines"):
		cfg.Diff.Format = config.FormatUnified
		cfg.Diff.ContextLines = f.UnifiedLines
	case changed("ndiff"):
		cfg.Diff.Format = config.FormatNdiff
	case changed("html"):
		cfg.Diff.Format = config.FormatHTML
		cfg.Output.HTMLFile = f.HTMLFile
	}

	if changed("brief") {
		cfg.Output.Brief = f.Brief
	}
	if changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, f.Exclude...)
	}
	if changed("color") {
		cfg.Output.Color = f.Color
	}
	if changed("progress") {
		cfg.Output.Progress = f.Progress
	}
	if changed("summary") {
		cfg.Output.Summary = f.Summary
	}
	if changed("missing-member") {
		cfg.Compare.MissingMember = models.MissingMemberPolicy(f.MissingMember)
	}
	if changed("method") {
		cfg.Compare.Method = f.Method
	}

	// Logging
	if changed("log-file") {
		cfg.Logging.File = f.LogFile
	}
	if changed("log-format") {
		cfg.Logging.Format = f.LogFormat
	}
	if changed("log-level") {
		cfg.Logging.Level = f.LogLevel
	}
}

// newComparator builds the content comparator the compare settings select
func newComparator(c config.CompareConfig) (compare.Comparator, error) {
	comparator, err := compare.New(c.Method, c.BufferSize)
	if err != nil {
		return nil, err
	}
	if h, ok := comparator.(*compare.HashComparator); ok {
		h.SetPartialHashEnabled(c.PartialHash)
	}
	return comparator, nil
}
