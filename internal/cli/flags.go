package cli

import (
	"github.com/spf13/cobra"
)

// Flags holds the command-line flag values of one invocation
type Flags struct {
	ConfigFile string
	DumpConfig bool
	SaveConfig string

	// Output mode
	Context      bool
	ContextLines int
	Unified      bool
	UnifiedLines int
	Ndiff        bool
	HTMLFile     string

	Brief         bool
	Exclude       []string
	Color         string
	Progress      bool
	Summary       bool
	MissingMember string
	Method        string

	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

// outputModeFlags cannot be combined
var outputModeFlags = []string{"context", "context-lines", "unified", "unified-lines", "ndiff", "html"}

// addFlags registers every flag on cmd
func addFlags(cmd *cobra.Command, f *Flags) {
	cmd.Flags().StringVar(&f.ConfigFile, "config", "", "config file, YAML or TOML (default is $HOME/.config/dirdiff/config.yaml)")
	cmd.Flags().BoolVar(&f.DumpConfig, "dump-config", false, "print the effective configuration as YAML and exit")
	cmd.Flags().StringVar(&f.SaveConfig, "save-config", "", "write the effective configuration to FILE (.yaml or .toml) and exit")
	cmd.MarkFlagsMutuallyExclusive("dump-config", "save-config")

	cmd.Flags().BoolVarP(&f.Context, "context", "c", false, "output 3 lines of copied context")
	cmd.Flags().IntVarP(&f.ContextLines, "context-lines", "C", 3, "output NUM lines of copied context")
	cmd.Flags().BoolVarP(&f.Unified, "unified", "u", false, "output 3 lines of unified context (default)")
	cmd.Flags().IntVarP(&f.UnifiedLines, "unified-lines", "U", 3, "output NUM lines of unified context")
	cmd.Flags().BoolVarP(&f.Ndiff, "ndiff", "n", false, "output line-by-line differences with change hints")
	cmd.Flags().StringVarP(&f.HTMLFile, "html", "H", "", "write an HTML report to OUTPUT_FILE")
	cmd.MarkFlagsMutuallyExclusive(outputModeFlags...)

	cmd.Flags().BoolVarP(&f.Brief, "brief", "q", false, "report only when files differ")
	cmd.Flags().StringArrayVarP(&f.Exclude, "exclude", "x", nil, "exclude directory entries matching PAT (repeatable)")
	cmd.Flags().StringVar(&f.Color, "color", "auto", "colorize output: auto, always, never")
	cmd.Flags().BoolVar(&f.Progress, "progress", false, "show a progress bar on stderr")
	cmd.Flags().BoolVar(&f.Summary, "summary", false, "print a summary table on stderr")
	cmd.Flags().StringVar(&f.MissingMember, "missing-member", "skip", "file/directory pair without the implied file: skip, report")
	cmd.Flags().StringVar(&f.Method, "method", "binary", "content comparison method: binary, hash")

	cmd.Flags().StringVar(&f.LogFile, "log-file", "", "write diagnostics to a rotating log file")
	cmd.Flags().StringVar(&f.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&f.LogLevel, "log-level", "warn", "log level: debug, info, warn, error")
}
