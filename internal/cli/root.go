// Package cli implements the dirdiff command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the dirdiff command
func NewRootCommand() *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "dirdiff [flags] PATH_A PATH_B",
		Short: "Compare files and directories",
		Long: `dirdiff compares two files, two directory trees, or a file with the file
of the same name inside a directory. Differences are printed as unified,
context or ndiff text, or written to a self-contained HTML report.`,
		Example: `  dirdiff old.txt new.txt
  dirdiff -U 5 -x '*.o' -x .git/ src/ other/src/
  dirdiff -H report.html dirA dirB`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.DumpConfig || flags.SaveConfig != "" {
				return nil
			}
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return usageError("%w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args)
		},
	}

	cmd.SetVersionTemplate(versionTemplate)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%w", err)
	})
	addFlags(cmd, flags)

	return cmd
}

// Execute runs the command with args and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	code := ExitCode(err)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if code == ExitUsage {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		}
	}
	return code
}
