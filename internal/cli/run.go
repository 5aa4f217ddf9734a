package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/config"
	"github.com/sdejongh/dirdiff/pkg/diff"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/output"
	"github.com/sdejongh/dirdiff/pkg/textdiff"
)

func run(cmd *cobra.Command, flags *Flags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	// Load configuration
	cfg, err := loadConfig(flags)
	if err != nil {
		return usageError("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, flags, cfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}

	if flags.DumpConfig {
		data, err := config.Marshal(cfg)
		if err != nil {
			return failure("failed to marshal config: %w", err)
		}
		if _, err := stdout.Write(data); err != nil {
			return failure("failed to write config: %w", err)
		}
		return nil
	}

	if flags.SaveConfig != "" {
		if err := config.SaveToFile(cfg, flags.SaveConfig); err != nil {
			return failure("%w", err)
		}
		fmt.Fprintf(stdout, "Configuration file created at: %s\n", flags.SaveConfig)
		return nil
	}

	paths, err := normalizeArgs(args)
	if err != nil {
		return err
	}

	// Create logger
	base, err := createLogger(cfg.Logging, stderr)
	if err != nil {
		return failure("failed to create logger: %w", err)
	}
	defer base.Close()
	logger, _ := logging.WithRunID(base)

	comparator, err := newComparator(cfg.Compare)
	if err != nil {
		return usageError("%w", err)
	}
	detector := compare.NewDetector(cfg.Compare.BinaryChunkSize, logger)
	progress := output.NewProgress(stderr, cfg.Output.Progress && output.IsTerminal(stderr))

	renderer := newRenderer(cfg, colorEnabled(cfg.Output.Color, stdout))
	sink := renderer.NewSink()

	engine := diff.NewEngine(comparator, detector, progress, logger, diff.Options{
		Excludes:      cfg.Exclude,
		MissingMember: cfg.Compare.MissingMember,
	})

	logger.Debug(ctx, "starting comparison", logging.Fields{
		"version":  Version,
		"renderer": renderer.Name(),
		"method":   comparator.Name(),
	})

	summary, err := engine.Run(ctx, models.ComparisonRequest{PathA: paths[0], PathB: paths[1]}, sink)
	if err != nil {
		if summary != nil && summary.Status == models.StatusCancelled {
			return &ExitError{Code: summary.Status.ExitCode(), Err: err}
		}
		return failure("comparison failed: %w", err)
	}

	if err := writeArtifact(sink, cfg, stdout); err != nil {
		return err
	}

	if cfg.Output.Summary {
		if err := output.WriteSummary(stderr, summary); err != nil {
			logger.Warn(ctx, "cannot print summary", logging.Fields{"error": err.Error()})
		}
	}

	return nil
}

// newRenderer picks the report renderer from the configured format
func newRenderer(cfg *config.Config, colored bool) output.Renderer {
	if cfg.Diff.Format == config.FormatHTML {
		return output.NewHTMLRenderer(output.HTMLOptions{
			FileName: cfg.Output.HTMLFile,
			Title:    cfg.Output.HTMLTitle,
			Table: textdiff.TableOptions{
				Context:      cfg.Diff.HTMLContext,
				ContextLines: cfg.Diff.HTMLContextLines,
				WrapColumn:   cfg.Diff.HTMLWrapColumn,
			},
			ShowEmptySections: cfg.Output.ShowEmptySections,
		})
	}

	return output.NewConsoleRenderer(output.ConsoleOptions{
		Format:            textdiff.Format(cfg.Diff.Format),
		ContextLines:      cfg.Diff.ContextLines,
		Brief:             cfg.Output.Brief,
		Color:             colored,
		ShowEmptySections: cfg.Output.ShowEmptySections,
	})
}

// colorEnabled resolves the color mode; auto colors terminals only and
// honors NO_COLOR
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return !color.NoColor && output.IsTerminal(w)
	}
}

// writeArtifact finalizes the report and writes it to its destination
func writeArtifact(sink output.Sink, cfg *config.Config, stdout io.Writer) error {
	artifact, err := sink.Finalize()
	if err != nil {
		return failure("failed to finalize report: %w", err)
	}

	if cfg.Diff.Format == config.FormatHTML {
		if err := os.WriteFile(artifact.Name, artifact.Content, 0644); err != nil {
			return failure("failed to write report: %w", err)
		}
		return nil
	}

	if _, err := stdout.Write(artifact.Content); err != nil {
		return failure("failed to write report: %w", err)
	}
	return nil
}
