// Package diff runs comparisons: it classifies the inputs, walks directory
// trees and feeds every outcome to a report sink.
package diff

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/output"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// Options holds the engine settings that come from configuration
type Options struct {
	// Excludes are glob patterns applied to directory entries
	Excludes []string

	// MissingMember decides what a file/directory pair without the
	// implied file produces
	MissingMember models.MissingMemberPolicy
}

// Engine orchestrates one comparison run
type Engine struct {
	classifier *compare.Classifier
	comparator compare.Comparator
	detector   *compare.Detector
	progress   output.Progress
	logger     logging.Logger
	opts       Options
}

// NewEngine creates a new comparison engine
func NewEngine(
	comparator compare.Comparator,
	detector *compare.Detector,
	progress output.Progress,
	logger logging.Logger,
	opts Options,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if progress == nil {
		progress = output.NullProgress{}
	}
	if opts.MissingMember == "" {
		opts.MissingMember = models.MissingSkip
	}
	return &Engine{
		classifier: compare.NewClassifier(),
		comparator: comparator,
		detector:   detector,
		progress:   progress,
		logger:     logger,
		opts:       opts,
	}
}

// Run compares the two paths of req and reports to sink. Missing or
// incompatible inputs are logged and yield a summary without any report
// section. Only cancellation and sink failures are returned as errors.
func (e *Engine) Run(ctx context.Context, req models.ComparisonRequest, sink output.Sink) (*models.Summary, error) {
	summary := &models.Summary{
		PathA:     req.PathA,
		PathB:     req.PathB,
		StartTime: time.Now(),
		Status:    models.StatusSuccess,
	}
	defer func() {
		summary.EndTime = time.Now()
		summary.Duration = summary.EndTime.Sub(summary.StartTime)
	}()

	res := e.classifier.Classify(req.PathA, req.PathB)
	summary.Mode = res.Mode

	e.logger.Debug(ctx, "classified inputs", logging.Fields{
		"path_a": req.PathA,
		"path_b": req.PathB,
		"mode":   string(res.Mode),
	})

	if res.Err != nil {
		return e.unresolved(ctx, res, sink, summary)
	}

	e.progress.Start()
	defer e.progress.Finish()

	var err error
	switch res.Mode {
	case models.ModeDirToDir:
		err = e.runDirectories(ctx, res, sink, summary)
	default:
		err = e.runFiles(ctx, res, sink, summary)
	}
	if err != nil {
		if ctx.Err() != nil {
			summary.Status = models.StatusCancelled
			e.logger.Warn(ctx, "comparison cancelled", nil)
			return summary, ctx.Err()
		}
		return summary, err
	}

	if summary.Stats.Uncomparable > 0 {
		summary.Status = models.StatusPartial
	}

	e.logger.Info(ctx, "comparison completed", logging.Fields{
		"mode":        string(res.Mode),
		"files":       summary.Stats.FilesCompared,
		"differences": summary.Stats.Differences(),
	})
	return summary, nil
}

// unresolved handles inputs that cannot be compared as given
func (e *Engine) unresolved(ctx context.Context, res compare.Resolution, sink output.Sink, summary *models.Summary) (*models.Summary, error) {
	summary.Stats.MissingPaths = len(res.Missing)

	if errors.Is(res.Err, models.ErrInvalidComparisonMode) || res.Mode == models.ModeInvalid {
		for _, p := range res.Missing {
			e.logger.Error(ctx, "cannot compare", &models.PathError{Op: "stat", Path: p, Err: models.ErrPathNotFound}, nil)
		}
		if len(res.Missing) == 0 {
			e.logger.Error(ctx, "cannot compare", res.Err, nil)
		}
		summary.Status = models.StatusInvalid
		return summary, nil
	}

	// A file/directory pair whose directory lacks the implied file
	existing, missing := res.PathA, res.PathB
	if res.Mode == models.ModeDirToFile {
		existing, missing = res.PathB, res.PathA
	}
	e.logger.Warn(ctx, "implied file not found", logging.Fields{
		"path":   missing,
		"error":  res.Err.Error(),
		"policy": string(e.opts.MissingMember),
	})

	if e.opts.MissingMember != models.MissingReport {
		summary.Status = models.StatusSkipped
		return summary, nil
	}

	sink.Begin(res.PathA, res.PathB)
	sink.OnEntryList("Only in "+filepath.Dir(existing), []string{filepath.Base(existing)})
	if res.Mode == models.ModeDirToFile {
		summary.Stats.RightOnly++
	} else {
		summary.Stats.LeftOnly++
	}
	return summary, nil
}

// runFiles compares a single file pair. Each file is read through a backend
// rooted at its parent directory.
func (e *Engine) runFiles(ctx context.Context, res compare.Resolution, sink output.Sink, summary *models.Summary) error {
	left, err := storage.NewLocal(filepath.Dir(res.PathA))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", res.PathA, err)
	}
	defer left.Close()

	right, err := storage.NewLocal(filepath.Dir(res.PathB))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", res.PathB, err)
	}
	defer right.Close()

	pairs := &pairDiffer{comparator: e.comparator, detector: e.detector, logger: e.logger}
	nameA, nameB := filepath.Base(res.PathA), filepath.Base(res.PathB)

	sink.Begin(res.PathA, res.PathB)
	e.progress.Step(nameA, nameB)

	event, err := pairs.diff(ctx, left, right, nameA, nameB, res.PathA, res.PathB, false)
	if err != nil {
		return err
	}
	summary.Stats.RecordEvent(event)
	return sink.OnFileDiff(event)
}

// runDirectories walks both trees
func (e *Engine) runDirectories(ctx context.Context, res compare.Resolution, sink output.Sink, summary *models.Summary) error {
	left, err := storage.NewLocal(res.PathA)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", res.PathA, err)
	}
	defer left.Close()

	right, err := storage.NewLocal(res.PathB)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", res.PathB, err)
	}
	defer right.Close()

	dirs := NewDirectoryComparator(e.comparator, e.detector, e.opts.Excludes, e.progress, e.logger)

	sink.Begin(res.PathA, res.PathB)
	return dirs.Walk(ctx,
		Side{Backend: left, Display: res.PathA},
		Side{Backend: right, Display: res.PathB},
		sink, &summary.Stats)
}
