package diff

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/sdejongh/dirdiff/internal/platform"
	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/output"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// Reasons for differing entries that are not content-compared
const (
	ReasonTypeMismatch = "type mismatch"
	ReasonCycle        = "cannot compare (cycle)"
	ReasonBrokenLink   = "broken symbolic link"
	ReasonNotRegular   = "not a regular file"
	ReasonUnreadable   = "cannot read"
)

// Ancestors holds the real paths of the directories on the current
// recursion branch, per side
type Ancestors struct {
	left  map[string]struct{}
	right map[string]struct{}
}

// NewAncestors starts a branch at the given real paths
func NewAncestors(left, right string) Ancestors {
	return Ancestors{}.With(left, right)
}

// With returns a copy of the branch extended by one level
func (a Ancestors) With(left, right string) Ancestors {
	next := Ancestors{
		left:  make(map[string]struct{}, len(a.left)+1),
		right: make(map[string]struct{}, len(a.right)+1),
	}
	for k := range a.left {
		next.left[k] = struct{}{}
	}
	for k := range a.right {
		next.right[k] = struct{}{}
	}
	next.left[left] = struct{}{}
	next.right[right] = struct{}{}
	return next
}

// Contains reports whether descending into left/right would revisit a
// directory of the branch on either side
func (a Ancestors) Contains(left, right string) bool {
	_, l := a.left[left]
	_, r := a.right[right]
	return l || r
}

// DirectoryComparator compares two directory trees level by level
type DirectoryComparator struct {
	*pairDiffer
	exclude  *excluder
	progress output.Progress
}

// NewDirectoryComparator creates a directory comparator
func NewDirectoryComparator(comparator compare.Comparator, detector *compare.Detector, excludes []string, progress output.Progress, logger logging.Logger) *DirectoryComparator {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if progress == nil {
		progress = output.NullProgress{}
	}
	return &DirectoryComparator{
		pairDiffer: &pairDiffer{comparator: comparator, detector: detector, logger: logger},
		exclude:    newExcluder(excludes),
		progress:   progress,
	}
}

// Compare classifies the immediate entries of the directories at rel
func (d *DirectoryComparator) Compare(ctx context.Context, left, right Side, rel string, ancestors Ancestors) (*models.DirectoryDiffResult, error) {
	result := models.NewDirectoryDiffResult(
		platform.DisplayPath(left.Display, rel),
		platform.DisplayPath(right.Display, rel),
	)

	leftEntries, err := d.readDir(ctx, left.Backend, rel)
	if err != nil {
		return nil, err
	}
	rightEntries, err := d.readDir(ctx, right.Backend, rel)
	if err != nil {
		return nil, err
	}

	for name, l := range leftEntries {
		if _, ok := rightEntries[name]; !ok {
			result.LeftOnly = append(result.LeftOnly, l.Name)
		}
	}
	for name, r := range rightEntries {
		if _, ok := leftEntries[name]; !ok {
			result.RightOnly = append(result.RightOnly, r.Name)
		}
	}

	common := make([]string, 0, len(leftEntries))
	for name := range leftEntries {
		if _, ok := rightEntries[name]; ok {
			common = append(common, name)
		}
	}
	sort.Strings(common)

	for _, name := range common {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := d.classifyCommon(ctx, left, right, leftEntries[name], rightEntries[name], ancestors, result); err != nil {
			return nil, err
		}
	}

	sort.Strings(result.LeftOnly)
	sort.Strings(result.RightOnly)
	sort.Strings(result.Differing)
	return result, nil
}

func (d *DirectoryComparator) classifyCommon(ctx context.Context, left, right Side, l, r storage.FileInfo, ancestors Ancestors, result *models.DirectoryDiffResult) error {
	name := l.Name
	differ := func(reason string) {
		result.Differing = append(result.Differing, name)
		if reason != "" {
			result.Reasons[name] = reason
		}
	}

	switch {
	case l.Broken || r.Broken:
		differ(ReasonBrokenLink)

	case l.IsDir && r.IsDir:
		realL, errL := left.Backend.RealPath(ctx, l.RelativePath)
		realR, errR := right.Backend.RealPath(ctx, r.RelativePath)
		if errL != nil || errR != nil {
			differ(ReasonUnreadable)
			return nil
		}
		if ancestors.Contains(realL, realR) {
			d.logger.Warn(ctx, "skipping directory", logging.Fields{
				"left":  platform.DisplayPath(left.Display, l.RelativePath),
				"right": platform.DisplayPath(right.Display, r.RelativePath),
				"error": models.ErrCycleDetected.Error(),
			})
			differ(ReasonCycle)
			return nil
		}
		result.CommonSubdirs[name] = models.SubdirPair{Left: l.RelativePath, Right: r.RelativePath}

	case l.IsDir != r.IsDir:
		differ(ReasonTypeMismatch)

	case !l.IsRegular || !r.IsRegular:
		differ(ReasonNotRegular)

	default:
		d.progress.Step(l.RelativePath, r.RelativePath)
		cmp, err := d.comparator.Compare(ctx, left.Backend, right.Backend, l.RelativePath, r.RelativePath)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.Error(ctx, "cannot compare files", err, logging.Fields{"path": l.RelativePath})
			differ(ReasonUnreadable)
			return nil
		}
		if cmp.Result != compare.Same {
			differ("")
		}
	}
	return nil
}

// readDir lists a directory keyed by entry name, dropping excluded entries
func (d *DirectoryComparator) readDir(ctx context.Context, backend storage.Backend, rel string) (map[string]storage.FileInfo, error) {
	entries, err := backend.ReadDir(ctx, rel)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &models.PathError{
			Op:   "readdir",
			Path: filepath.Join(backend.Root(), rel),
			Err:  fmt.Errorf("%w: %v", models.ErrUnreadableFile, err),
		}
	}

	byName := make(map[string]storage.FileInfo, len(entries))
	for _, e := range entries {
		if d.exclude.match(e.RelativePath, e.IsDir) {
			continue
		}
		byName[e.Name] = e
	}
	return byName, nil
}

// Walk compares both trees from their roots and emits every level to sink,
// depth first in lexicographic order
func (d *DirectoryComparator) Walk(ctx context.Context, left, right Side, sink output.Sink, stats *models.Statistics) error {
	realL, err := left.Backend.RealPath(ctx, "")
	if err != nil {
		return err
	}
	realR, err := right.Backend.RealPath(ctx, "")
	if err != nil {
		return err
	}
	return d.walk(ctx, left, right, "", NewAncestors(realL, realR), sink, stats)
}

func (d *DirectoryComparator) walk(ctx context.Context, left, right Side, rel string, ancestors Ancestors, sink output.Sink, stats *models.Statistics) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := d.Compare(ctx, left, right, rel, ancestors)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// An unreadable directory is reported and its subtree skipped
		d.logger.Error(ctx, "cannot list directory", err, nil)
		event := &models.FileDiffEvent{
			PathA:  platform.DisplayPath(left.Display, rel),
			PathB:  platform.DisplayPath(right.Display, rel),
			Kind:   models.EventUncomparable,
			Reason: ReasonUnreadable,
		}
		stats.RecordEvent(event)
		return sink.OnFileDiff(event)
	}

	stats.DirsCompared++
	stats.LeftOnly += len(result.LeftOnly)
	stats.RightOnly += len(result.RightOnly)

	if err := d.emit(ctx, left, right, rel, result, sink, stats); err != nil {
		return err
	}

	names := make([]string, 0, len(result.CommonSubdirs))
	for name := range result.CommonSubdirs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pair := result.CommonSubdirs[name]
		realL, errL := left.Backend.RealPath(ctx, pair.Left)
		realR, errR := right.Backend.RealPath(ctx, pair.Right)
		if errL != nil || errR != nil {
			continue
		}
		if err := d.walk(ctx, left, right, pair.Left, ancestors.With(realL, realR), sink, stats); err != nil {
			return err
		}
	}
	return nil
}

// emit sends the three sections of one level in order
func (d *DirectoryComparator) emit(ctx context.Context, left, right Side, rel string, result *models.DirectoryDiffResult, sink output.Sink, stats *models.Statistics) error {
	emitOnly(sink, result.LeftDir, result.LeftOnly)
	emitOnly(sink, result.RightDir, result.RightOnly)

	title := fmt.Sprintf("Diff between %s and %s", result.LeftDir, result.RightDir)
	if len(result.Differing) == 0 {
		sink.OnEmptySection(title, "No Differences Found")
		return nil
	}
	sink.OnSectionHeader(title)

	for _, name := range result.Differing {
		relPath := filepath.Join(rel, name)
		displayA := filepath.Join(result.LeftDir, name)
		displayB := filepath.Join(result.RightDir, name)

		var event *models.FileDiffEvent
		if reason, ok := result.Reasons[name]; ok {
			event = &models.FileDiffEvent{PathA: displayA, PathB: displayB, Kind: models.EventUncomparable, Reason: reason}
		} else {
			var err error
			event, err = d.diff(ctx, left.Backend, right.Backend, relPath, relPath, displayA, displayB, true)
			if err != nil {
				return err
			}
		}

		stats.RecordEvent(event)
		if err := sink.OnFileDiff(event); err != nil {
			return err
		}
	}
	return nil
}

func emitOnly(sink output.Sink, dir string, names []string) {
	title := "Only in " + dir
	if len(names) == 0 {
		sink.OnEmptySection(title, "There is no file only in "+dir)
		return
	}
	sink.OnEntryList(title, names)
}
