package diff

import (
	"context"
	"fmt"

	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
	"github.com/sdejongh/dirdiff/pkg/textdiff"
)

// Side is one input tree: its backend and the path it is reported under
type Side struct {
	Backend storage.Backend
	Display string
}

// pairDiffer turns one file pair into a FileDiffEvent
type pairDiffer struct {
	comparator compare.Comparator
	detector   *compare.Detector
	logger     logging.Logger
}

// diff builds the event for left/pathA and right/pathB. knownDifferent skips
// the content comparison when a comparator already found the bytes differ.
func (p *pairDiffer) diff(ctx context.Context, left, right storage.Backend, pathA, pathB, displayA, displayB string, knownDifferent bool) (*models.FileDiffEvent, error) {
	event := &models.FileDiffEvent{PathA: displayA, PathB: displayB}

	// Binary content is only ever compared byte for byte
	if p.detector.IsBinary(ctx, left, pathA) || p.detector.IsBinary(ctx, right, pathB) {
		event.Kind = models.EventBinaryMismatch
		if knownDifferent {
			return event, nil
		}
		cmp, err := p.comparator.Compare(ctx, left, right, pathA, pathB)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return p.uncomparable(ctx, event, err), nil
		}
		if cmp.Result == compare.Same {
			event.Kind = models.EventIdentical
		}
		return event, nil
	}

	linesA, err := readLines(ctx, left, pathA)
	if err != nil {
		return p.uncomparable(ctx, event, err), nil
	}
	linesB, err := readLines(ctx, right, pathB)
	if err != nil {
		return p.uncomparable(ctx, event, err), nil
	}

	event.Script = textdiff.NewScript(linesA, linesB, displayA, displayB)
	event.Kind = models.EventTextDiff
	if event.Script.Equal() {
		event.Kind = models.EventIdentical
	}
	return event, nil
}

func (p *pairDiffer) uncomparable(ctx context.Context, event *models.FileDiffEvent, err error) *models.FileDiffEvent {
	p.logger.Error(ctx, "cannot compare files", err, logging.Fields{
		"path_a": event.PathA,
		"path_b": event.PathB,
	})
	event.Kind = models.EventUncomparable
	event.Reason = models.ErrUnreadableFile.Error()
	return event
}

func readLines(ctx context.Context, backend storage.Backend, path string) ([]string, error) {
	r, err := backend.Read(ctx, path)
	if err != nil {
		return nil, &models.PathError{Op: "open", Path: path, Err: fmt.Errorf("%w: %v", models.ErrUnreadableFile, err)}
	}
	defer r.Close()

	lines, err := textdiff.ReadLines(r)
	if err != nil {
		return nil, &models.PathError{Op: "read", Path: path, Err: fmt.Errorf("%w: %v", models.ErrUnreadableFile, err)}
	}
	return lines, nil
}
