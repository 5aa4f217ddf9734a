package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sdejongh/dirdiff/pkg/textdiff"
)

// ============== ComparisonMode Tests ==============

func TestComparisonMode(t *testing.T) {
	tests := []struct {
		mode     ComparisonMode
		expected string
	}{
		{ModeFileToFile, "file-to-file"},
		{ModeDirToDir, "dir-to-dir"},
		{ModeFileToDir, "file-to-dir"},
		{ModeDirToFile, "dir-to-file"},
		{ModeInvalid, "invalid"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if string(tt.mode) != tt.expected {
				t.Errorf("ComparisonMode = %s, want %s", string(tt.mode), tt.expected)
			}
		})
	}
}

// ============== DirectoryDiffResult Tests ==============

func TestDirectoryDiffResult(t *testing.T) {
	t.Run("NewIsEmpty", func(t *testing.T) {
		r := NewDirectoryDiffResult("a", "b")
		if !r.IsEmpty() {
			t.Error("new result should be empty")
		}
		if r.LeftOnly == nil || r.RightOnly == nil || r.Differing == nil {
			t.Error("name lists should be non-nil")
		}
	})

	t.Run("CommonSubdirsAreNotDifferences", func(t *testing.T) {
		r := NewDirectoryDiffResult("a", "b")
		r.CommonSubdirs["sub"] = SubdirPair{Left: "sub", Right: "sub"}
		if !r.IsEmpty() {
			t.Error("common subdirectories alone should not count as differences")
		}
	})

	t.Run("RightOnly", func(t *testing.T) {
		r := NewDirectoryDiffResult("a", "b")
		r.RightOnly = append(r.RightOnly, "FILE_B")
		if r.IsEmpty() {
			t.Error("result with a right-only entry should not be empty")
		}
	})
}

// ============== Statistics Tests ==============

func TestStatisticsRecord(t *testing.T) {
	var s Statistics
	s.Record(EventIdentical)
	s.Record(EventTextDiff)
	s.Record(EventBinaryMismatch)
	s.Record(EventUncomparable)
	s.LeftOnly = 2

	if s.FilesCompared != 4 {
		t.Errorf("FilesCompared = %d, want 4", s.FilesCompared)
	}
	if s.FilesIdentical != 1 || s.TextDiffs != 1 || s.BinaryMismatches != 1 || s.Uncomparable != 1 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if got := s.Differences(); got != 5 {
		t.Errorf("Differences() = %d, want 5", got)
	}
}

func TestStatisticsRecordEvent(t *testing.T) {
	var s Statistics
	script := textdiff.NewScript(
		textdiff.SplitLines("a\nb\nc\n"),
		textdiff.SplitLines("a\nB\nc\nd\ne\n"),
		"a", "b",
	)
	s.RecordEvent(&FileDiffEvent{Kind: EventTextDiff, Script: script})
	s.RecordEvent(&FileDiffEvent{Kind: EventIdentical})

	if s.FilesCompared != 2 || s.TextDiffs != 1 || s.FilesIdentical != 1 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if s.LinesAdded != 3 || s.LinesRemoved != 1 {
		t.Errorf("LinesAdded/LinesRemoved = %d/%d, want 3/1", s.LinesAdded, s.LinesRemoved)
	}
}

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status RunStatus
		want   int
	}{
		{StatusSuccess, 0},
		{StatusPartial, 0},
		{StatusSkipped, 0},
		{StatusInvalid, 0},
		{StatusCancelled, 130},
		{RunStatus("bogus"), 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

// ============== Error Tests ==============

func TestPathError(t *testing.T) {
	err := &PathError{Op: "stat", Path: "/missing", Err: ErrPathNotFound}

	if err.Error() != "stat /missing: no such file or directory" {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := fmt.Errorf("classify: %w", err)
	if !errors.Is(wrapped, ErrPathNotFound) {
		t.Error("wrapped PathError should match ErrPathNotFound")
	}

	noOp := &PathError{Path: "/missing", Err: ErrPathNotFound}
	if noOp.Error() != "/missing: no such file or directory" {
		t.Errorf("Error() without op = %q", noOp.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "diff.context_lines", Message: "must not be negative"}
	if err.Error() != "diff.context_lines: must not be negative" {
		t.Errorf("Error() = %q", err.Error())
	}
}
