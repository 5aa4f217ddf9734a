package models

import (
	"time"
)

// Summary represents the results of a comparison run
type Summary struct {
	// Request details
	PathA string
	PathB string
	Mode  ComparisonMode

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Overall status
	Status RunStatus
}

// Statistics holds comparison counters
type Statistics struct {
	DirsCompared     int
	FilesCompared    int
	FilesIdentical   int
	TextDiffs        int
	BinaryMismatches int
	Uncomparable     int
	LeftOnly         int
	RightOnly        int
	MissingPaths     int

	// Line counts across all text differences
	LinesAdded   int
	LinesRemoved int
}

// Differences returns the number of reported differences
func (s Statistics) Differences() int {
	return s.TextDiffs + s.BinaryMismatches + s.Uncomparable + s.LeftOnly + s.RightOnly
}

// Record updates the counters for one file pair event
func (s *Statistics) Record(kind EventKind) {
	s.FilesCompared++
	switch kind {
	case EventIdentical:
		s.FilesIdentical++
	case EventTextDiff:
		s.TextDiffs++
	case EventBinaryMismatch:
		s.BinaryMismatches++
	case EventUncomparable:
		s.Uncomparable++
	}
}

// RecordEvent records an event and the lines its edit script changes
func (s *Statistics) RecordEvent(event *FileDiffEvent) {
	s.Record(event.Kind)
	if event.Script != nil {
		st := event.Script.Stats()
		s.LinesAdded += st.Added
		s.LinesRemoved += st.Removed
	}
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusSuccess indicates the comparison ran to completion
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates some entries could not be compared
	StatusPartial RunStatus = "partial"
	// StatusSkipped indicates no comparison was produced (missing member)
	StatusSkipped RunStatus = "skipped"
	// StatusInvalid indicates the inputs could not be classified
	StatusInvalid RunStatus = "invalid"
	// StatusCancelled indicates the run was cancelled
	StatusCancelled RunStatus = "cancelled"
)

// ExitCode returns the process exit code for the run status.
// Differences and missing inputs are not failures.
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess, StatusPartial, StatusSkipped, StatusInvalid:
		return 0
	case StatusCancelled:
		return 130
	default:
		return 1
	}
}
