package models

import (
	"github.com/sdejongh/dirdiff/pkg/textdiff"
)

// ComparisonMode describes how two input paths relate to each other
type ComparisonMode string

const (
	// ModeFileToFile compares two regular files
	ModeFileToFile ComparisonMode = "file-to-file"
	// ModeDirToDir compares two directory trees
	ModeDirToDir ComparisonMode = "dir-to-dir"
	// ModeFileToDir compares a file with the file of the same name inside a directory
	ModeFileToDir ComparisonMode = "file-to-dir"
	// ModeDirToFile compares the file of the same name inside a directory with a file
	ModeDirToFile ComparisonMode = "dir-to-file"
	// ModeInvalid indicates the inputs cannot be compared
	ModeInvalid ComparisonMode = "invalid"
)

// ComparisonRequest holds the two paths given on the command line
type ComparisonRequest struct {
	PathA string
	PathB string
}

// SubdirPair holds the relative paths of a directory present on both sides
type SubdirPair struct {
	Left  string
	Right string
}

// DirectoryDiffResult is the outcome of comparing one directory level
type DirectoryDiffResult struct {
	// LeftDir and RightDir are the display paths of the compared directories
	LeftDir  string
	RightDir string

	// LeftOnly holds names present only in the left directory
	LeftOnly []string

	// RightOnly holds names present only in the right directory
	RightOnly []string

	// Differing holds names present on both sides whose content differs
	// or that cannot be compared
	Differing []string

	// Reasons explains differing entries that were not content-compared
	// (type mismatch, cycle, stat failure). Keyed by name.
	Reasons map[string]string

	// CommonSubdirs maps a directory name to the subpaths to recurse into
	CommonSubdirs map[string]SubdirPair
}

// NewDirectoryDiffResult creates an empty result for one directory level
func NewDirectoryDiffResult(leftDir, rightDir string) *DirectoryDiffResult {
	return &DirectoryDiffResult{
		LeftDir:       leftDir,
		RightDir:      rightDir,
		LeftOnly:      []string{},
		RightOnly:     []string{},
		Differing:     []string{},
		Reasons:       make(map[string]string),
		CommonSubdirs: make(map[string]SubdirPair),
	}
}

// IsEmpty reports whether no difference was found at this level
// (common subdirectories are not differences by themselves)
func (r *DirectoryDiffResult) IsEmpty() bool {
	return len(r.LeftOnly) == 0 && len(r.RightOnly) == 0 && len(r.Differing) == 0
}

// EventKind categorizes the outcome of comparing one file pair
type EventKind string

const (
	// EventTextDiff carries a line-level edit script
	EventTextDiff EventKind = "text-diff"
	// EventBinaryMismatch indicates binary content that differs
	EventBinaryMismatch EventKind = "binary-mismatch"
	// EventIdentical indicates the pair has the same content
	EventIdentical EventKind = "identical"
	// EventUncomparable indicates the pair could not be compared
	EventUncomparable EventKind = "uncomparable"
)

// FileDiffEvent is produced once per compared file pair
type FileDiffEvent struct {
	PathA string
	PathB string
	Kind  EventKind

	// Script is set for EventTextDiff
	Script *textdiff.Script

	// Reason is set for EventUncomparable
	Reason string
}

// MissingMemberPolicy decides what happens when the file implied inside a
// directory (file-to-dir, dir-to-file) does not exist
type MissingMemberPolicy string

const (
	// MissingSkip logs the missing member and produces no report section
	MissingSkip MissingMemberPolicy = "skip"
	// MissingReport reports the existing file as only present on its side
	MissingReport MissingMemberPolicy = "report"
)
