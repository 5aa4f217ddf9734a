// Package output turns comparison events into reports and prints run
// feedback (progress, summary) on the terminal.
package output

import (
	"github.com/sdejongh/dirdiff/pkg/models"
)

// Artifact is the finished report of one run
type Artifact struct {
	Name      string
	Content   []byte
	MediaType string
}

// Renderer creates report sinks. It is chosen once at startup.
type Renderer interface {
	// Name returns the renderer name
	Name() string

	// NewSink returns an empty sink for one run
	NewSink() Sink
}

// Sink accumulates comparison events in the order they are emitted
type Sink interface {
	// Begin starts the report of one top-level comparison
	Begin(pathA, pathB string)

	// OnSectionHeader opens a section whose entries follow
	OnSectionHeader(title string)

	// OnEmptySection records a section that was checked and had no entries
	OnEmptySection(title, message string)

	// OnEntryList records a section made of plain names
	OnEntryList(title string, names []string)

	// OnFileDiff records the outcome of one file pair
	OnFileDiff(event *models.FileDiffEvent) error

	// Finalize produces the artifact. It may only be called once.
	Finalize() (*Artifact, error)
}
