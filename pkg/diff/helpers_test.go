package diff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/output"
)

// call is one recorded sink invocation
type call struct {
	Method  string
	Title   string
	Message string
	Names   []string
	Event   *models.FileDiffEvent
}

// recordingSink keeps every call in order
type recordingSink struct {
	calls     []call
	finalized bool
}

func (s *recordingSink) Begin(pathA, pathB string) {
	s.calls = append(s.calls, call{Method: "begin", Title: pathA + " " + pathB})
}

func (s *recordingSink) OnSectionHeader(title string) {
	s.calls = append(s.calls, call{Method: "header", Title: title})
}

func (s *recordingSink) OnEmptySection(title, message string) {
	s.calls = append(s.calls, call{Method: "empty", Title: title, Message: message})
}

func (s *recordingSink) OnEntryList(title string, names []string) {
	s.calls = append(s.calls, call{Method: "entries", Title: title, Names: append([]string(nil), names...)})
}

func (s *recordingSink) OnFileDiff(event *models.FileDiffEvent) error {
	s.calls = append(s.calls, call{Method: "event", Event: event})
	return nil
}

func (s *recordingSink) Finalize() (*output.Artifact, error) {
	if s.finalized {
		return nil, models.ErrSinkFinalized
	}
	s.finalized = true
	return &output.Artifact{Name: "recording"}, nil
}

func (s *recordingSink) events() []*models.FileDiffEvent {
	var events []*models.FileDiffEvent
	for _, c := range s.calls {
		if c.Method == "event" {
			events = append(events, c.Event)
		}
	}
	return events
}

// writeFiles creates files below root; a trailing "/" in a name makes a directory
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	comparator, err := compare.New(compare.MethodBinary, 0)
	require.NoError(t, err)
	return NewEngine(comparator, compare.NewDetector(compare.DefaultChunkSize, nil), nil, nil, opts)
}
