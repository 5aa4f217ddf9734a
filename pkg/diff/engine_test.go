package diff

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/output"
	"github.com/sdejongh/dirdiff/pkg/textdiff"
)

func TestRunSingleLineChange(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"A": "A", "B": "B"})
	pathA, pathB := filepath.Join(dir, "A"), filepath.Join(dir, "B")

	sink := output.NewConsoleRenderer(output.ConsoleOptions{Format: textdiff.FormatUnified, ContextLines: 3}).NewSink()
	summary, err := newTestEngine(t, Options{}).Run(context.Background(), models.ComparisonRequest{PathA: pathA, PathB: pathB}, sink)
	require.NoError(t, err)

	assert.Equal(t, models.ModeFileToFile, summary.Mode)
	assert.Equal(t, models.StatusSuccess, summary.Status)
	assert.Equal(t, 1, summary.Stats.TextDiffs)
	assert.Equal(t, 1, summary.Stats.LinesAdded)
	assert.Equal(t, 1, summary.Stats.LinesRemoved)

	artifact, err := sink.Finalize()
	require.NoError(t, err)
	want := "diff " + pathA + " " + pathB + "\n" +
		"--- " + pathA + "\n" +
		"+++ " + pathB + "\n" +
		"@@ -1 +1 @@\n" +
		"-A\n" +
		"\\ No newline at end of file\n" +
		"+B\n" +
		"\\ No newline at end of file\n"
	assert.Equal(t, want, string(artifact.Content))
}

func TestRunIdenticalFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "same\n", "b.txt": "same\n"})

	sink := &recordingSink{}
	summary, err := newTestEngine(t, Options{}).Run(context.Background(), models.ComparisonRequest{
		PathA: filepath.Join(dir, "a.txt"),
		PathB: filepath.Join(dir, "b.txt"),
	}, sink)
	require.NoError(t, err)

	events := sink.events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventIdentical, events[0].Kind)
	assert.Equal(t, 1, summary.Stats.FilesIdentical)
	assert.Equal(t, 0, summary.Stats.Differences())
}

func TestRunBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a": "\x00same", "b": "\x00same", "c": "\x00diff"})
	engine := newTestEngine(t, Options{})

	sink := &recordingSink{}
	_, err := engine.Run(context.Background(), models.ComparisonRequest{PathA: filepath.Join(dir, "a"), PathB: filepath.Join(dir, "b")}, sink)
	require.NoError(t, err)
	assert.Equal(t, models.EventIdentical, sink.events()[0].Kind)

	sink = &recordingSink{}
	_, err = engine.Run(context.Background(), models.ComparisonRequest{PathA: filepath.Join(dir, "a"), PathB: filepath.Join(dir, "c")}, sink)
	require.NoError(t, err)
	assert.Equal(t, models.EventBinaryMismatch, sink.events()[0].Kind)
}

func TestRunFileToDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "one\n", "other/a.txt": "two\n"})
	pathA, pathB := filepath.Join(dir, "a.txt"), filepath.Join(dir, "other")

	sink := &recordingSink{}
	summary, err := newTestEngine(t, Options{}).Run(context.Background(), models.ComparisonRequest{PathA: pathA, PathB: pathB}, sink)
	require.NoError(t, err)

	assert.Equal(t, models.ModeFileToDir, summary.Mode)
	events := sink.events()
	require.Len(t, events, 1)
	assert.Equal(t, pathA, events[0].PathA)
	assert.Equal(t, filepath.Join(pathB, "a.txt"), events[0].PathB)
	assert.Equal(t, models.EventTextDiff, events[0].Kind)
}

func TestRunDirectoryToFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"src/a.txt": "one\n", "a.txt": "one\n"})

	sink := &recordingSink{}
	summary, err := newTestEngine(t, Options{}).Run(context.Background(), models.ComparisonRequest{
		PathA: filepath.Join(dir, "src"),
		PathB: filepath.Join(dir, "a.txt"),
	}, sink)
	require.NoError(t, err)

	assert.Equal(t, models.ModeDirToFile, summary.Mode)
	events := sink.events()
	require.Len(t, events, 1)
	assert.Equal(t, filepath.Join(dir, "src", "a.txt"), events[0].PathA)
	assert.Equal(t, models.EventIdentical, events[0].Kind)
}

func TestRunMissingMember(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "one\n", "empty/": ""})
	req := models.ComparisonRequest{PathA: filepath.Join(dir, "a.txt"), PathB: filepath.Join(dir, "empty")}

	t.Run("skip", func(t *testing.T) {
		sink := &recordingSink{}
		summary, err := newTestEngine(t, Options{MissingMember: models.MissingSkip}).Run(context.Background(), req, sink)
		require.NoError(t, err)

		assert.Equal(t, models.StatusSkipped, summary.Status)
		assert.Empty(t, sink.calls)
		assert.Equal(t, 1, summary.Stats.MissingPaths)
	})

	t.Run("default is skip", func(t *testing.T) {
		sink := &recordingSink{}
		summary, err := newTestEngine(t, Options{}).Run(context.Background(), req, sink)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSkipped, summary.Status)
		assert.Empty(t, sink.calls)
	})

	t.Run("report", func(t *testing.T) {
		sink := &recordingSink{}
		summary, err := newTestEngine(t, Options{MissingMember: models.MissingReport}).Run(context.Background(), req, sink)
		require.NoError(t, err)

		assert.Equal(t, models.StatusSuccess, summary.Status)
		require.Len(t, sink.calls, 2)
		assert.Equal(t, "begin", sink.calls[0].Method)
		assert.Equal(t, call{Method: "entries", Title: "Only in " + dir, Names: []string{"a.txt"}}, sink.calls[1])
		assert.Equal(t, 1, summary.Stats.LeftOnly)
	})
}

func TestRunInvalidInputs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "one\n"})

	sink := &recordingSink{}
	summary, err := newTestEngine(t, Options{}).Run(context.Background(), models.ComparisonRequest{
		PathA: filepath.Join(dir, "a.txt"),
		PathB: filepath.Join(dir, "missing"),
	}, sink)
	require.NoError(t, err)

	assert.Equal(t, models.ModeInvalid, summary.Mode)
	assert.Equal(t, models.StatusInvalid, summary.Status)
	assert.Equal(t, 0, summary.Status.ExitCode())
	assert.Equal(t, 1, summary.Stats.MissingPaths)
	assert.Empty(t, sink.calls)
}

func TestRunDirectories(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, map[string]string{
		"dirA/FILE_A":   "same\n",
		"dirA/skip.tmp": "x",
		"dirB/FILE_A":   "same\n",
		"dirB/FILE_B":   "new\n",
	})

	sink := &recordingSink{}
	summary, err := newTestEngine(t, Options{Excludes: []string{"*.tmp"}}).Run(context.Background(), models.ComparisonRequest{
		PathA: filepath.Join(base, "dirA"),
		PathB: filepath.Join(base, "dirB"),
	}, sink)
	require.NoError(t, err)

	assert.Equal(t, models.ModeDirToDir, summary.Mode)
	assert.Equal(t, models.StatusSuccess, summary.Status)
	assert.Equal(t, 1, summary.Stats.RightOnly)
	assert.Equal(t, 0, summary.Stats.LeftOnly)
	require.Len(t, sink.calls, 4)
	assert.Equal(t, "begin", sink.calls[0].Method)
	assert.Equal(t, []string{"FILE_B"}, sink.calls[2].Names)
	assert.False(t, summary.EndTime.Before(summary.StartTime))
}

func TestRunPartialOnUncomparable(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, map[string]string{"dirA/item": "file\n", "dirB/item/": ""})

	summary, err := newTestEngine(t, Options{}).Run(context.Background(), models.ComparisonRequest{
		PathA: filepath.Join(base, "dirA"),
		PathB: filepath.Join(base, "dirB"),
	}, &recordingSink{})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPartial, summary.Status)
	assert.Equal(t, 1, summary.Stats.Uncomparable)
}

func TestRunCancelled(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, map[string]string{"dirA/f": "1", "dirB/f": "2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := newTestEngine(t, Options{}).Run(ctx, models.ComparisonRequest{
		PathA: filepath.Join(base, "dirA"),
		PathB: filepath.Join(base, "dirB"),
	}, &recordingSink{})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, models.StatusCancelled, summary.Status)
}

func TestRunHTMLIsIdempotent(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, map[string]string{
		"dirA/notes.txt": "one\ntwo\nthree\n",
		"dirA/img":       "\x00\x01",
		"dirA/only_a":    "a",
		"dirB/notes.txt": "one\n2\nthree\n",
		"dirB/img":       "\x00\x02",
		"dirB/sub/x":     "x",
	})
	req := models.ComparisonRequest{PathA: filepath.Join(base, "dirA"), PathB: filepath.Join(base, "dirB")}
	renderer := output.NewHTMLRenderer(output.HTMLOptions{Title: "Diff Report", Table: textdiff.DefaultTableOptions()})

	render := func() []byte {
		sink := renderer.NewSink()
		_, err := newTestEngine(t, Options{}).Run(context.Background(), req, sink)
		require.NoError(t, err)
		artifact, err := sink.Finalize()
		require.NoError(t, err)
		return artifact.Content
	}

	first := render()
	assert.Equal(t, first, render())
	assert.Contains(t, string(first), "Binary files differ")
}

func TestRunUnterminatedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("x\ny"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("x\nz"), 0644))

	sink := output.NewConsoleRenderer(output.ConsoleOptions{ContextLines: 0}).NewSink()
	_, err := newTestEngine(t, Options{}).Run(context.Background(), models.ComparisonRequest{
		PathA: filepath.Join(dir, "a"),
		PathB: filepath.Join(dir, "b"),
	}, sink)
	require.NoError(t, err)

	artifact, err := sink.Finalize()
	require.NoError(t, err)
	assert.Contains(t, string(artifact.Content), "-y\n\\ No newline at end of file\n+z\n\\ No newline at end of file\n")
}

func TestRunMissingFinalNewline(t *testing.T) {
	dir := t.TempDir()
	pathA, pathB := filepath.Join(dir, "a"), filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(pathA, []byte("a"), 0644))
	require.NoError(t, os.WriteFile(pathB, []byte("a\n"), 0644))

	sink := output.NewConsoleRenderer(output.ConsoleOptions{ContextLines: 3}).NewSink()
	summary, err := newTestEngine(t, Options{}).Run(context.Background(), models.ComparisonRequest{PathA: pathA, PathB: pathB}, sink)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Stats.TextDiffs)
	assert.Zero(t, summary.Stats.FilesIdentical)

	artifact, err := sink.Finalize()
	require.NoError(t, err)
	assert.Contains(t, string(artifact.Content), "@@ -1 +1 @@\n-a\n\\ No newline at end of file\n+a\n")
}
