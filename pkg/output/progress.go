package output

import (
	"io"
	"os"
	"runtime"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

const progressTemplate = `{{string . "prefix"}}{{counters . }} {{cycle . "-" "\\" "|" "/"}} {{etime . }} {{string . "pair"}}`

// getUpdateInterval returns the progress refresh interval based on OS.
// Windows terminals redraw slower.
func getUpdateInterval() time.Duration {
	if runtime.GOOS == "windows" {
		return 300 * time.Millisecond
	}
	return 100 * time.Millisecond
}

// Progress reports compared file pairs while a run is in flight
type Progress interface {
	Start()
	// Step records one compared pair
	Step(pathA, pathB string)
	Finish()
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewProgress returns a progress bar on w, or a no-op when disabled
func NewProgress(w io.Writer, enabled bool) Progress {
	if !enabled {
		return NullProgress{}
	}
	return &BarProgress{writer: w}
}

// BarProgress draws a counter bar with cheggaaa/pb
type BarProgress struct {
	writer io.Writer
	bar    *pb.ProgressBar
}

// Start draws the bar
func (p *BarProgress) Start() {
	p.bar = pb.ProgressBarTemplate(progressTemplate).New(0)
	p.bar.SetWriter(p.writer)
	p.bar.SetRefreshRate(getUpdateInterval())
	p.bar.Set("prefix", "Comparing ")
	p.bar.Start()
}

// Step records one compared pair
func (p *BarProgress) Step(pathA, pathB string) {
	if p.bar == nil {
		return
	}
	p.bar.Set("pair", pathA)
	p.bar.Increment()
}

// count returns the number of recorded pairs
func (p *BarProgress) count() int64 {
	if p.bar == nil {
		return 0
	}
	return p.bar.Current()
}

// Finish stops and clears the refresh loop
func (p *BarProgress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

// NullProgress discards progress
type NullProgress struct{}

func (NullProgress) Start()                   {}
func (NullProgress) Step(pathA, pathB string) {}
func (NullProgress) Finish()                  {}
