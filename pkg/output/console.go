package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/textdiff"
)

// ConsoleOptions configures the text report
type ConsoleOptions struct {
	Format            textdiff.Format
	ContextLines      int
	Brief             bool
	Color             bool
	ShowEmptySections bool
}

// ConsoleRenderer produces a plain text report of newline-joined blocks
type ConsoleRenderer struct {
	opts ConsoleOptions
}

// NewConsoleRenderer creates a text renderer
func NewConsoleRenderer(opts ConsoleOptions) *ConsoleRenderer {
	if opts.Format == "" {
		opts.Format = textdiff.FormatUnified
	}
	return &ConsoleRenderer{opts: opts}
}

// Name returns the renderer name
func (r *ConsoleRenderer) Name() string {
	return "console"
}

// NewSink returns an empty text sink
func (r *ConsoleRenderer) NewSink() Sink {
	return &consoleSink{opts: r.opts, palette: newPalette(r.opts.Color)}
}

type consoleSink struct {
	opts      ConsoleOptions
	palette   palette
	blocks    []string
	finalized bool
}

func (s *consoleSink) Begin(pathA, pathB string) {}

func (s *consoleSink) OnSectionHeader(title string) {}

// Section calls after Finalize are ignored.
func (s *consoleSink) OnEmptySection(title, message string) {
	if s.opts.ShowEmptySections && !s.finalized {
		s.blocks = append(s.blocks, message)
	}
}

func (s *consoleSink) OnEntryList(title string, names []string) {
	if s.finalized {
		return
	}
	for _, name := range names {
		s.blocks = append(s.blocks, fmt.Sprintf("%s: %s", title, name))
	}
}

func (s *consoleSink) OnFileDiff(event *models.FileDiffEvent) error {
	if s.finalized {
		return models.ErrSinkFinalized
	}

	switch event.Kind {
	case models.EventBinaryMismatch:
		s.blocks = append(s.blocks, fmt.Sprintf("Binary files %s and %s differ", event.PathA, event.PathB))
	case models.EventUncomparable:
		s.blocks = append(s.blocks, fmt.Sprintf("Cannot compare %s and %s: %s", event.PathA, event.PathB, event.Reason))
	case models.EventIdentical:
		if !s.opts.Brief {
			s.blocks = append(s.blocks, s.header(event)+"\n")
		}
	case models.EventTextDiff:
		if s.opts.Brief {
			s.blocks = append(s.blocks, fmt.Sprintf("Files %s and %s differ", event.PathA, event.PathB))
			return nil
		}
		if event.Script == nil {
			return errors.New("text diff event without script")
		}
		body, err := textdiff.Render(event.Script, s.opts.Format, s.opts.ContextLines)
		if err != nil {
			return err
		}
		s.blocks = append(s.blocks, s.header(event)+"\n"+s.palette.colorize(s.opts.Format, body))
	default:
		return fmt.Errorf("unknown event kind: %s", event.Kind)
	}
	return nil
}

func (s *consoleSink) header(event *models.FileDiffEvent) string {
	return s.palette.header.Sprintf("diff %s %s", event.PathA, event.PathB)
}

func (s *consoleSink) Finalize() (*Artifact, error) {
	if s.finalized {
		return nil, models.ErrSinkFinalized
	}
	s.finalized = true

	content := strings.Join(s.blocks, "\n")
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return &Artifact{
		Name:      "stdout",
		Content:   []byte(content),
		MediaType: "text/plain; charset=utf-8",
	}, nil
}

// palette holds the colors of diff lines. Disabled palettes print plain text.
type palette struct {
	enabled bool
	header  *color.Color
	removed *color.Color
	added   *color.Color
	changed *color.Color
	hunk    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		enabled: enabled,
		header:  color.New(color.Bold),
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
		changed: color.New(color.FgYellow),
		hunk:    color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.header, p.removed, p.added, p.changed, p.hunk} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// colorize colors each line of a rendered diff by its marker
func (p palette) colorize(format textdiff.Format, body string) string {
	if !p.enabled || body == "" {
		return body
	}

	lines := textdiff.SplitLines(body)
	var b strings.Builder
	for _, line := range lines {
		text := strings.TrimSuffix(line, "\n")
		if c := p.lineColor(format, text); c != nil {
			text = c.Sprint(text)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

func (p palette) lineColor(format textdiff.Format, line string) *color.Color {
	switch format {
	case textdiff.FormatContext:
		switch {
		case strings.HasPrefix(line, "***************"),
			strings.HasPrefix(line, "*** ") && strings.HasSuffix(line, " ****"),
			strings.HasPrefix(line, "--- ") && strings.HasSuffix(line, " ----"):
			return p.hunk
		case strings.HasPrefix(line, "*** "), strings.HasPrefix(line, "--- "):
			return p.header
		case strings.HasPrefix(line, "! "):
			return p.changed
		case strings.HasPrefix(line, "- "):
			return p.removed
		case strings.HasPrefix(line, "+ "):
			return p.added
		}
	case textdiff.FormatNdiff:
		switch {
		case strings.HasPrefix(line, "- "):
			return p.removed
		case strings.HasPrefix(line, "+ "):
			return p.added
		case strings.HasPrefix(line, "? "):
			return p.hunk
		}
	default:
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			return p.header
		case strings.HasPrefix(line, "@@"):
			return p.hunk
		case strings.HasPrefix(line, "-"):
			return p.removed
		case strings.HasPrefix(line, "+"):
			return p.added
		}
	}
	return nil
}
