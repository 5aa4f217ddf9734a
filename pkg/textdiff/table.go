package textdiff

import (
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Table layout defaults
const (
	DefaultWrapColumn        = 80
	DefaultTableContextLines = 5
	tabSize                  = 8
)

// SpanKind marks how a piece of a table cell changed
type SpanKind int

const (
	// SpanEqual is unchanged text
	SpanEqual SpanKind = iota
	// SpanAdd is text only present on the right side
	SpanAdd
	// SpanSub is text only present on the left side
	SpanSub
	// SpanChg is text replaced between both sides
	SpanChg
)

// Span is a run of text with a single change kind
type Span struct {
	Text string
	Kind SpanKind
}

// Cell is one side of a table row
type Cell struct {
	// Present is false when the side has no line for this row
	Present bool
	// Number is the 1-based line number, ">" for wrapped continuations
	Number string
	Spans  []Span
}

// Row is one physical row of a side-by-side table
type Row struct {
	Left    Cell
	Right   Cell
	Changed bool
}

// Hunk is a contiguous block of rows
type Hunk struct {
	Rows []Row
}

// Table is a side-by-side view of a script
type Table struct {
	LabelA string
	LabelB string
	Hunks  []Hunk
}

// TableOptions configures table construction
type TableOptions struct {
	// Context keeps only changed rows and ContextLines rows around them
	Context      bool
	ContextLines int
	// WrapColumn wraps long lines; 0 disables wrapping
	WrapColumn int
}

// DefaultTableOptions returns the options used by the HTML report
func DefaultTableOptions() TableOptions {
	return TableOptions{
		Context:      true,
		ContextLines: DefaultTableContextLines,
		WrapColumn:   DefaultWrapColumn,
	}
}

// Empty reports whether the table has no rows to show
func (t *Table) Empty() bool {
	for _, h := range t.Hunks {
		if len(h.Rows) > 0 {
			return false
		}
	}
	return true
}

// BuildTable aligns both sides of the script into rows with intra-line
// change spans
func BuildTable(s *Script, opts TableOptions) *Table {
	logical := alignRows(s)

	var ranges [][2]int
	if opts.Context {
		ranges = contextRanges(logical, opts.ContextLines)
	} else if len(logical) > 0 {
		ranges = [][2]int{{0, len(logical)}}
	}

	table := &Table{LabelA: s.LabelA, LabelB: s.LabelB}
	for _, r := range ranges {
		var hunk Hunk
		for _, row := range logical[r[0]:r[1]] {
			hunk.Rows = append(hunk.Rows, wrapRow(row, opts.WrapColumn)...)
		}
		table.Hunks = append(table.Hunks, hunk)
	}
	return table
}

func alignRows(s *Script) []Row {
	var rows []Row
	for _, op := range s.OpCodes() {
		switch op.Tag {
		case 'e':
			for k := 0; k < op.I2-op.I1; k++ {
				i, j := op.I1+k, op.J1+k
				rows = append(rows, Row{
					Left:  lineCell(i, []Span{{Text: displayText(s.A[i]), Kind: SpanEqual}}),
					Right: lineCell(j, []Span{{Text: displayText(s.B[j]), Kind: SpanEqual}}),
				})
			}
		case 'd':
			for i := op.I1; i < op.I2; i++ {
				rows = append(rows, Row{
					Left:    lineCell(i, []Span{{Text: displayText(s.A[i]), Kind: SpanSub}}),
					Changed: true,
				})
			}
		case 'i':
			for j := op.J1; j < op.J2; j++ {
				rows = append(rows, Row{
					Right:   lineCell(j, []Span{{Text: displayText(s.B[j]), Kind: SpanAdd}}),
					Changed: true,
				})
			}
		case 'r':
			rows = append(rows, replaceRows(s, op)...)
		}
	}
	return rows
}

func replaceRows(s *Script, op difflib.OpCode) []Row {
	la, lb := op.I2-op.I1, op.J2-op.J1
	rows := make([]Row, 0, max(la, lb))
	for k := 0; k < max(la, lb); k++ {
		row := Row{Changed: true}
		switch {
		case k < la && k < lb:
			left, right := intraLine(displayText(s.A[op.I1+k]), displayText(s.B[op.J1+k]))
			row.Left = lineCell(op.I1+k, left)
			row.Right = lineCell(op.J1+k, right)
		case k < la:
			row.Left = lineCell(op.I1+k, []Span{{Text: displayText(s.A[op.I1+k]), Kind: SpanSub}})
		default:
			row.Right = lineCell(op.J1+k, []Span{{Text: displayText(s.B[op.J1+k]), Kind: SpanAdd}})
		}
		rows = append(rows, row)
	}
	return rows
}

// intraLine splits a pair of changed lines into character-level spans
func intraLine(a, b string) ([]Span, []Span) {
	ac, bc := splitChars(a), splitChars(b)
	m := difflib.NewMatcherWithJunk(ac, bc, false, nil)

	var left, right []Span
	for _, op := range m.GetOpCodes() {
		atext := strings.Join(ac[op.I1:op.I2], "")
		btext := strings.Join(bc[op.J1:op.J2], "")
		switch op.Tag {
		case 'e':
			left = appendSpan(left, atext, SpanEqual)
			right = appendSpan(right, btext, SpanEqual)
		case 'r':
			left = appendSpan(left, atext, SpanChg)
			right = appendSpan(right, btext, SpanChg)
		case 'd':
			left = appendSpan(left, atext, SpanSub)
		case 'i':
			right = appendSpan(right, btext, SpanAdd)
		}
	}
	return left, right
}

func appendSpan(spans []Span, text string, kind SpanKind) []Span {
	if text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Kind == kind {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, Span{Text: text, Kind: kind})
}

func lineCell(index int, spans []Span) Cell {
	return Cell{Present: true, Number: strconv.Itoa(index + 1), Spans: spans}
}

// displayText strips the line terminator and expands tabs
func displayText(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			pad := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// contextRanges returns half-open row ranges around changed rows
func contextRanges(rows []Row, n int) [][2]int {
	if n < 0 {
		n = DefaultTableContextLines
	}
	var ranges [][2]int
	for i, row := range rows {
		if !row.Changed {
			continue
		}
		lo, hi := max(0, i-n), min(len(rows), i+n+1)
		if last := len(ranges) - 1; last >= 0 && lo <= ranges[last][1] {
			ranges[last][1] = max(ranges[last][1], hi)
			continue
		}
		ranges = append(ranges, [2]int{lo, hi})
	}
	return ranges
}

func wrapRow(row Row, width int) []Row {
	left := wrapCell(row.Left, width)
	right := wrapCell(row.Right, width)

	n := max(len(left), len(right))
	rows := make([]Row, n)
	for k := 0; k < n; k++ {
		rows[k].Changed = row.Changed
		if k < len(left) {
			rows[k].Left = left[k]
		}
		if k < len(right) {
			rows[k].Right = right[k]
		}
	}
	return rows
}

func wrapCell(c Cell, width int) []Cell {
	if !c.Present {
		return []Cell{c}
	}
	lines := wrapSpans(c.Spans, width)
	cells := make([]Cell, len(lines))
	for k, spans := range lines {
		number := c.Number
		if k > 0 {
			number = ">"
		}
		cells[k] = Cell{Present: true, Number: number, Spans: spans}
	}
	return cells
}

func wrapSpans(spans []Span, width int) [][]Span {
	if width <= 0 {
		return [][]Span{spans}
	}
	var lines [][]Span
	var cur []Span
	used := 0
	for _, sp := range spans {
		runes := []rune(sp.Text)
		for len(runes) > 0 {
			if used == width {
				lines = append(lines, cur)
				cur, used = nil, 0
			}
			take := min(width-used, len(runes))
			cur = append(cur, Span{Text: string(runes[:take]), Kind: sp.Kind})
			used += take
			runes = runes[take:]
		}
	}
	return append(lines, cur)
}
