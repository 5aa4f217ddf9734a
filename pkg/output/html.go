package output

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/textdiff"
)

const noDifferences = "No Differences Found"

const stylesheet = `
h1 {
    text-align: center;
}
.container {
    width: 1170px;
    margin-left: auto;
    margin-right: auto;
}
table {
    font-family: Courier;
    border-collapse: collapse;
    border: 1px solid gray;
    width: 100%;
    margin-left: auto;
    margin-right: auto;
    margin-bottom: 20px;
}
table th {
    background-color: #e0e0e0;
    border: 1px solid gray;
}
table td {
    font-size: 12px;
}
.diff_header {
    background-color: #e0e0e0;
}
td.diff_header {
    text-align: right;
}
.diff_next {
    background-color: #c0c0c0;
}
.diff_add {
    background-color: #aaffaa;
}
.diff_chg {
    background-color: #ffff77;
}
.diff_sub {
    background-color: #ffaaaa;
}
`

// HTMLOptions configures the HTML report
type HTMLOptions struct {
	// FileName is the artifact name, usually the output path
	FileName          string
	Title             string
	Table             textdiff.TableOptions
	ShowEmptySections bool
}

// HTMLRenderer produces a self-contained HTML document
type HTMLRenderer struct {
	opts HTMLOptions
}

// NewHTMLRenderer creates an HTML renderer
func NewHTMLRenderer(opts HTMLOptions) *HTMLRenderer {
	if opts.Title == "" {
		opts.Title = "Diff Report"
	}
	return &HTMLRenderer{opts: opts}
}

// Name returns the renderer name
func (r *HTMLRenderer) Name() string {
	return "html"
}

// NewSink returns a sink holding an empty document body
func (r *HTMLRenderer) NewSink() Sink {
	body := element(atom.Body)
	body.AppendChild(element(atom.H1, text(r.opts.Title)))
	return &htmlSink{opts: r.opts, body: body}
}

type htmlSink struct {
	opts      HTMLOptions
	body      *html.Node
	container *html.Node
	finalized bool
}

// Section calls after Finalize are ignored.
func (s *htmlSink) Begin(pathA, pathB string) {
	if s.finalized {
		return
	}
	s.container = element(atom.Div)
	s.container.Attr = []html.Attribute{attr("class", "container")}
	s.body.AppendChild(s.container)
}

// current returns the open container, creating one if Begin was not called
func (s *htmlSink) current() *html.Node {
	if s.container == nil {
		s.Begin("", "")
	}
	return s.container
}

func (s *htmlSink) OnSectionHeader(title string) {
	if s.finalized {
		return
	}
	s.current().AppendChild(element(atom.H2, text(title)))
}

func (s *htmlSink) OnEmptySection(title, message string) {
	if !s.opts.ShowEmptySections || s.finalized {
		return
	}
	c := s.current()
	c.AppendChild(element(atom.H2, text(title)))
	c.AppendChild(element(atom.P, text(message)))
}

func (s *htmlSink) OnEntryList(title string, names []string) {
	if s.finalized {
		return
	}
	c := s.current()
	c.AppendChild(element(atom.H2, text(title)))
	ul := element(atom.Ul)
	for _, name := range names {
		ul.AppendChild(element(atom.Li, text(name)))
	}
	c.AppendChild(ul)
}

func (s *htmlSink) OnFileDiff(event *models.FileDiffEvent) error {
	if s.finalized {
		return models.ErrSinkFinalized
	}

	switch event.Kind {
	case models.EventBinaryMismatch:
		s.current().AppendChild(noticeTable(event, "Binary files differ"))
	case models.EventUncomparable:
		s.current().AppendChild(noticeTable(event, "Cannot compare: "+event.Reason))
	case models.EventIdentical, models.EventTextDiff:
		table := &textdiff.Table{LabelA: event.PathA, LabelB: event.PathB}
		if event.Script != nil {
			table = textdiff.BuildTable(event.Script, s.opts.Table)
			table.LabelA, table.LabelB = event.PathA, event.PathB
		} else if event.Kind == models.EventTextDiff {
			return fmt.Errorf("text diff event without script")
		}
		s.current().AppendChild(diffTable(table))
	default:
		return fmt.Errorf("unknown event kind: %s", event.Kind)
	}
	return nil
}

func (s *htmlSink) Finalize() (*Artifact, error) {
	if s.finalized {
		return nil, models.ErrSinkFinalized
	}
	s.finalized = true

	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{attr("charset", "utf-8")}
	style := element(atom.Style, text(stylesheet))
	style.Attr = []html.Attribute{attr("type", "text/css")}
	head := element(atom.Head, meta, element(atom.Title, text(s.opts.Title)), style)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(element(atom.Html, head, s.body))

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	buf.WriteByte('\n')

	return &Artifact{
		Name:      s.opts.FileName,
		Content:   buf.Bytes(),
		MediaType: "text/html; charset=utf-8",
	}, nil
}

// noticeTable is a two-column table with a single message row
func noticeTable(event *models.FileDiffEvent, message string) *html.Node {
	table := element(atom.Table,
		element(atom.Thead, element(atom.Tr,
			element(atom.Th, text(event.PathA)),
			element(atom.Th, text(event.PathB)),
		)),
		element(atom.Tbody, element(atom.Tr, element(atom.Td, text(message)))),
	)
	table.Attr = []html.Attribute{attr("class", "table")}
	return table
}

// diffTable lays a side-by-side table out in the difflib HtmlDiff shape
func diffTable(t *textdiff.Table) *html.Node {
	table := element(atom.Table)
	table.Attr = []html.Attribute{
		attr("class", "diff"),
		attr("cellspacing", "0"),
		attr("cellpadding", "0"),
		attr("rules", "groups"),
	}
	for i := 0; i < 6; i++ {
		table.AppendChild(element(atom.Colgroup))
	}

	table.AppendChild(element(atom.Thead, element(atom.Tr,
		classed(element(atom.Th), "diff_next"),
		headerCell(t.LabelA),
		classed(element(atom.Th), "diff_next"),
		headerCell(t.LabelB),
	)))

	if t.Empty() {
		notice := "\u00a0" + noDifferences + "\u00a0"
		table.AppendChild(element(atom.Tbody, element(atom.Tr,
			classed(element(atom.Td), "diff_next"),
			classed(element(atom.Td), "diff_header"),
			nowrap(element(atom.Td, text(notice))),
			classed(element(atom.Td), "diff_next"),
			classed(element(atom.Td), "diff_header"),
			nowrap(element(atom.Td, text(notice))),
		)))
		return table
	}

	for _, hunk := range t.Hunks {
		tbody := element(atom.Tbody)
		for _, row := range hunk.Rows {
			tr := element(atom.Tr)
			for _, cell := range []textdiff.Cell{row.Left, row.Right} {
				tr.AppendChild(classed(element(atom.Td), "diff_next"))
				tr.AppendChild(classed(element(atom.Td, text(cell.Number)), "diff_header"))
				content := nowrap(element(atom.Td))
				for _, span := range cell.Spans {
					content.AppendChild(spanNode(span))
				}
				tr.AppendChild(content)
			}
			tbody.AppendChild(tr)
		}
		table.AppendChild(tbody)
	}
	return table
}

func headerCell(label string) *html.Node {
	th := classed(element(atom.Th, text(label)), "diff_header")
	th.Attr = append(th.Attr, attr("colspan", "2"))
	return th
}

func spanNode(span textdiff.Span) *html.Node {
	var class string
	switch span.Kind {
	case textdiff.SpanAdd:
		class = "diff_add"
	case textdiff.SpanSub:
		class = "diff_sub"
	case textdiff.SpanChg:
		class = "diff_chg"
	default:
		return text(nbsp(span.Text))
	}
	return classed(element(atom.Span, text(nbsp(span.Text))), class)
}

// nbsp keeps runs of spaces visible in the nowrap cells
func nbsp(s string) string {
	return strings.ReplaceAll(s, " ", "\u00a0")
}

func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func classed(n *html.Node, class string) *html.Node {
	n.Attr = append(n.Attr, attr("class", class))
	return n
}

func nowrap(n *html.Node) *html.Node {
	n.Attr = append(n.Attr, attr("nowrap", "nowrap"))
	return n
}
