package textdiff

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity thresholds for pairing changed lines in ndiff output
const (
	ndiffBestRatio = 0.74
	ndiffCutoff    = 0.75
)

// Ndiff renders the script as a per-line annotated diff. Every line of both
// inputs appears once, prefixed with "  ", "- " or "+ ". Similar changed
// lines are followed by "? " hint lines marking the changed characters.
func Ndiff(s *Script) string {
	var buf strings.Builder
	d := &differ{
		out:      &buf,
		cruncher: difflib.NewMatcherWithJunk(nil, nil, true, isCharJunk),
	}
	for _, op := range s.OpCodes() {
		switch op.Tag {
		case 'r':
			d.fancyReplace(s.A, op.I1, op.I2, s.B, op.J1, op.J2)
		case 'd':
			d.dump("-", s.A, op.I1, op.I2)
		case 'i':
			d.dump("+", s.B, op.J1, op.J2)
		case 'e':
			d.dump(" ", s.A, op.I1, op.I2)
		}
	}
	return buf.String()
}

type differ struct {
	out      *strings.Builder
	cruncher *difflib.SequenceMatcher
}

func isCharJunk(s string) bool {
	return s == " " || s == "\t"
}

func splitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}
	return chars
}

func (d *differ) dump(tag string, x []string, lo, hi int) {
	for i := lo; i < hi; i++ {
		d.writeLine(tag+" ", x[i])
	}
}

// writeLine writes one prefixed line. An unterminated line is closed and
// followed by the marker line.
func (d *differ) writeLine(prefix, line string) {
	d.out.WriteString(prefix)
	d.out.WriteString(line)
	if !strings.HasSuffix(line, "\n") {
		d.out.WriteString("\n" + NoNewlineMarker + "\n")
	}
}

func (d *differ) plainReplace(a []string, alo, ahi int, b []string, blo, bhi int) {
	// Dump the shorter block first
	if bhi-blo < ahi-alo {
		d.dump("+", b, blo, bhi)
		d.dump("-", a, alo, ahi)
		return
	}
	d.dump("-", a, alo, ahi)
	d.dump("+", b, blo, bhi)
}

// fancyReplace looks for the most similar pair of lines in a replaced block,
// emits it with intra-line hints and recurses on both sides of the pair.
func (d *differ) fancyReplace(a []string, alo, ahi int, b []string, blo, bhi int) {
	bestRatio := ndiffBestRatio
	bestI, bestJ := -1, -1
	eqi, eqj := -1, -1

	for j := blo; j < bhi; j++ {
		bj := b[j]
		d.cruncher.SetSeq2(splitChars(bj))
		for i := alo; i < ahi; i++ {
			ai := a[i]
			if ai == bj {
				if eqi < 0 {
					eqi, eqj = i, j
				}
				continue
			}
			d.cruncher.SetSeq1(splitChars(ai))
			if d.cruncher.RealQuickRatio() > bestRatio &&
				d.cruncher.QuickRatio() > bestRatio {
				if ratio := d.cruncher.Ratio(); ratio > bestRatio {
					bestRatio, bestI, bestJ = ratio, i, j
				}
			}
		}
	}

	if bestRatio < ndiffCutoff {
		if eqi < 0 {
			d.plainReplace(a, alo, ahi, b, blo, bhi)
			return
		}
		// An identical line is the best synch point
		bestI, bestJ = eqi, eqj
	} else {
		eqi = -1
	}

	d.fancyHelper(a, alo, bestI, b, blo, bestJ)

	aelt, belt := a[bestI], b[bestJ]
	if eqi < 0 {
		var atags, btags strings.Builder
		d.cruncher.SetSeqs(splitChars(aelt), splitChars(belt))
		for _, op := range d.cruncher.GetOpCodes() {
			la, lb := op.I2-op.I1, op.J2-op.J1
			switch op.Tag {
			case 'r':
				atags.WriteString(strings.Repeat("^", la))
				btags.WriteString(strings.Repeat("^", lb))
			case 'd':
				atags.WriteString(strings.Repeat("-", la))
			case 'i':
				btags.WriteString(strings.Repeat("+", lb))
			case 'e':
				atags.WriteString(strings.Repeat(" ", la))
				btags.WriteString(strings.Repeat(" ", lb))
			}
		}
		d.qformat(aelt, belt, atags.String(), btags.String())
	} else {
		d.writeLine("  ", aelt)
	}

	d.fancyHelper(a, bestI+1, ahi, b, bestJ+1, bhi)
}

func (d *differ) fancyHelper(a []string, alo, ahi int, b []string, blo, bhi int) {
	switch {
	case alo < ahi && blo < bhi:
		d.fancyReplace(a, alo, ahi, b, blo, bhi)
	case alo < ahi:
		d.dump("-", a, alo, ahi)
	case blo < bhi:
		d.dump("+", b, blo, bhi)
	}
}

func (d *differ) qformat(aline, bline, atags, btags string) {
	atags = strings.TrimRightFunc(keepOriginalWS(aline, atags), unicode.IsSpace)
	btags = strings.TrimRightFunc(keepOriginalWS(bline, btags), unicode.IsSpace)

	d.writeLine("- ", aline)
	if atags != "" {
		d.out.WriteString("? " + atags + "\n")
	}
	d.writeLine("+ ", bline)
	if btags != "" {
		d.out.WriteString("? " + btags + "\n")
	}
}

// keepOriginalWS replaces blank hint positions with the whitespace of the
// original line so hints stay aligned under tabs.
func keepOriginalWS(s, tags string) string {
	sr, tr := []rune(s), []rune(tags)
	n := min(len(sr), len(tr))
	out := make([]rune, n)
	for i := 0; i < n; i++ {
		if tr[i] == ' ' && unicode.IsSpace(sr[i]) {
			out[i] = sr[i]
		} else {
			out[i] = tr[i]
		}
	}
	return string(out)
}
