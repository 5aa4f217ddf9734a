// Package textdiff turns line sequences into edit scripts and renders them as
// unified, context, ndiff or side-by-side table output. The sequence matching
// itself is done by go-difflib.
package textdiff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContextLines is the context size of unified and context diffs
const DefaultContextLines = 3

// Script is the edit script between two line sequences
type Script struct {
	A      []string
	B      []string
	LabelA string
	LabelB string

	opcodes []difflib.OpCode
}

// Stats holds line counts for a script
type Stats struct {
	Added   int
	Removed int
}

// NewScript computes the edit script that turns a into b
func NewScript(a, b []string, labelA, labelB string) *Script {
	m := difflib.NewMatcher(a, b)
	return &Script{
		A:       a,
		B:       b,
		LabelA:  labelA,
		LabelB:  labelB,
		opcodes: m.GetOpCodes(),
	}
}

// OpCodes returns the edit operations ('e', 'r', 'd', 'i')
func (s *Script) OpCodes() []difflib.OpCode {
	return s.opcodes
}

// Equal reports whether both sequences are identical
func (s *Script) Equal() bool {
	for _, op := range s.opcodes {
		if op.Tag != 'e' {
			return false
		}
	}
	return true
}

// Stats counts added and removed lines
func (s *Script) Stats() Stats {
	var st Stats
	for _, op := range s.opcodes {
		switch op.Tag {
		case 'r':
			st.Removed += op.I2 - op.I1
			st.Added += op.J2 - op.J1
		case 'd':
			st.Removed += op.I2 - op.I1
		case 'i':
			st.Added += op.J2 - op.J1
		}
	}
	return st
}

// NoNewlineMarker is printed after a last line that has no terminator
const NoNewlineMarker = `\ No newline at end of file`

// SplitLines splits content into lines keeping their terminators.
// An unterminated last line stays unterminated, so "a" and "a\n" differ.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	lines := strings.SplitAfter(content, "\n")
	if last := len(lines) - 1; lines[last] == "" {
		return lines[:last]
	}
	return lines
}

// terminated returns lines ready for line-oriented output: an unterminated
// last line gets a newline and the marker line.
func terminated(lines []string) []string {
	n := len(lines)
	if n == 0 || strings.HasSuffix(lines[n-1], "\n") {
		return lines
	}
	out := make([]string, n)
	copy(out, lines)
	out[n-1] += "\n" + NoNewlineMarker + "\n"
	return out
}

// ReadLines reads all of r and splits it into lines
func ReadLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return SplitLines(string(data)), nil
}

// Unified renders the script as a unified diff with n lines of context.
// Identical inputs render as an empty string.
func Unified(s *Script, n int) (string, error) {
	if n < 0 {
		n = DefaultContextLines
	}
	var buf bytes.Buffer
	err := difflib.WriteUnifiedDiff(&buf, difflib.UnifiedDiff{
		A:        terminated(s.A),
		B:        terminated(s.B),
		FromFile: s.LabelA,
		ToFile:   s.LabelB,
		Context:  n,
	})
	if err != nil {
		return "", fmt.Errorf("failed to write unified diff: %w", err)
	}
	return buf.String(), nil
}

// Context renders the script as a context diff with n lines of context
func Context(s *Script, n int) (string, error) {
	if n < 0 {
		n = DefaultContextLines
	}
	var buf bytes.Buffer
	err := difflib.WriteContextDiff(&buf, difflib.ContextDiff{
		A:        terminated(s.A),
		B:        terminated(s.B),
		FromFile: s.LabelA,
		ToFile:   s.LabelB,
		Context:  n,
	})
	if err != nil {
		return "", fmt.Errorf("failed to write context diff: %w", err)
	}
	return buf.String(), nil
}
