package textdiff

import "fmt"

// Format names a line-diff text format
type Format string

const (
	FormatUnified Format = "unified"
	FormatContext Format = "context"
	FormatNdiff   Format = "ndiff"
)

// Render formats the script; n is ignored by ndiff
func Render(s *Script, format Format, n int) (string, error) {
	switch format {
	case FormatUnified, "":
		return Unified(s, n)
	case FormatContext:
		return Context(s, n)
	case FormatNdiff:
		return Ndiff(s), nil
	default:
		return "", fmt.Errorf("unknown diff format: %s", format)
	}
}
