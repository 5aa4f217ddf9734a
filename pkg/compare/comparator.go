// Package compare decides how two paths relate and whether two files hold the
// same content.
package compare

import (
	"context"
	"fmt"

	"github.com/sdejongh/dirdiff/pkg/storage"
)

// Result represents the outcome of comparing two files
type Result string

const (
	// Same indicates files are identical
	Same Result = "same"
	// Different indicates files differ
	Different Result = "different"
	// LeftOnly indicates file exists only on the left side
	LeftOnly Result = "left_only"
	// RightOnly indicates file exists only on the right side
	RightOnly Result = "right_only"
	// Error indicates comparison failed
	Error Result = "error"
)

// Comparison methods
const (
	MethodBinary = "binary"
	MethodHash   = "hash"
)

// Comparison holds the result of comparing two files
type Comparison struct {
	LeftPath  string
	RightPath string
	Result    Result
	Reason    string
	Error     error
}

// Comparator defines the interface for file content comparison
type Comparator interface {
	// Compare compares two files and returns the result
	Compare(ctx context.Context, left, right storage.Backend, leftPath, rightPath string) (*Comparison, error)

	// Name returns the name of the comparison method
	Name() string
}

// New returns the comparator for a method name
func New(method string, bufferSize int) (Comparator, error) {
	switch method {
	case MethodBinary, "":
		return NewBinaryComparator(bufferSize), nil
	case MethodHash:
		return NewHashComparator(bufferSize), nil
	default:
		return nil, fmt.Errorf("unknown comparison method: %s", method)
	}
}

// presence resolves the existence checks shared by all comparators.
// A nil result means both files exist.
func presence(ctx context.Context, left, right storage.Backend, leftPath, rightPath string) (*Comparison, error) {
	leftExists, err := left.Exists(ctx, leftPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check left existence: %w", err)
	}
	if !leftExists {
		return &Comparison{
			LeftPath:  leftPath,
			RightPath: rightPath,
			Result:    RightOnly,
			Reason:    "file exists only on the right",
		}, nil
	}

	rightExists, err := right.Exists(ctx, rightPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check right existence: %w", err)
	}
	if !rightExists {
		return &Comparison{
			LeftPath:  leftPath,
			RightPath: rightPath,
			Result:    LeftOnly,
			Reason:    "file exists only on the left",
		}, nil
	}
	return nil, nil
}
