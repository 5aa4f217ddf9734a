package compare

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/sdejongh/dirdiff/pkg/storage"
)

// Partial hashing configuration
const (
	// Minimum file size to enable partial hashing (1MB)
	partialHashThreshold = 1 * 1024 * 1024
	// Size of partial hash to compute (256KB)
	partialHashSize = 256 * 1024
)

// HashComparator compares files using SHA-256 hash
type HashComparator struct {
	bufferSize        int
	bufferPool        *sync.Pool
	enablePartialHash bool
}

// NewHashComparator creates a new hash-based comparator
func NewHashComparator(bufferSize int) *HashComparator {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &HashComparator{
		bufferSize:        bufferSize,
		enablePartialHash: true,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// SetPartialHashEnabled enables or disables partial hashing optimization
func (c *HashComparator) SetPartialHashEnabled(enabled bool) {
	c.enablePartialHash = enabled
}

// Compare compares two files using SHA-256 hash
func (c *HashComparator) Compare(ctx context.Context, left, right storage.Backend, leftPath, rightPath string) (*Comparison, error) {
	if cmp, err := presence(ctx, left, right, leftPath, rightPath); cmp != nil || err != nil {
		return cmp, err
	}

	// Get file info to check sizes first (quick check)
	leftInfo, err := left.Stat(ctx, leftPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat left file: %w", err)
	}

	rightInfo, err := right.Stat(ctx, rightPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat right file: %w", err)
	}

	if leftInfo.Size != rightInfo.Size {
		return &Comparison{
			LeftPath:  leftPath,
			RightPath: rightPath,
			Result:    Different,
			Reason:    "file sizes differ",
		}, nil
	}

	// Large files are rejected early on a hash of their first bytes
	if c.enablePartialHash && leftInfo.Size >= partialHashThreshold {
		leftPartial, leftErr := c.computeHash(ctx, left, leftPath, partialHashSize)
		rightPartial, rightErr := c.computeHash(ctx, right, rightPath, partialHashSize)

		// A failed partial hash falls back to the full hash
		if leftErr == nil && rightErr == nil && leftPartial != rightPartial {
			return &Comparison{
				LeftPath:  leftPath,
				RightPath: rightPath,
				Result:    Different,
				Reason:    "file partial hashes differ",
			}, nil
		}
	}

	leftHash, err := c.computeHash(ctx, left, leftPath, -1)
	if err != nil {
		return &Comparison{
			LeftPath:  leftPath,
			RightPath: rightPath,
			Result:    Error,
			Reason:    "failed to compute left hash",
			Error:     err,
		}, err
	}
	rightHash, err := c.computeHash(ctx, right, rightPath, -1)
	if err != nil {
		return &Comparison{
			LeftPath:  leftPath,
			RightPath: rightPath,
			Result:    Error,
			Reason:    "failed to compute right hash",
			Error:     err,
		}, err
	}

	if leftHash != rightHash {
		return &Comparison{
			LeftPath:  leftPath,
			RightPath: rightPath,
			Result:    Different,
			Reason:    "file hashes differ",
		}, nil
	}

	return &Comparison{
		LeftPath:  leftPath,
		RightPath: rightPath,
		Result:    Same,
		Reason:    "file hashes match",
	}, nil
}

// computeHash streams a file through SHA-256. A negative limit hashes the
// whole file.
func (c *HashComparator) computeHash(ctx context.Context, backend storage.Backend, path string, limit int64) (string, error) {
	reader, err := backend.Read(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	var src io.Reader = reader
	if limit >= 0 {
		src = io.LimitReader(reader, limit)
	}

	hasher := sha256.New()

	bufPtr := c.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer c.bufferPool.Put(bufPtr)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := src.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Name returns the comparator name
func (c *HashComparator) Name() string {
	return MethodHash
}
