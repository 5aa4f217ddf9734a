package compare

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sdejongh/dirdiff/pkg/storage"
)

// BinaryComparator compares files byte-by-byte.
// Reports the first byte offset where files differ.
type BinaryComparator struct {
	bufferSize int
	bufferPool *sync.Pool
}

// NewBinaryComparator creates a new byte-by-byte comparator
func NewBinaryComparator(bufferSize int) *BinaryComparator {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &BinaryComparator{
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// Compare compares two files byte-by-byte
func (c *BinaryComparator) Compare(ctx context.Context, left, right storage.Backend, leftPath, rightPath string) (*Comparison, error) {
	if cmp, err := presence(ctx, left, right, leftPath, rightPath); cmp != nil || err != nil {
		return cmp, err
	}

	leftInfo, err := left.Stat(ctx, leftPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat left: %w", err)
	}

	rightInfo, err := right.Stat(ctx, rightPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat right: %w", err)
	}

	// Quick check: if sizes differ, files are different
	if leftInfo.Size != rightInfo.Size {
		return c.result(leftPath, rightPath, Different,
			fmt.Sprintf("size mismatch: left=%d, right=%d", leftInfo.Size, rightInfo.Size)), nil
	}

	leftReader, err := left.Read(ctx, leftPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open left file: %w", err)
	}
	defer leftReader.Close()

	rightReader, err := right.Read(ctx, rightPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open right file: %w", err)
	}
	defer rightReader.Close()

	// Get buffers from pool
	leftBufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(leftBufPtr)
	leftBuf := *leftBufPtr

	rightBufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(rightBufPtr)
	rightBuf := *rightBufPtr

	var bytesCompared int64
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// ReadFull keeps both sides aligned on short reads
		leftN, leftErr := io.ReadFull(leftReader, leftBuf)
		rightN, rightErr := io.ReadFull(rightReader, rightBuf)

		n := min(leftN, rightN)
		if !bytes.Equal(leftBuf[:n], rightBuf[:n]) {
			for i := 0; i < n; i++ {
				if leftBuf[i] != rightBuf[i] {
					return c.result(leftPath, rightPath, Different,
						fmt.Sprintf("binary content differs at byte offset %d", bytesCompared+int64(i))), nil
				}
			}
		}
		bytesCompared += int64(n)

		if leftN != rightN {
			return c.result(leftPath, rightPath, Different,
				fmt.Sprintf("length differs after %d bytes", bytesCompared)), nil
		}

		leftDone := leftErr == io.EOF || leftErr == io.ErrUnexpectedEOF
		rightDone := rightErr == io.EOF || rightErr == io.ErrUnexpectedEOF
		if leftErr != nil && !leftDone {
			return nil, fmt.Errorf("failed to read left: %w", leftErr)
		}
		if rightErr != nil && !rightDone {
			return nil, fmt.Errorf("failed to read right: %w", rightErr)
		}
		if leftDone && rightDone {
			break
		}
		if leftDone != rightDone {
			return c.result(leftPath, rightPath, Different,
				fmt.Sprintf("length differs after %d bytes", bytesCompared)), nil
		}
	}

	return c.result(leftPath, rightPath, Same,
		fmt.Sprintf("binary content matches (%d bytes)", bytesCompared)), nil
}

func (c *BinaryComparator) result(leftPath, rightPath string, r Result, reason string) *Comparison {
	return &Comparison{LeftPath: leftPath, RightPath: rightPath, Result: r, Reason: reason}
}

// Name returns the comparator name
func (c *BinaryComparator) Name() string {
	return MethodBinary
}
