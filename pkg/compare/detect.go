package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// DefaultChunkSize is the read size used when probing for binary content
const DefaultChunkSize = 1024

// Detector classifies files as binary or text
type Detector struct {
	chunkSize int
	logger    logging.Logger
}

// NewDetector creates a detector reading chunkSize bytes at a time
func NewDetector(chunkSize int, logger logging.Logger) *Detector {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Detector{chunkSize: chunkSize, logger: logger}
}

// IsBinary reports whether the file contains a NUL byte. Unreadable files
// are logged and reported as text.
func (d *Detector) IsBinary(ctx context.Context, backend storage.Backend, path string) bool {
	r, err := backend.Read(ctx, path)
	if err != nil {
		d.logger.Warn(ctx, "cannot probe file content", logging.Fields{
			"path":  path,
			"error": (&models.PathError{Op: "open", Path: path, Err: models.ErrUnreadableFile}).Error(),
		})
		return false
	}
	defer r.Close()

	binary, err := IsBinaryReader(r, d.chunkSize)
	if err != nil {
		d.logger.Warn(ctx, "cannot probe file content", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return false
	}
	return binary
}

// IsBinaryReader reads r in chunks of chunkSize and stops at the first chunk
// holding a NUL byte or at the first short chunk
func IsBinaryReader(r io.Reader, chunkSize int) (bool, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	buf := make([]byte, chunkSize)
	for {
		n, err := io.ReadFull(r, buf)
		if bytes.IndexByte(buf[:n], 0) >= 0 {
			return true, nil
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: %v", models.ErrUnreadableFile, err)
		}
	}
}
