package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a directory entry
type FileInfo struct {
	Name         string
	Path         string
	RelativePath string
	Size         int64
	ModTime      time.Time
	IsDir        bool
	IsRegular    bool
	Permissions  uint32
	// Broken is set when the entry is a symlink whose target cannot be resolved
	Broken bool
}

// Backend defines the read-only operations needed to compare a tree.
// Paths are relative to the backend root.
type Backend interface {
	// Root returns the absolute root path of the backend
	Root() string

	// ReadDir returns the immediate entries of a directory, sorted by name.
	// Symbolic links are reported with the type of their target.
	ReadDir(ctx context.Context, path string) ([]FileInfo, error)

	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Stat returns file metadata, following symbolic links
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// RealPath returns the absolute path with all symbolic links resolved
	RealPath(ctx context.Context, path string) (string, error)

	// Close releases any resources held by the backend
	Close() error
}
