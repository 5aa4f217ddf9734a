package compare

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdejongh/dirdiff/pkg/models"
)

// Resolution is the outcome of classifying two input paths
type Resolution struct {
	Mode models.ComparisonMode

	// PathA and PathB are the paths to compare. For file-to-dir and
	// dir-to-file the directory side is replaced by the implied file.
	PathA string
	PathB string

	// Missing lists paths that do not exist
	Missing []string

	// Err is set when no comparison can be run
	Err error
}

// Classifier decides the comparison mode from the filesystem types of two
// paths. It never reads file content.
type Classifier struct {
	stat func(string) (os.FileInfo, error)
}

// NewClassifier creates a classifier backed by os.Stat
func NewClassifier() *Classifier {
	return &Classifier{stat: os.Stat}
}

// Classify resolves the comparison mode for a and b
func (c *Classifier) Classify(a, b string) Resolution {
	infoA, errA := c.stat(a)
	infoB, errB := c.stat(b)

	res := Resolution{Mode: models.ModeInvalid, PathA: a, PathB: b}

	if errA == nil && errB == nil {
		switch {
		case infoA.Mode().IsRegular() && infoB.Mode().IsRegular():
			res.Mode = models.ModeFileToFile
			return res
		case infoA.IsDir() && infoB.IsDir():
			res.Mode = models.ModeDirToDir
			return res
		case infoA.Mode().IsRegular() && infoB.IsDir():
			res.Mode = models.ModeFileToDir
			res.PathB = filepath.Join(b, filepath.Base(a))
			res.Missing, res.Err = c.implied(res.PathB)
			return res
		case infoA.IsDir() && infoB.Mode().IsRegular():
			res.Mode = models.ModeDirToFile
			res.PathA = filepath.Join(a, filepath.Base(b))
			res.Missing, res.Err = c.implied(res.PathA)
			return res
		}
		res.Err = fmt.Errorf("%w: %s and %s", models.ErrInvalidComparisonMode, a, b)
		return res
	}

	for _, p := range []struct {
		path string
		err  error
	}{{a, errA}, {b, errB}} {
		if p.err != nil {
			res.Missing = append(res.Missing, p.path)
		}
	}
	res.Err = &models.PathError{Op: "stat", Path: res.Missing[0], Err: models.ErrPathNotFound}
	return res
}

// implied checks the file expected inside a directory
func (c *Classifier) implied(path string) ([]string, error) {
	info, err := c.stat(path)
	if err != nil {
		return []string{path}, &models.PathError{Op: "stat", Path: path, Err: models.ErrPathNotFound}
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", models.ErrInvalidComparisonMode, path)
	}
	return nil, nil
}
