// Package fs provides the file system adapters that feed input files to the pool.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root in lexical order, skipping
// hidden directories such as .git. A walk error is yielded with an empty path
// and ends the walk.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && w.shouldSkipDir(d) {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// shouldSkipDir reports whether a directory is hidden.
func (w *Walker) shouldSkipDir(d fs.DirEntry) bool {
	return strings.HasPrefix(d.Name(), ".")
}
