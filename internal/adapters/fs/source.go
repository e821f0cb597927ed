package fs

import (
	"bytes"
	"context"
	"os"

	"go.trai.ch/intern/internal/core/domain"
	"go.trai.ch/intern/internal/core/ports"
	"go.trai.ch/zerr"
)

// cancelCheckInterval is how many lines are scanned between context checks.
const cancelCheckInterval = 1024

var _ ports.LineSource = (*Source)(nil)

// Source implements ports.LineSource over newline-delimited files.
type Source struct {
	walker *Walker
}

// NewSource creates a new Source.
func NewSource(walker *Walker) *Source {
	return &Source{walker: walker}
}

// Expand resolves paths to regular files. Directories are walked; files are
// kept as given. The order of paths is preserved.
func (s *Source) Expand(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceRead.Error()), "path", path)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		for file, err := range s.walker.WalkFiles(path) {
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceRead.Error()), "path", path)
			}
			files = append(files, file)
		}
	}
	return files, nil
}

// EachLine reads path and hands every line to fn as a range of one shared
// buffer. Line terminators ("\n" or "\r\n") are excluded from the range.
func (s *Source) EachLine(ctx context.Context, path string, fn func(buf []byte, start, end int)) error {
	buf, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSourceRead.Error()), "path", path)
	}

	start := 0
	for n := 0; start < len(buf); n++ {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		end := len(buf)
		next := len(buf)
		if i := bytes.IndexByte(buf[start:], '\n'); i >= 0 {
			end = start + i
			next = end + 1
		}

		lineEnd := end
		if lineEnd > start && buf[lineEnd-1] == '\r' {
			lineEnd--
		}
		fn(buf, start, lineEnd)

		start = next
	}
	return nil
}
