package ports

import "context"

// LineSource feeds newline-delimited input files to the pool.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type LineSource interface {
	// Expand resolves the given paths to regular files, descending into directories.
	Expand(paths []string) ([]string, error)

	// EachLine reads path and calls fn with the buffer and the [start, end)
	// bounds of every line, without the line terminator.
	// The buffer is only valid for the duration of the call.
	EachLine(ctx context.Context, path string, fn func(buf []byte, start, end int)) error
}
