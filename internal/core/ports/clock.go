// Package ports defines the core interfaces for the application.
package ports

// Clock is the time source used to throttle pool collection.
//
//go:generate go run go.uber.org/mock/mockgen -source=clock.go -destination=mocks/mock_clock.go -package=mocks
type Clock interface {
	// NowMillis returns a monotonically non-decreasing millisecond counter.
	// It need not be wall-clock correct.
	NowMillis() uint64
}
