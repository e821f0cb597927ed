package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfig is returned when the configuration file holds a value the pool cannot use.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrNoInputs is returned when a command that needs values or files receives none.
	ErrNoInputs = zerr.New("no inputs specified")

	// ErrSourceRead is returned when an input file cannot be read.
	ErrSourceRead = zerr.New("failed to read source")
)
