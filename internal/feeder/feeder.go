package feeder

import (
	"errors"
)

// Record represents a set of named values used for placeholder expansion.
type Record map[string]string

// Feeder hands out identifiers from a dataset loaded once at construction.
// Implementations must be safe for concurrent use.
type Feeder interface {
	// NextID returns the next identifier. Once the dataset has been fully
	// consumed it starts again from the first identifier.
	NextID() (string, error)

	// Close releases any resources held by the feeder.
	Close() error

	// Len returns the total number of identifiers in the dataset.
	Len() int
}

// ErrSourceUnavailable is returned when the backing file cannot be opened,
// read, or parsed, or holds no identifiers.
var ErrSourceUnavailable = errors.New("identifier source unavailable")

// ErrEmptySupply is returned by NextID when the supply holds no identifiers.
var ErrEmptySupply = errors.New("identifier supply is empty")
