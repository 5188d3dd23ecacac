package files

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrColumnCount is reported for records that are not a timestamp and size pair
	ErrColumnCount = errors.New("expected 2 tab separated columns")
	// ErrEmptyRecord is reported for blank or whitespace only lines
	ErrEmptyRecord = errors.New("empty record")
	// ErrTimestamp is reported for timestamps that are not finite numbers
	ErrTimestamp = errors.New("timestamp is not a finite number")
	// ErrSizeRange is reported for sizes larger than MaxPacketSize in magnitude
	ErrSizeRange = errors.New("packet size out of range")
)

// MaxPacketSize bounds the magnitude of a record size so sums and
// rounding over a trace cannot overflow
const MaxPacketSize = math.MaxInt32

// ParseError ties a malformed record to the trace file and line it came from
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Err.Error())
}

// Unwrap returns the underlying record error
func (e *ParseError) Unwrap() error {
	return e.Err
}
