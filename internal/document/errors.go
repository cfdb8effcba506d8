package document

import (
	"errors"
	"fmt"
)

var (
	// ErrOpenFailed is returned when a file cannot be read.
	ErrOpenFailed = errors.New("open failed")

	// ErrSaveFailed is returned when a file cannot be written.
	ErrSaveFailed = errors.New("save failed")

	// ErrParseFailed is returned when file bytes are not valid UTF-8.
	ErrParseFailed = errors.New("content is not valid UTF-8")

	// ErrIndexOutOfRange is returned for offsets outside the buffer.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Error records a failed document operation.
type Error struct {
	Op   string // "load", "save", "insert", ...
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func rangeError(op string, format string, args ...any) error {
	return &Error{Op: op, Err: fmt.Errorf("%w: "+format, append([]any{ErrIndexOutOfRange}, args...)...)}
}
