package process

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every NotFoundError
	ErrNotFound = errors.New("not found")

	// ErrReadFailed matches every ReadFailedError
	ErrReadFailed = errors.New("read failed")

	// ErrClosed is returned by reads on a handle that has been closed
	ErrClosed = errors.New("process handle is closed")
)

// NotFoundError reports a process or window that is absent after a full search
type NotFoundError struct {
	Kind string // "process" or "window"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q could not be found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ReadFailedError reports a memory read that did not return the requested bytes
type ReadFailedError struct {
	Address uintptr
	Width   Width
	// Step is the index in the offset chain, or -1 for a plain read
	Step int
	Err  error
}

func (e *ReadFailedError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("read of %d bytes at %#x failed: %v", e.Width, e.Address, e.Err)
	}

	return fmt.Sprintf("read of %d bytes at %#x (chain step %d) failed: %v", e.Width, e.Address, e.Step, e.Err)
}

func (e *ReadFailedError) Unwrap() error {
	return e.Err
}

func (e *ReadFailedError) Is(target error) bool {
	return target == ErrReadFailed
}
