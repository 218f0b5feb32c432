// Package process attaches to a running process: it locates the process by
// module name, reads its memory through pointer chains and drives its window
// with synthetic keyboard input.
//
// A Handle is not safe for concurrent use. Desktop focus is a system-wide
// resource, so Focus and FocusBackToLastWindow form a critical section that
// callers must serialize across every Handle they own.
package process

import (
	"log/slog"

	"github.com/Norgate-AV/procctl/internal/interfaces"
	"github.com/Norgate-AV/procctl/internal/logger"
)

// Dependencies holds the OS capabilities a Handle uses
type Dependencies struct {
	Processes  interfaces.ProcessAPI
	Windows    interfaces.WindowAPI
	Keyboard   interfaces.KeyboardAPI
	Grabber    interfaces.PixelGrabber
	Privileges interfaces.Privileges
}

// Identity identifies the attached process. It never changes once resolved.
type Identity struct {
	PID         uint32
	Name        string
	BaseAddress uintptr
}

// FocusSnapshot records who had the foreground before Focus took it
type FocusSnapshot struct {
	Window uintptr
	// Thread is the calling thread whose input queue was attached to the target
	Thread uint32

	// attachedTo is the target thread, 0 until the attach succeeded
	attachedTo uint32
}

// Handle is an attached process
type Handle struct {
	identity    Identity
	windowTitle string

	log  logger.LoggerInterface
	deps *Dependencies

	// read handle, opened on first read
	readHandle uintptr
	readOpened bool
	closed     bool

	// window state, resolved by title on demand
	window         uintptr
	windowResolved bool
	thread         uint32
	threadResolved bool

	snapshot *FocusSnapshot
}

// NewHandle wraps an already resolved identity. Most callers use FindByName.
func NewHandle(log logger.LoggerInterface, deps *Dependencies, identity Identity, windowTitle string) *Handle {
	return &Handle{
		identity:    identity,
		windowTitle: windowTitle,
		log:         log,
		deps:        deps,
	}
}

// Identity returns the resolved process identity
func (h *Handle) Identity() Identity {
	return h.identity
}

// WindowTitle returns the title used to look up the target window
func (h *Handle) WindowTitle() string {
	return h.windowTitle
}

// Close releases the read handle. It is safe to call more than once; only the
// first call touches the OS. A failing CloseHandle is logged and not retried.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}

	h.closed = true

	if !h.readOpened {
		return nil
	}

	handle := h.readHandle
	h.readHandle = 0
	h.readOpened = false

	if err := h.deps.Processes.CloseHandle(handle); err != nil {
		h.log.Warn("Failed to close process handle",
			slog.Uint64("pid", uint64(h.identity.PID)),
			slog.Any("error", err),
		)
		return err
	}

	h.log.Debug("Process handle closed", slog.Uint64("pid", uint64(h.identity.PID)))
	return nil
}
