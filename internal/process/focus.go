package process

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Norgate-AV/procctl/internal/timeouts"
)

// focusKey is pressed before every foreground change. Windows only lets a
// process take the foreground right after it has produced input.
const focusKey = "alt"

const focusAttempts = 2

// WindowHandle returns the target window, looking it up by title on first use
func (h *Handle) WindowHandle() (uintptr, error) {
	if h.windowResolved {
		return h.window, nil
	}

	hwnd, err := h.findWindow()
	if err != nil {
		return 0, err
	}

	h.rememberWindow(hwnd)
	return hwnd, nil
}

// findWindow looks the target window up by title without touching the cache
func (h *Handle) findWindow() (uintptr, error) {
	hwnd, err := h.deps.Windows.FindWindow(h.windowTitle)
	if err != nil {
		return 0, fmt.Errorf("failed to find window %q: %w", h.windowTitle, err)
	}

	if hwnd == 0 {
		return 0, &NotFoundError{Kind: "window", Key: h.windowTitle}
	}

	return hwnd, nil
}

func (h *Handle) rememberWindow(hwnd uintptr) {
	if h.windowResolved && h.window == hwnd {
		return
	}

	h.window = hwnd
	h.windowResolved = true
	h.thread = 0
	h.threadResolved = false

	h.log.Debug("Resolved window",
		slog.String("title", h.windowTitle),
		slog.Uint64("hwnd", uint64(hwnd)),
	)
}

// windowThread returns the thread that owns the target window
func (h *Handle) windowThread() (uint32, error) {
	if h.threadResolved {
		return h.thread, nil
	}

	hwnd, err := h.WindowHandle()
	if err != nil {
		return 0, err
	}

	tid, err := h.deps.Windows.WindowThreadID(hwnd)
	if err != nil {
		return 0, fmt.Errorf("failed to get thread of window %#x: %w", hwnd, err)
	}

	h.thread = tid
	h.threadResolved = true
	return tid, nil
}

// InvalidateWindow forgets the cached window handle and thread id so the next
// use looks the window up by title again
func (h *Handle) InvalidateWindow() {
	h.window = 0
	h.windowResolved = false
	h.thread = 0
	h.threadResolved = false
}

// Focus brings the target window to the foreground and records the previous
// foreground window for FocusBackToLastWindow. It does nothing when the
// target already has the foreground.
//
// A failed attempt drops the cached window handle, waits and tries once
// more; the error of the second attempt is returned. All attempts share one
// snapshot, so an attachment made by an earlier attempt is still undone.
func (h *Handle) Focus() error {
	previous := &FocusSnapshot{
		Window: h.deps.Windows.ForegroundWindow(),
		Thread: h.deps.Windows.CurrentThreadID(),
	}

	var err error

	for attempt := 1; attempt <= focusAttempts; attempt++ {
		var done bool

		done, err = h.tryFocus(previous)
		if err == nil {
			if done {
				h.log.Debug("Window focused",
					slog.String("title", h.windowTitle),
					slog.Int("attempt", attempt),
				)
			}

			return nil
		}

		h.log.Debug("Focus attempt failed",
			slog.String("title", h.windowTitle),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)

		h.InvalidateWindow()
		if attempt < focusAttempts {
			time.Sleep(timeouts.FocusRetryDelay)
		}
	}

	return fmt.Errorf("failed to focus window %q: %w", h.windowTitle, err)
}

// tryFocus performs one focus attempt. It reports false when the target
// already had the foreground and nothing was done.
func (h *Handle) tryFocus(previous *FocusSnapshot) (bool, error) {
	hwnd, err := h.WindowHandle()
	if err != nil {
		return false, err
	}

	if previous.Window == hwnd {
		return false, nil
	}

	target, err := h.windowThread()
	if err != nil {
		return false, err
	}

	h.snapshot = previous

	if err := h.deps.Keyboard.PressAndRelease(focusKey, 0, true); err != nil {
		return false, err
	}

	// The window may have been recreated under another thread since the last attempt
	if previous.attachedTo != 0 && previous.attachedTo != target {
		if err := h.deps.Windows.AttachThreadInput(previous.Thread, previous.attachedTo, false); err != nil {
			h.log.Debug("Failed to detach thread input", slog.Any("error", err))
		}

		previous.attachedTo = 0
	}

	if err := h.deps.Windows.AttachThreadInput(previous.Thread, target, true); err != nil {
		return false, err
	}

	previous.attachedTo = target

	if err := h.deps.Windows.SetForegroundWindow(hwnd); err != nil {
		return false, err
	}

	return true, nil
}

// FocusBackToLastWindow hands the foreground back to the window recorded by
// the last Focus and undoes the input attachment. It never fails: losing the
// previous focus is logged and otherwise ignored.
func (h *Handle) FocusBackToLastWindow() {
	snapshot := h.snapshot
	h.snapshot = nil

	if snapshot == nil {
		h.log.Debug("No focus snapshot to restore")
		return
	}

	// Compared against the cached handle only, no lookup happens here
	if h.windowResolved && snapshot.Window == h.window {
		return
	}

	if err := h.deps.Keyboard.PressAndRelease(focusKey, 0, false); err != nil {
		h.log.Debug("Focus key press failed", slog.Any("error", err))
	}

	if snapshot.attachedTo != 0 {
		if err := h.deps.Windows.AttachThreadInput(snapshot.Thread, snapshot.attachedTo, false); err != nil {
			h.log.Debug("Failed to detach thread input", slog.Any("error", err))
		}
	}

	if err := h.deps.Windows.SetForegroundWindow(snapshot.Window); err != nil {
		h.log.Debug("Could not restore previous foreground window",
			slog.Uint64("hwnd", uint64(snapshot.Window)),
			slog.Any("error", err),
		)
		return
	}

	h.log.Debug("Focus restored", slog.Uint64("hwnd", uint64(snapshot.Window)))
}
