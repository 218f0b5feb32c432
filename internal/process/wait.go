package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Norgate-AV/procctl/internal/timeouts"
)

// WaitOptions controls WaitForWindow
type WaitOptions struct {
	PollInterval    time.Duration
	ResponseTimeout time.Duration

	// After the first answer the window is checked StabilityChecks more
	// times, StabilityDelay apart, and must answer at least RequiredAnswers.
	StabilityDelay  time.Duration
	StabilityChecks int
	RequiredAnswers int
}

// DefaultWaitOptions returns the options used by the wait command
func DefaultWaitOptions() WaitOptions {
	return WaitOptions{
		PollInterval:    timeouts.WindowPollInterval,
		ResponseTimeout: timeouts.ResponsiveTimeout,
		StabilityDelay:  timeouts.StabilityCheckDelay,
		StabilityChecks: 3,
		RequiredAnswers: 2,
	}
}

// WaitForWindow blocks until the target window exists and keeps answering
// messages, or ctx is done. Every poll looks the window up by title; only a
// window that passed the checks is stored as the handle's cached window.
func (h *Handle) WaitForWindow(ctx context.Context, opts WaitOptions) (uintptr, error) {
	polls := 0

	for {
		hwnd, err := h.findWindow()

		switch {
		case err == nil:
			if h.settled(ctx, hwnd, opts) {
				h.rememberWindow(hwnd)
				h.log.Debug("Window is ready",
					slog.String("title", h.windowTitle),
					slog.Int("polls", polls),
				)
				return hwnd, nil
			}

		case !errors.Is(err, ErrNotFound):
			return 0, err
		}

		polls++

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("timed out waiting for window %q: %w", h.windowTitle, ctx.Err())
		case <-time.After(opts.PollInterval):
		}
	}
}

// settled reports whether hwnd answers now and keeps answering
func (h *Handle) settled(ctx context.Context, hwnd uintptr, opts WaitOptions) bool {
	if !h.deps.Windows.IsResponsive(hwnd, opts.ResponseTimeout) {
		return false
	}

	answers := 0
	for range opts.StabilityChecks {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(opts.StabilityDelay):
		}

		if h.deps.Windows.IsResponsive(hwnd, opts.ResponseTimeout) {
			answers++
		}
	}

	return answers >= opts.RequiredAnswers
}
