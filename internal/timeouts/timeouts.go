// Package timeouts defines timing constants used throughout the application.
// These values have been empirically determined for reliable interaction with
// the Windows input and focus APIs.
package timeouts

import "time"

const (
	// Focus Delays

	// FocusRetryDelay is the pause between a failed foreground request and
	// its single retry. It gives a freshly re-resolved window handle and the
	// input-queue attachment time to settle.
	FocusRetryDelay = 100 * time.Millisecond

	// FocusHoldDelay is how long the focus command keeps the target window in
	// the foreground before handing focus back.
	FocusHoldDelay = 1 * time.Second

	// Keyboard Delays

	// KeystrokeDelay is the default hold time between key down and key up
	// used by the command line when sending keys.
	KeystrokeDelay = 50 * time.Millisecond

	// InterKeyDelay is the default pause between two key tokens used by the
	// command line when sending keys.
	InterKeyDelay = 50 * time.Millisecond

	// PreciseSleepWindow is the tail of a precise sleep that is spent
	// busy-waiting instead of in time.Sleep, which on Windows can overshoot
	// by a full scheduler tick.
	PreciseSleepWindow = 2 * time.Millisecond

	// Polling

	// WatchInterval is the default delay between two reads when polling a
	// value with read --watch.
	WatchInterval = 500 * time.Millisecond

	// WindowPollInterval is the delay between two lookups while waiting for
	// the target window to appear.
	WindowPollInterval = 100 * time.Millisecond

	// ResponsiveTimeout bounds a single WM_NULL round trip when checking
	// whether a window is responsive.
	ResponsiveTimeout = 1 * time.Second

	// StabilityCheckDelay is the pause between the follow-up responsiveness
	// checks once a window answered for the first time.
	StabilityCheckDelay = 500 * time.Millisecond

	// WindowWaitTimeout is the default time the wait command gives the
	// target window to appear and become responsive.
	WindowWaitTimeout = 60 * time.Second
)
