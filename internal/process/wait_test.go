package process

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastWait() WaitOptions {
	return WaitOptions{
		PollInterval:    time.Millisecond,
		ResponseTimeout: time.Millisecond,
		StabilityDelay:  time.Millisecond,
		StabilityChecks: 3,
		RequiredAnswers: 2,
	}
}

func TestWaitForWindow_AlreadyReady(t *testing.T) {
	m := newMocks()
	h := m.handle()

	hwnd, err := h.WaitForWindow(context.Background(), fastWait())
	require.NoError(t, err)

	assert.Equal(t, gameWindow, hwnd)
	assert.Len(t, m.win.ResponsiveCalls, 4)
}

func TestWaitForWindow_WindowAppearsLater(t *testing.T) {
	m := newMocks()
	m.win.WithFindWindowMisses(3)
	h := m.handle()

	hwnd, err := h.WaitForWindow(context.Background(), fastWait())
	require.NoError(t, err)

	assert.Equal(t, gameWindow, hwnd)
	assert.Len(t, m.win.FindWindowCalls, 4)
}

func TestWaitForWindow_UnstableWindowIsLookedUpAgain(t *testing.T) {
	m := newMocks()
	// first answer, then two of three follow-ups fail
	m.win.WithResponses(true, false, true, false)
	h := m.handle()

	hwnd, err := h.WaitForWindow(context.Background(), fastWait())
	require.NoError(t, err)

	assert.Equal(t, gameWindow, hwnd)
	assert.Len(t, m.win.FindWindowCalls, 2)
	assert.Len(t, m.win.ResponsiveCalls, 8)
}

func TestWaitForWindow_HungWindowTimesOut(t *testing.T) {
	m := newMocks()
	responses := make([]bool, 10000)
	m.win.WithResponses(responses...)
	h := m.handle()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.WaitForWindow(ctx, fastWait())
	require.Error(t, err)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), `"Game Window"`)
}

func TestWaitForWindow_MissingWindowTimesOut(t *testing.T) {
	m := newMocks()
	m.win.WithFindWindowMisses(1 << 30)
	h := m.handle()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := h.WaitForWindow(ctx, fastWait())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, m.win.ResponsiveCalls)
}

func TestWaitForWindow_LookupErrorIsReturned(t *testing.T) {
	m := newMocks()
	m.win.FindWindowErr = errors.New("desktop unavailable")
	h := m.handle()

	_, err := h.WaitForWindow(context.Background(), fastWait())
	require.Error(t, err)

	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "desktop unavailable")
}

func TestWaitForWindow_UnresponsiveWindowKeepsCache(t *testing.T) {
	m := newMocks()
	h := m.handle()

	_, err := h.windowThread()
	require.NoError(t, err)

	m.win.WithResponses(make([]bool, 10000)...)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = h.WaitForWindow(ctx, fastWait())
	require.ErrorIs(t, err, context.DeadlineExceeded)

	assert.True(t, h.windowResolved)
	assert.Equal(t, gameWindow, h.window)
	assert.True(t, h.threadResolved)
	assert.Equal(t, gameThread, h.thread)
}

func TestWaitForWindow_StoresReadyWindow(t *testing.T) {
	m := newMocks()
	h := m.handle()

	_, err := h.WaitForWindow(context.Background(), fastWait())
	require.NoError(t, err)

	hwnd, err := h.WindowHandle()
	require.NoError(t, err)

	assert.Equal(t, gameWindow, hwnd)
	assert.Len(t, m.win.FindWindowCalls, 1)
}
