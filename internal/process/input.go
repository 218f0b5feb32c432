package process

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Window messages used for direct delivery
const (
	MsgKeyDown uint32 = 0x0100 // WM_KEYDOWN
	MsgKeyUp   uint32 = 0x0101 // WM_KEYUP
)

// ctrlFlag is OR'd into the virtual-key code of a ctrl combination
const ctrlFlag = 0x200

const (
	lParamRepeatOne  = 0x00000001
	lParamExtended   = 1 << 24
	lParamPrevDown   = 1 << 30
	lParamTransition = 1 << 31
)

// SendOptions controls how SendInput delivers keys
type SendOptions struct {
	// InterKeyDelay is waited after every key
	InterKeyDelay time.Duration
	// IntraKeyDelay is the hold time between press and release
	IntraKeyDelay time.Duration

	Focus     bool
	FocusBack bool

	// DirectToWindow posts key messages to the window's queue instead of
	// synthesizing global input, so the window does not need the foreground
	DirectToWindow bool
}

// DefaultSendOptions focuses the window before sending and restores focus after
func DefaultSendOptions() SendOptions {
	return SendOptions{
		Focus:     true,
		FocusBack: true,
	}
}

// SendInput sends every key token in order. Tokens are key names such as
// "a", "enter" or "f5"; in direct mode "x+ctrl" sends x with ctrl held.
func (h *Handle) SendInput(keys []string, opts SendOptions) error {
	if opts.FocusBack {
		defer h.FocusBackToLastWindow()
	}

	if opts.Focus {
		if err := h.Focus(); err != nil {
			return err
		}

		time.Sleep(opts.IntraKeyDelay)
	}

	for _, key := range keys {
		var err error
		if opts.DirectToWindow {
			err = h.sendToWindow(key, opts.IntraKeyDelay)
		} else {
			err = h.deps.Keyboard.PressAndRelease(key, opts.IntraKeyDelay, true)
		}

		if err != nil {
			return fmt.Errorf("failed to send key %q: %w", key, err)
		}

		time.Sleep(opts.InterKeyDelay)
	}

	h.log.Debug("Sent input",
		slog.String("title", h.windowTitle),
		slog.Int("keys", len(keys)),
		slog.Bool("direct", opts.DirectToWindow),
	)

	return nil
}

// sendToWindow delivers key-down synchronously and key-up without waiting
// for the window to process it
func (h *Handle) sendToWindow(token string, hold time.Duration) error {
	hwnd, err := h.WindowHandle()
	if err != nil {
		return err
	}

	base, ctrl := splitModifiers(token)

	vk, err := h.deps.Keyboard.VirtualKey(base)
	if err != nil {
		return err
	}

	scan := h.deps.Keyboard.ScanCode(vk)

	wParam := uintptr(vk)
	if ctrl {
		wParam |= ctrlFlag
	}

	h.deps.Keyboard.SendMessage(hwnd, MsgKeyDown, wParam, keyLParam(MsgKeyDown, scan, ctrl))

	time.Sleep(hold)

	if err := h.deps.Keyboard.PostMessage(hwnd, MsgKeyUp, wParam, keyLParam(MsgKeyUp, scan, ctrl)); err != nil {
		h.log.Debug("Failed to post key up",
			slog.String("key", token),
			slog.Any("error", err),
		)
	}

	return nil
}

// splitModifiers returns the base key of a "+" separated token and whether
// ctrl was one of its parts. The base is the first part that is not ctrl, so
// "ctrl+s" and "s+ctrl" are the same key. A bare "ctrl" is the key itself.
func splitModifiers(token string) (string, bool) {
	parts := strings.Split(token, "+")

	base := ""
	ctrl := false

	for _, p := range parts {
		if strings.EqualFold(strings.TrimSpace(p), "ctrl") {
			ctrl = true
			continue
		}

		if base == "" {
			base = p
		}
	}

	if base == "" {
		return parts[0], false
	}

	return base, ctrl
}

// keyLParam builds the lParam of a WM_KEYDOWN or WM_KEYUP message:
// repeat count in bits 0-15, scan code in 16-23, extended flag in 24,
// previous key state in 30 and transition state in 31
func keyLParam(msg uint32, scan uint32, extended bool) uintptr {
	l := uint32(lParamRepeatOne) | (scan&0xFF)<<16

	if extended {
		l |= lParamExtended
	}

	if msg == MsgKeyUp {
		l |= lParamPrevDown | lParamTransition
	}

	return uintptr(l)
}
