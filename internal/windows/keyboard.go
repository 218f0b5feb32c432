//go:build windows

package windows

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
	"unsafe"

	"github.com/lxn/win"
	"github.com/pkg/errors"

	"github.com/Norgate-AV/procctl/internal/logger"
	"github.com/Norgate-AV/procctl/internal/timeouts"
)

var namedKeys = map[string]uint16{
	"alt":         win.VK_MENU,
	"menu":        win.VK_MENU,
	"ctrl":        win.VK_CONTROL,
	"control":     win.VK_CONTROL,
	"shift":       win.VK_SHIFT,
	"win":         win.VK_LWIN,
	"enter":       win.VK_RETURN,
	"return":      win.VK_RETURN,
	"tab":         win.VK_TAB,
	"esc":         win.VK_ESCAPE,
	"escape":      win.VK_ESCAPE,
	"space":       win.VK_SPACE,
	"backspace":   win.VK_BACK,
	"capslock":    win.VK_CAPITAL,
	"pageup":      win.VK_PRIOR,
	"pagedown":    win.VK_NEXT,
	"end":         win.VK_END,
	"home":        win.VK_HOME,
	"left":        win.VK_LEFT,
	"up":          win.VK_UP,
	"right":       win.VK_RIGHT,
	"down":        win.VK_DOWN,
	"insert":      win.VK_INSERT,
	"delete":      win.VK_DELETE,
	"printscreen": win.VK_SNAPSHOT,
}

// Keys that need KEYEVENTF_EXTENDEDKEY when synthesized
var extendedKeys = map[uint16]bool{
	win.VK_PRIOR:    true,
	win.VK_NEXT:     true,
	win.VK_END:      true,
	win.VK_HOME:     true,
	win.VK_LEFT:     true,
	win.VK_UP:       true,
	win.VK_RIGHT:    true,
	win.VK_DOWN:     true,
	win.VK_INSERT:   true,
	win.VK_DELETE:   true,
	win.VK_SNAPSHOT: true,
	win.VK_LWIN:     true,
}

// keyboardInjector implements the KeyboardAPI interface
type keyboardInjector struct {
	log logger.LoggerInterface
}

// newKeyboardInjector creates a new keyboard injector
func newKeyboardInjector(log logger.LoggerInterface) *keyboardInjector {
	return &keyboardInjector{log: log}
}

// VirtualKey translates a key name ("alt", "f5", "enter") or a single
// character to a virtual-key code using the active keyboard layout
func (k *keyboardInjector) VirtualKey(key string) (uint16, error) {
	name := strings.ToLower(strings.TrimSpace(key))

	if vk, ok := namedKeys[name]; ok {
		return vk, nil
	}

	if n, ok := strings.CutPrefix(name, "f"); ok && n != "" {
		if i, err := strconv.Atoi(n); err == nil && i >= 1 && i <= 24 {
			return uint16(win.VK_F1 + i - 1), nil
		}
	}

	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || size != len(key) || r > 0xFFFF {
		return 0, errors.Errorf("unknown key %q", key)
	}

	ret, _, _ := procVkKeyScanW.Call(uintptr(r))
	if uint16(ret) == vkScanNoKey {
		return 0, errors.Errorf("key %q is not on the current keyboard layout", key)
	}

	// Low byte is the key, high byte the shift state
	return uint16(ret) & 0xFF, nil
}

// ScanCode maps a virtual-key code to its scan code
func (k *keyboardInjector) ScanCode(vk uint16) uint32 {
	ret, _, _ := procMapVirtualKeyW.Call(uintptr(vk), MAPVK_VK_TO_VSC)
	return uint32(ret)
}

// PressAndRelease presses the keys of a "+" separated combination in order,
// waits spacing and releases them in reverse order
func (k *keyboardInjector) PressAndRelease(key string, spacing time.Duration, precise bool) error {
	parts := strings.Split(key, "+")
	codes := make([]uint16, 0, len(parts))

	for _, p := range parts {
		vk, err := k.VirtualKey(p)
		if err != nil {
			return err
		}

		codes = append(codes, vk)
	}

	down := make([]win.KEYBD_INPUT, 0, len(codes))
	for _, vk := range codes {
		down = append(down, keyInput(vk, false))
	}

	if err := k.send(down); err != nil {
		return errors.Wrapf(err, "key down %q", key)
	}

	sleep(spacing, precise)

	up := make([]win.KEYBD_INPUT, 0, len(codes))
	for i := len(codes) - 1; i >= 0; i-- {
		up = append(up, keyInput(codes[i], true))
	}

	if err := k.send(up); err != nil {
		return errors.Wrapf(err, "key up %q", key)
	}

	k.log.Debug("Pressed key", slog.String("key", key))
	return nil
}

func keyInput(vk uint16, up bool) win.KEYBD_INPUT {
	var flags uint32
	if extendedKeys[vk] {
		flags |= win.KEYEVENTF_EXTENDEDKEY
	}

	if up {
		flags |= win.KEYEVENTF_KEYUP
	}

	return win.KEYBD_INPUT{
		Type: win.INPUT_KEYBOARD,
		Ki: win.KEYBDINPUT{
			WVk:     vk,
			DwFlags: flags,
		},
	}
}

func (k *keyboardInjector) send(inputs []win.KEYBD_INPUT) error {
	if len(inputs) == 0 {
		return nil
	}

	sent := win.SendInput(uint32(len(inputs)), unsafe.Pointer(&inputs[0]), int32(unsafe.Sizeof(inputs[0])))
	if int(sent) != len(inputs) {
		return errors.Errorf("SendInput inserted %d of %d events", sent, len(inputs))
	}

	return nil
}

// SendMessage delivers a message and waits for the window to process it
func (k *keyboardInjector) SendMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	return win.SendMessage(win.HWND(hwnd), msg, wParam, lParam)
}

// PostMessage queues a message without waiting
func (k *keyboardInjector) PostMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) error {
	if win.PostMessage(win.HWND(hwnd), msg, wParam, lParam) == 0 {
		return errors.Errorf("PostMessage(%#x, %#x) failed", hwnd, msg)
	}

	return nil
}

// sleep waits d. A precise sleep spends the last PreciseSleepWindow
// busy-waiting because time.Sleep can overshoot by a scheduler tick.
func sleep(d time.Duration, precise bool) {
	if d <= 0 {
		return
	}

	if !precise || d <= timeouts.PreciseSleepWindow {
		time.Sleep(d)
		return
	}

	deadline := time.Now().Add(d)
	time.Sleep(d - timeouts.PreciseSleepWindow)

	for time.Now().Before(deadline) {
	}
}
