//go:build windows

package windows

import (
	"image"
	"log/slog"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
	"github.com/pkg/errors"
	xwindows "golang.org/x/sys/windows"

	"github.com/Norgate-AV/procctl/internal/interfaces"
	"github.com/Norgate-AV/procctl/internal/logger"
)

var (
	foundWindows []interfaces.WindowInfo
	windowsMu    sync.Mutex

	// Callbacks are never freed, so there is exactly one
	enumWindowsCallback = xwindows.NewCallback(collectWindow)
)

// windowManager implements the WindowAPI interface
type windowManager struct {
	log logger.LoggerInterface
}

// newWindowManager creates a new window manager
func newWindowManager(log logger.LoggerInterface) *windowManager {
	return &windowManager{log: log}
}

// FindWindow returns the top-level window whose title is exactly title, or 0
func (w *windowManager) FindWindow(title string) (uintptr, error) {
	titlePtr, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid window title %q", title)
	}

	hwnd := win.FindWindow(nil, titlePtr)
	w.log.Debug("FindWindow", slog.String("title", title), slog.Uint64("hwnd", uint64(hwnd)))

	return uintptr(hwnd), nil
}

func collectWindow(hwnd xwindows.HWND, _ uintptr) uintptr {
	if xwindows.IsWindowVisible(hwnd) {
		var pid uint32
		_, _ = xwindows.GetWindowThreadProcessId(hwnd, &pid)

		foundWindows = append(foundWindows, interfaces.WindowInfo{
			Handle: uintptr(hwnd),
			Title:  windowText(uintptr(hwnd)),
			PID:    pid,
		})
	}

	return 1 // Continue enumeration
}

// Windows performs a thread-safe enumeration of visible top-level windows
func (w *windowManager) Windows() ([]interfaces.WindowInfo, error) {
	windowsMu.Lock()
	defer windowsMu.Unlock()

	foundWindows = nil

	if err := xwindows.EnumWindows(enumWindowsCallback, nil); err != nil {
		return nil, errors.Wrap(err, "EnumWindows")
	}

	result := make([]interfaces.WindowInfo, len(foundWindows))
	copy(result, foundWindows)

	return result, nil
}

func windowText(hwnd uintptr) string {
	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return ""
	}

	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))

	return syscall.UTF16ToString(buf)
}

// WindowThreadID returns the id of the thread that created hwnd
func (w *windowManager) WindowThreadID(hwnd uintptr) (uint32, error) {
	tid, err := xwindows.GetWindowThreadProcessId(xwindows.HWND(hwnd), nil)
	if err != nil {
		return 0, errors.Wrapf(err, "GetWindowThreadProcessId(%#x)", hwnd)
	}

	return tid, nil
}

// CurrentThreadID returns the id of the calling OS thread
func (w *windowManager) CurrentThreadID() uint32 {
	return xwindows.GetCurrentThreadId()
}

// ForegroundWindow returns the window that currently has the foreground
func (w *windowManager) ForegroundWindow() uintptr {
	return uintptr(win.GetForegroundWindow())
}

// SetForegroundWindow brings a window to the foreground
func (w *windowManager) SetForegroundWindow(hwnd uintptr) error {
	if !win.SetForegroundWindow(win.HWND(hwnd)) {
		return errors.Errorf("SetForegroundWindow(%#x) was refused", hwnd)
	}

	w.log.Debug("SetForegroundWindow succeeded", slog.Uint64("hwnd", uint64(hwnd)))
	return nil
}

// AttachThreadInput attaches or detaches the input queue of from to that of to
func (w *windowManager) AttachThreadInput(from, to uint32, attach bool) error {
	if !win.AttachThreadInput(int32(from), int32(to), attach) {
		return errors.Errorf("AttachThreadInput(%d, %d, %t) failed", from, to, attach)
	}

	return nil
}

// ClientRect returns the client area of hwnd in client coordinates
func (w *windowManager) ClientRect(hwnd uintptr) (image.Rectangle, error) {
	var r win.RECT
	if !win.GetClientRect(win.HWND(hwnd), &r) {
		return image.Rectangle{}, errors.Errorf("GetClientRect(%#x) failed", hwnd)
	}

	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)), nil
}

// ClientToScreen converts a client point of hwnd to screen coordinates
func (w *windowManager) ClientToScreen(hwnd uintptr, p image.Point) (image.Point, error) {
	pt := win.POINT{X: int32(p.X), Y: int32(p.Y)}
	if !win.ClientToScreen(win.HWND(hwnd), &pt) {
		return image.Point{}, errors.Errorf("ClientToScreen(%#x) failed", hwnd)
	}

	return image.Pt(int(pt.X), int(pt.Y)), nil
}

// IsResponsive sends WM_NULL and reports whether hwnd answered within timeout.
// A hung window makes SendMessageTimeout return 0.
func (w *windowManager) IsResponsive(hwnd uintptr, timeout time.Duration) bool {
	var result uintptr

	ret, _, _ := procSendMessageTimeoutW.Call(
		hwnd,
		WM_NULL,
		0,
		0,
		SMTO_ABORTIFHUNG,
		uintptr(timeout.Milliseconds()),
		uintptr(unsafe.Pointer(&result)),
	)

	if ret == 0 {
		w.log.Debug("Window did not respond", slog.Uint64("hwnd", uint64(hwnd)))
		return false
	}

	return true
}
