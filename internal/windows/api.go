//go:build windows

package windows

import (
	"image"
	"time"

	xwindows "golang.org/x/sys/windows"

	"github.com/Norgate-AV/procctl/internal/interfaces"
	"github.com/Norgate-AV/procctl/internal/logger"
)

// Procs that neither lxn/win nor x/sys/windows wrap
var (
	user32                   = xwindows.NewLazySystemDLL("user32.dll")
	procVkKeyScanW           = user32.NewProc("VkKeyScanW")
	procMapVirtualKeyW       = user32.NewProc("MapVirtualKeyW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procSendMessageTimeoutW  = user32.NewProc("SendMessageTimeoutW")
)

const (
	MAPVK_VK_TO_VSC = 0

	WM_NULL          = 0x0000
	SMTO_ABORTIFHUNG = 0x0002

	// VkKeyScanW returns this when the character has no key on the layout
	vkScanNoKey = 0xFFFF
)

// WindowsAPI is a concrete implementation of all Windows-related interfaces
// It wraps a Client to provide the required functionality
type WindowsAPI struct {
	client *Client
}

var (
	_ interfaces.ProcessAPI  = (*WindowsAPI)(nil)
	_ interfaces.WindowAPI   = (*WindowsAPI)(nil)
	_ interfaces.KeyboardAPI = (*WindowsAPI)(nil)
	_ interfaces.Privileges  = (*WindowsAPI)(nil)
)

// NewWindowsAPI creates a new WindowsAPI with the provided logger
func NewWindowsAPI(log logger.LoggerInterface) *WindowsAPI {
	return &WindowsAPI{
		client: NewClient(log),
	}
}

// ProcessAPI interface implementation
func (w *WindowsAPI) EnumProcesses() ([]uint32, error) { return w.client.Process.EnumProcesses() }
func (w *WindowsAPI) OpenProcess(pid uint32, rights interfaces.ProcessRights) (uintptr, error) {
	return w.client.Process.OpenProcess(pid, rights)
}

func (w *WindowsAPI) EnumModules(handle uintptr) ([]interfaces.Module, error) {
	return w.client.Process.EnumModules(handle)
}

func (w *WindowsAPI) ReadMemory(handle, address uintptr, size int) ([]byte, error) {
	return w.client.Process.ReadMemory(handle, address, size)
}
func (w *WindowsAPI) CloseHandle(handle uintptr) error { return w.client.Process.CloseHandle(handle) }

// WindowAPI interface implementation
func (w *WindowsAPI) FindWindow(title string) (uintptr, error) { return w.client.Window.FindWindow(title) }
func (w *WindowsAPI) Windows() ([]interfaces.WindowInfo, error) { return w.client.Window.Windows() }
func (w *WindowsAPI) WindowThreadID(hwnd uintptr) (uint32, error) {
	return w.client.Window.WindowThreadID(hwnd)
}
func (w *WindowsAPI) CurrentThreadID() uint32               { return w.client.Window.CurrentThreadID() }
func (w *WindowsAPI) ForegroundWindow() uintptr             { return w.client.Window.ForegroundWindow() }
func (w *WindowsAPI) SetForegroundWindow(hwnd uintptr) error { return w.client.Window.SetForegroundWindow(hwnd) }
func (w *WindowsAPI) AttachThreadInput(from, to uint32, attach bool) error {
	return w.client.Window.AttachThreadInput(from, to, attach)
}

func (w *WindowsAPI) ClientRect(hwnd uintptr) (image.Rectangle, error) {
	return w.client.Window.ClientRect(hwnd)
}

func (w *WindowsAPI) ClientToScreen(hwnd uintptr, p image.Point) (image.Point, error) {
	return w.client.Window.ClientToScreen(hwnd, p)
}

func (w *WindowsAPI) IsResponsive(hwnd uintptr, timeout time.Duration) bool {
	return w.client.Window.IsResponsive(hwnd, timeout)
}

// KeyboardAPI interface implementation
func (w *WindowsAPI) PressAndRelease(key string, spacing time.Duration, precise bool) error {
	return w.client.Keyboard.PressAndRelease(key, spacing, precise)
}
func (w *WindowsAPI) VirtualKey(key string) (uint16, error) { return w.client.Keyboard.VirtualKey(key) }
func (w *WindowsAPI) ScanCode(vk uint16) uint32             { return w.client.Keyboard.ScanCode(vk) }
func (w *WindowsAPI) SendMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	return w.client.Keyboard.SendMessage(hwnd, msg, wParam, lParam)
}

func (w *WindowsAPI) PostMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) error {
	return w.client.Keyboard.PostMessage(hwnd, msg, wParam, lParam)
}

// Privileges interface implementation
func (w *WindowsAPI) IsElevated() bool { return IsElevated() }
