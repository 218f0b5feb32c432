// Package interfaces defines the OS capabilities the process package depends on.
// The real implementations live in internal/windows; tests use internal/testutil.
package interfaces

import (
	"image"
	"time"
)

// ProcessRights is an access mask passed to OpenProcess
type ProcessRights uint32

const (
	// AccessRead allows ReadProcessMemory and nothing else
	AccessRead ProcessRights = 0x0010 // PROCESS_VM_READ

	// AccessQueryRead allows module enumeration in addition to reads.
	// Only used during discovery.
	AccessQueryRead ProcessRights = 0x0400 | 0x0010 // PROCESS_QUERY_INFORMATION | PROCESS_VM_READ
)

// Module is a loaded module of a process
type Module struct {
	Base uintptr
	Path string
}

// ProcessAPI enumerates processes and reads their memory
type ProcessAPI interface {
	EnumProcesses() ([]uint32, error)
	OpenProcess(pid uint32, rights ProcessRights) (uintptr, error)
	EnumModules(handle uintptr) ([]Module, error)
	ReadMemory(handle uintptr, address uintptr, size int) ([]byte, error)
	CloseHandle(handle uintptr) error
}

// WindowInfo is a visible top-level window
type WindowInfo struct {
	Handle uintptr
	Title  string
	PID    uint32
}

// WindowAPI handles window lookup and desktop focus
type WindowAPI interface {
	// FindWindow returns the top-level window with exactly this title, or 0
	FindWindow(title string) (uintptr, error)
	// Windows lists the visible top-level windows
	Windows() ([]WindowInfo, error)
	WindowThreadID(hwnd uintptr) (uint32, error)
	CurrentThreadID() uint32
	ForegroundWindow() uintptr
	SetForegroundWindow(hwnd uintptr) error
	AttachThreadInput(from, to uint32, attach bool) error
	ClientRect(hwnd uintptr) (image.Rectangle, error)
	ClientToScreen(hwnd uintptr, p image.Point) (image.Point, error)
	// IsResponsive reports whether hwnd processes a message within timeout
	IsResponsive(hwnd uintptr, timeout time.Duration) bool
}

// KeyboardAPI handles keyboard input
type KeyboardAPI interface {
	// PressAndRelease synthesizes a global key press through the OS input queue.
	// spacing is the hold time between down and up; precise busy-waits the tail.
	PressAndRelease(key string, spacing time.Duration, precise bool) error

	// VirtualKey translates a key name or a single character using the active layout
	VirtualKey(key string) (uint16, error)

	// ScanCode maps a virtual-key code to its scan code
	ScanCode(vk uint16) uint32

	SendMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr
	PostMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) error
}

// PixelGrabber captures a screen region
type PixelGrabber interface {
	Grab(rect image.Rectangle, allScreens bool) (*image.RGBA, error)
}

// Privileges reports on the privileges of the current process
type Privileges interface {
	IsElevated() bool
}
