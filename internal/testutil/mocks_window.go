package testutil

import (
	"fmt"
	"image"
	"time"

	"github.com/Norgate-AV/procctl/internal/interfaces"
)

// MockWindowAPI implements interfaces.WindowAPI over a scripted desktop.
// SetForegroundWindow moves Foreground to the window unless an error is queued.
type MockWindowAPI struct {
	Titles        map[string]uintptr
	Threads       map[uintptr]uint32
	CurrentThread uint32
	Foreground    uintptr
	WindowList    []interfaces.WindowInfo
	ClientRects   map[uintptr]image.Rectangle
	ScreenOrigins map[uintptr]image.Point
	// Responses is consumed by IsResponsive; once empty every window answers
	Responses []bool

	FindWindowErr     error
	FindWindowMisses  int
	ThreadErr         error
	AttachErr         error
	SetForegroundErrs []error
	ClientRectErr     error

	FindWindowCalls     []string
	SetForegroundCalls  []uintptr
	AttachCalls         []AttachCall
	ClientToScreenCalls []image.Point
	ResponsiveCalls     []uintptr

	Log *CallLog
}

type AttachCall struct {
	From   uint32
	To     uint32
	Attach bool
}

func NewMockWindowAPI() *MockWindowAPI {
	return &MockWindowAPI{
		Titles:              make(map[string]uintptr),
		Threads:             make(map[uintptr]uint32),
		CurrentThread:       1,
		WindowList:          []interfaces.WindowInfo{},
		ClientRects:         make(map[uintptr]image.Rectangle),
		ScreenOrigins:       make(map[uintptr]image.Point),
		SetForegroundErrs:   []error{},
		FindWindowCalls:     []string{},
		SetForegroundCalls:  []uintptr{},
		AttachCalls:         []AttachCall{},
		ClientToScreenCalls: []image.Point{},
		ResponsiveCalls:     []uintptr{},
	}
}

func (m *MockWindowAPI) FindWindow(title string) (uintptr, error) {
	m.FindWindowCalls = append(m.FindWindowCalls, title)
	m.Log.add("FindWindow " + title)

	if m.FindWindowErr != nil {
		return 0, m.FindWindowErr
	}

	if m.FindWindowMisses > 0 {
		m.FindWindowMisses--
		return 0, nil
	}

	return m.Titles[title], nil
}

func (m *MockWindowAPI) Windows() ([]interfaces.WindowInfo, error) {
	return m.WindowList, nil
}

func (m *MockWindowAPI) WindowThreadID(hwnd uintptr) (uint32, error) {
	if m.ThreadErr != nil {
		return 0, m.ThreadErr
	}

	return m.Threads[hwnd], nil
}

func (m *MockWindowAPI) CurrentThreadID() uint32 {
	return m.CurrentThread
}

func (m *MockWindowAPI) ForegroundWindow() uintptr {
	return m.Foreground
}

func (m *MockWindowAPI) SetForegroundWindow(hwnd uintptr) error {
	m.SetForegroundCalls = append(m.SetForegroundCalls, hwnd)
	m.Log.add(fmt.Sprintf("SetForeground %#x", hwnd))

	if len(m.SetForegroundErrs) > 0 {
		err := m.SetForegroundErrs[0]
		m.SetForegroundErrs = m.SetForegroundErrs[1:]

		if err != nil {
			return err
		}
	}

	m.Foreground = hwnd
	return nil
}

func (m *MockWindowAPI) AttachThreadInput(from, to uint32, attach bool) error {
	m.AttachCalls = append(m.AttachCalls, AttachCall{From: from, To: to, Attach: attach})
	m.Log.add(fmt.Sprintf("AttachThreadInput %d %d %t", from, to, attach))
	return m.AttachErr
}

func (m *MockWindowAPI) ClientRect(hwnd uintptr) (image.Rectangle, error) {
	if m.ClientRectErr != nil {
		return image.Rectangle{}, m.ClientRectErr
	}

	return m.ClientRects[hwnd], nil
}

func (m *MockWindowAPI) ClientToScreen(hwnd uintptr, p image.Point) (image.Point, error) {
	m.ClientToScreenCalls = append(m.ClientToScreenCalls, p)
	return p.Add(m.ScreenOrigins[hwnd]), nil
}

func (m *MockWindowAPI) IsResponsive(hwnd uintptr, _ time.Duration) bool {
	m.ResponsiveCalls = append(m.ResponsiveCalls, hwnd)

	if len(m.Responses) == 0 {
		return true
	}

	ok := m.Responses[0]
	m.Responses = m.Responses[1:]
	return ok
}

// Helper methods for fluent configuration
func (m *MockWindowAPI) WithWindow(title string, hwnd uintptr, thread uint32) *MockWindowAPI {
	m.Titles[title] = hwnd
	m.Threads[hwnd] = thread
	return m
}

func (m *MockWindowAPI) WithForeground(hwnd uintptr) *MockWindowAPI {
	m.Foreground = hwnd
	return m
}

func (m *MockWindowAPI) WithCurrentThread(tid uint32) *MockWindowAPI {
	m.CurrentThread = tid
	return m
}

// WithSetForegroundErrors queues results for the next SetForegroundWindow calls; nil means success
func (m *MockWindowAPI) WithSetForegroundErrors(errs ...error) *MockWindowAPI {
	m.SetForegroundErrs = append(m.SetForegroundErrs, errs...)
	return m
}

func (m *MockWindowAPI) WithAttachError(err error) *MockWindowAPI {
	m.AttachErr = err
	return m
}

func (m *MockWindowAPI) WithClientArea(hwnd uintptr, width, height int, origin image.Point) *MockWindowAPI {
	m.ClientRects[hwnd] = image.Rect(0, 0, width, height)
	m.ScreenOrigins[hwnd] = origin
	return m
}

func (m *MockWindowAPI) WithListedWindow(hwnd uintptr, title string, pid uint32) *MockWindowAPI {
	m.WindowList = append(m.WindowList, interfaces.WindowInfo{Handle: hwnd, Title: title, PID: pid})
	return m
}

func (m *MockWindowAPI) WithCallLog(log *CallLog) *MockWindowAPI {
	m.Log = log
	return m
}

// WithResponses queues IsResponsive results
func (m *MockWindowAPI) WithResponses(responses ...bool) *MockWindowAPI {
	m.Responses = append(m.Responses, responses...)
	return m
}

// WithFindWindowMisses makes the next n FindWindow calls report no window
func (m *MockWindowAPI) WithFindWindowMisses(n int) *MockWindowAPI {
	m.FindWindowMisses = n
	return m
}
