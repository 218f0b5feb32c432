package testutil

import (
	"fmt"
	"strings"
	"time"
)

// MockKeyboardAPI implements interfaces.KeyboardAPI and records every key event
type MockKeyboardAPI struct {
	VirtualKeys map[string]uint16
	ScanCodes   map[uint16]uint32
	PressErr    error
	PressErrs   []error
	PostErr     error

	Presses []KeyPress
	Sent    []WindowMessage
	Posted  []WindowMessage

	Log *CallLog
}

type KeyPress struct {
	Key     string
	Spacing time.Duration
	Precise bool
}

type WindowMessage struct {
	Hwnd   uintptr
	Msg    uint32
	WParam uintptr
	LParam uintptr
}

func NewMockKeyboardAPI() *MockKeyboardAPI {
	return &MockKeyboardAPI{
		VirtualKeys: make(map[string]uint16),
		ScanCodes:   make(map[uint16]uint32),
		Presses:     []KeyPress{},
		Sent:        []WindowMessage{},
		Posted:      []WindowMessage{},
	}
}

func (m *MockKeyboardAPI) PressAndRelease(key string, spacing time.Duration, precise bool) error {
	m.Presses = append(m.Presses, KeyPress{Key: key, Spacing: spacing, Precise: precise})
	m.Log.add("Press " + key)

	if len(m.PressErrs) > 0 {
		err := m.PressErrs[0]
		m.PressErrs = m.PressErrs[1:]
		return err
	}

	return m.PressErr
}

// VirtualKey uses the configured codes and falls back to the upper-case
// ASCII code of a single character, like VkKeyScan on a US layout
func (m *MockKeyboardAPI) VirtualKey(key string) (uint16, error) {
	if vk, ok := m.VirtualKeys[key]; ok {
		return vk, nil
	}

	if len(key) == 1 {
		return uint16(strings.ToUpper(key)[0]), nil
	}

	return 0, fmt.Errorf("unknown key %q", key)
}

func (m *MockKeyboardAPI) ScanCode(vk uint16) uint32 {
	return m.ScanCodes[vk]
}

func (m *MockKeyboardAPI) SendMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	m.Sent = append(m.Sent, WindowMessage{Hwnd: hwnd, Msg: msg, WParam: wParam, LParam: lParam})
	m.Log.add(fmt.Sprintf("SendMessage %#x", msg))
	return 0
}

func (m *MockKeyboardAPI) PostMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) error {
	m.Posted = append(m.Posted, WindowMessage{Hwnd: hwnd, Msg: msg, WParam: wParam, LParam: lParam})
	m.Log.add(fmt.Sprintf("PostMessage %#x", msg))
	return m.PostErr
}

// PressedKeys returns the keys of all presses in order
func (m *MockKeyboardAPI) PressedKeys() []string {
	keys := make([]string, len(m.Presses))
	for i, p := range m.Presses {
		keys[i] = p.Key
	}

	return keys
}

// Helper methods for fluent configuration
func (m *MockKeyboardAPI) WithVirtualKey(key string, vk uint16) *MockKeyboardAPI {
	m.VirtualKeys[key] = vk
	return m
}

func (m *MockKeyboardAPI) WithScanCode(vk uint16, scan uint32) *MockKeyboardAPI {
	m.ScanCodes[vk] = scan
	return m
}

func (m *MockKeyboardAPI) WithPressError(err error) *MockKeyboardAPI {
	m.PressErr = err
	return m
}

// WithPressErrors queues results for the next PressAndRelease calls; nil means success
func (m *MockKeyboardAPI) WithPressErrors(errs ...error) *MockKeyboardAPI {
	m.PressErrs = append(m.PressErrs, errs...)
	return m
}

func (m *MockKeyboardAPI) WithPostError(err error) *MockKeyboardAPI {
	m.PostErr = err
	return m
}

func (m *MockKeyboardAPI) WithCallLog(log *CallLog) *MockKeyboardAPI {
	m.Log = log
	return m
}
