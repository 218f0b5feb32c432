package testutil

import (
	"errors"
	"image"
)

// MockPixelGrabber implements interfaces.PixelGrabber
type MockPixelGrabber struct {
	Err   error
	Grabs []GrabCall
}

type GrabCall struct {
	Rect       image.Rectangle
	AllScreens bool
}

func NewMockPixelGrabber() *MockPixelGrabber {
	return &MockPixelGrabber{Grabs: []GrabCall{}}
}

func (m *MockPixelGrabber) Grab(rect image.Rectangle, allScreens bool) (*image.RGBA, error) {
	m.Grabs = append(m.Grabs, GrabCall{Rect: rect, AllScreens: allScreens})

	if m.Err != nil {
		return nil, m.Err
	}

	return image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy())), nil
}

func (m *MockPixelGrabber) WithError(err error) *MockPixelGrabber {
	m.Err = err
	return m
}

// MockPrivileges implements interfaces.Privileges
type MockPrivileges struct {
	Elevated bool
}

func NewMockPrivileges() *MockPrivileges {
	return &MockPrivileges{Elevated: true}
}

func (m *MockPrivileges) IsElevated() bool {
	return m.Elevated
}

func (m *MockPrivileges) WithElevated(elevated bool) *MockPrivileges {
	m.Elevated = elevated
	return m
}

// MockRunningProcess is a process that KillByName can see and terminate
type MockRunningProcess struct {
	ProcName string
	NameErr  error
	KillErr  error
	Kills    int
}

func NewMockRunningProcess(name string) *MockRunningProcess {
	return &MockRunningProcess{ProcName: name}
}

func (m *MockRunningProcess) Name() (string, error) {
	if m.NameErr != nil {
		return "", m.NameErr
	}

	return m.ProcName, nil
}

func (m *MockRunningProcess) Kill() error {
	m.Kills++
	return m.KillErr
}

func (m *MockRunningProcess) WithKillError(err error) *MockRunningProcess {
	m.KillErr = err
	return m
}

func (m *MockRunningProcess) WithNameError(err error) *MockRunningProcess {
	m.NameErr = err
	return m
}

// ErrMock is a generic failure for scripted errors
var ErrMock = errors.New("mock failure")
