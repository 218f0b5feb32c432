package testutil

import (
	"errors"
	"fmt"

	"github.com/Norgate-AV/procctl/internal/interfaces"
)

// ErrUnmapped is returned when reading an address the mock holds no bytes for
var ErrUnmapped = errors.New("address is not mapped")

// MockProcessAPI implements interfaces.ProcessAPI over scripted processes and memory
type MockProcessAPI struct {
	PIDs        []uint32
	EnumErr     error
	Modules     map[uint32][]interfaces.Module
	ModulesErr  map[uint32]error
	OpenErrors  map[uint32]error
	Memory      map[uintptr][]byte
	ReadErrors  map[uintptr]error
	CloseResult error

	OpenCalls  []OpenCall
	CloseCalls []uintptr
	ReadCalls  []ReadCall

	nextHandle uintptr
	handles    map[uintptr]uint32
}

type OpenCall struct {
	PID    uint32
	Rights interfaces.ProcessRights
	Handle uintptr
}

type ReadCall struct {
	Handle  uintptr
	Address uintptr
	Size    int
}

func NewMockProcessAPI() *MockProcessAPI {
	return &MockProcessAPI{
		PIDs:       []uint32{},
		Modules:    make(map[uint32][]interfaces.Module),
		ModulesErr: make(map[uint32]error),
		OpenErrors: make(map[uint32]error),
		Memory:     make(map[uintptr][]byte),
		ReadErrors: make(map[uintptr]error),
		OpenCalls:  []OpenCall{},
		CloseCalls: []uintptr{},
		ReadCalls:  []ReadCall{},
		nextHandle: 0x100,
		handles:    make(map[uintptr]uint32),
	}
}

func (m *MockProcessAPI) EnumProcesses() ([]uint32, error) {
	if m.EnumErr != nil {
		return nil, m.EnumErr
	}

	return m.PIDs, nil
}

func (m *MockProcessAPI) OpenProcess(pid uint32, rights interfaces.ProcessRights) (uintptr, error) {
	if err := m.OpenErrors[pid]; err != nil {
		m.OpenCalls = append(m.OpenCalls, OpenCall{PID: pid, Rights: rights})
		return 0, err
	}

	m.nextHandle += 4
	h := m.nextHandle
	m.handles[h] = pid
	m.OpenCalls = append(m.OpenCalls, OpenCall{PID: pid, Rights: rights, Handle: h})

	return h, nil
}

func (m *MockProcessAPI) EnumModules(handle uintptr) ([]interfaces.Module, error) {
	pid, ok := m.handles[handle]
	if !ok {
		return nil, fmt.Errorf("invalid handle %#x", handle)
	}

	if err := m.ModulesErr[pid]; err != nil {
		return nil, err
	}

	return m.Modules[pid], nil
}

func (m *MockProcessAPI) ReadMemory(handle, address uintptr, size int) ([]byte, error) {
	m.ReadCalls = append(m.ReadCalls, ReadCall{Handle: handle, Address: address, Size: size})

	if _, ok := m.handles[handle]; !ok {
		return nil, fmt.Errorf("invalid handle %#x", handle)
	}

	if err := m.ReadErrors[address]; err != nil {
		return nil, err
	}

	data, ok := m.Memory[address]
	if !ok {
		return nil, ErrUnmapped
	}

	if len(data) < size {
		return data, nil
	}

	return data[:size], nil
}

func (m *MockProcessAPI) CloseHandle(handle uintptr) error {
	m.CloseCalls = append(m.CloseCalls, handle)
	delete(m.handles, handle)
	return m.CloseResult
}

// OpenHandles returns the number of handles opened and not yet closed
func (m *MockProcessAPI) OpenHandles() int {
	return len(m.handles)
}

// OpenCallsWith returns the successful opens made with rights
func (m *MockProcessAPI) OpenCallsWith(rights interfaces.ProcessRights) []OpenCall {
	var calls []OpenCall
	for _, c := range m.OpenCalls {
		if c.Rights == rights && c.Handle != 0 {
			calls = append(calls, c)
		}
	}

	return calls
}

// Helper methods for fluent configuration
func (m *MockProcessAPI) WithProcess(pid uint32, modules ...interfaces.Module) *MockProcessAPI {
	m.PIDs = append(m.PIDs, pid)
	m.Modules[pid] = modules
	return m
}

func (m *MockProcessAPI) WithEnumError(err error) *MockProcessAPI {
	m.EnumErr = err
	return m
}

func (m *MockProcessAPI) WithOpenError(pid uint32, err error) *MockProcessAPI {
	m.OpenErrors[pid] = err
	return m
}

func (m *MockProcessAPI) WithModulesError(pid uint32, err error) *MockProcessAPI {
	m.ModulesErr[pid] = err
	return m
}

// WithValue stores value at address as a little-endian integer of width bytes
func (m *MockProcessAPI) WithValue(address uintptr, value uint64, width int) *MockProcessAPI {
	m.Memory[address] = LE(value, width)
	return m
}

func (m *MockProcessAPI) WithBytes(address uintptr, data []byte) *MockProcessAPI {
	m.Memory[address] = data
	return m
}

func (m *MockProcessAPI) WithReadError(address uintptr, err error) *MockProcessAPI {
	m.ReadErrors[address] = err
	return m
}

func (m *MockProcessAPI) WithCloseResult(err error) *MockProcessAPI {
	m.CloseResult = err
	return m
}
