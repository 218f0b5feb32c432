//go:build windows

package windows

import (
	"log/slog"
	"unsafe"

	"github.com/pkg/errors"
	xwindows "golang.org/x/sys/windows"

	"github.com/Norgate-AV/procctl/internal/interfaces"
	"github.com/Norgate-AV/procctl/internal/logger"
)

const (
	initialProcessCapacity = 1024
	initialModuleCapacity  = 256
)

// processManager implements the ProcessAPI interface
type processManager struct {
	log logger.LoggerInterface
}

// newProcessManager creates a new process manager
func newProcessManager(log logger.LoggerInterface) *processManager {
	return &processManager{log: log}
}

// EnumProcesses returns the ids of all running processes. The buffer grows
// until the system reports fewer ids than it can hold.
func (p *processManager) EnumProcesses() ([]uint32, error) {
	pids := make([]uint32, initialProcessCapacity)

	for {
		var written uint32
		if err := xwindows.EnumProcesses(pids, &written); err != nil {
			return nil, errors.Wrap(err, "EnumProcesses")
		}

		n := int(written) / int(unsafe.Sizeof(pids[0]))
		if n < len(pids) {
			return pids[:n], nil
		}

		pids = make([]uint32, len(pids)*2)
	}
}

// OpenProcess opens pid with the given rights
func (p *processManager) OpenProcess(pid uint32, rights interfaces.ProcessRights) (uintptr, error) {
	handle, err := xwindows.OpenProcess(uint32(rights), false, pid)
	if err != nil {
		return 0, errors.Wrapf(err, "OpenProcess(%d, %#x)", pid, uint32(rights))
	}

	return uintptr(handle), nil
}

// EnumModules lists the modules loaded by the process with their file paths.
// Modules whose path cannot be read are left out.
func (p *processManager) EnumModules(handle uintptr) ([]interfaces.Module, error) {
	h := xwindows.Handle(handle)
	modules := make([]xwindows.Handle, initialModuleCapacity)
	entrySize := uint32(unsafe.Sizeof(modules[0]))

	for {
		var needed uint32
		if err := xwindows.EnumProcessModules(h, &modules[0], uint32(len(modules))*entrySize, &needed); err != nil {
			return nil, errors.Wrap(err, "EnumProcessModules")
		}

		n := int(needed / entrySize)
		if n <= len(modules) {
			modules = modules[:n]
			break
		}

		modules = make([]xwindows.Handle, n)
	}

	result := make([]interfaces.Module, 0, len(modules))
	buf := make([]uint16, xwindows.MAX_LONG_PATH)

	for _, m := range modules {
		if err := xwindows.GetModuleFileNameEx(h, m, &buf[0], uint32(len(buf))); err != nil {
			p.log.Debug("GetModuleFileNameEx failed",
				slog.Uint64("module", uint64(m)),
				slog.Any("error", err),
			)
			continue
		}

		result = append(result, interfaces.Module{
			Base: uintptr(m),
			Path: xwindows.UTF16ToString(buf),
		})
	}

	return result, nil
}

// ReadMemory reads size bytes at address. The returned slice is shorter
// than size when the read stopped early.
func (p *processManager) ReadMemory(handle, address uintptr, size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Errorf("invalid read size %d", size)
	}

	buf := make([]byte, size)
	var read uintptr

	err := xwindows.ReadProcessMemory(xwindows.Handle(handle), address, &buf[0], uintptr(size), &read)
	if err != nil {
		return buf[:read], errors.Wrapf(err, "ReadProcessMemory(%#x, %d)", address, size)
	}

	return buf[:read], nil
}

// CloseHandle closes a handle returned by OpenProcess
func (p *processManager) CloseHandle(handle uintptr) error {
	if err := xwindows.CloseHandle(xwindows.Handle(handle)); err != nil {
		return errors.Wrap(err, "CloseHandle")
	}

	return nil
}
