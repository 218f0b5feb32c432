package process

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Norgate-AV/procctl/internal/interfaces"
	"github.com/Norgate-AV/procctl/internal/logger"
)

// InvalidProcessID is the sentinel id (-1 as a DWORD) that never names a real
// process and is skipped during enumeration
const InvalidProcessID = ^uint32(0)

// candidatePIDs yields every enumerated id except the sentinel
func candidatePIDs(pids []uint32) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for _, pid := range pids {
			if pid == InvalidProcessID {
				continue
			}

			if !yield(pid) {
				return
			}
		}
	}
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// FindByName returns a Handle for the first process that has loaded a module
// whose path contains processName, compared case-insensitively.
// windowTitle is only stored; the window is looked up when first needed.
func FindByName(log logger.LoggerInterface, deps *Dependencies, processName, windowTitle string) (*Handle, error) {
	pids, err := deps.Processes.EnumProcesses()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate processes: %w", err)
	}

	needle := fold(processName)

	for pid := range candidatePIDs(pids) {
		module, ok := matchModule(log, deps.Processes, pid, needle)
		if !ok {
			continue
		}

		log.Debug("Found process",
			slog.String("name", processName),
			slog.Uint64("pid", uint64(pid)),
			slog.String("module", module.Path),
			slog.String("base", fmt.Sprintf("%#x", module.Base)),
		)

		identity := Identity{PID: pid, Name: processName, BaseAddress: module.Base}
		return NewHandle(log, deps, identity, windowTitle), nil
	}

	return nil, &NotFoundError{Kind: "process", Key: processName}
}

// matchModule opens pid for discovery and returns its first module whose path
// contains needle. The discovery handle is always closed before returning.
func matchModule(log logger.LoggerInterface, api interfaces.ProcessAPI, pid uint32, needle string) (interfaces.Module, bool) {
	handle, err := api.OpenProcess(pid, interfaces.AccessQueryRead)
	if err != nil {
		return interfaces.Module{}, false
	}

	defer func() {
		if err := api.CloseHandle(handle); err != nil {
			log.Debug("Failed to close discovery handle",
				slog.Uint64("pid", uint64(pid)),
				slog.Any("error", err),
			)
		}
	}()

	modules, err := api.EnumModules(handle)
	if err != nil {
		log.Debug("Could not enumerate modules",
			slog.Uint64("pid", uint64(pid)),
			slog.Any("error", err),
		)
		return interfaces.Module{}, false
	}

	for _, m := range modules {
		if strings.Contains(fold(m.Path), needle) {
			return m, true
		}
	}

	return interfaces.Module{}, false
}
