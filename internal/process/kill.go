package process

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/lo"
	psproc "github.com/shirou/gopsutil/v3/process"

	"github.com/Norgate-AV/procctl/internal/logger"
)

// RunningProcess is a process that can be terminated
type RunningProcess interface {
	Name() (string, error)
	Kill() error
}

// processLister returns a snapshot of the running processes
type processLister func() ([]RunningProcess, error)

func listProcesses() ([]RunningProcess, error) {
	procs, err := psproc.Processes()
	if err != nil {
		return nil, err
	}

	return lo.Map(procs, func(p *psproc.Process, _ int) RunningProcess {
		return p
	}), nil
}

// KillByName terminates every running process whose executable name equals
// one of names, compared case-insensitively. Processes that cannot be
// terminated for lack of rights or that exited in the meantime are skipped.
// Every matching process is attempted; other failures are returned together.
func KillByName(log logger.LoggerInterface, names []string) error {
	return killByName(log, listProcesses, names)
}

func killByName(log logger.LoggerInterface, list processLister, names []string) error {
	wanted := lo.SliceToMap(names, func(name string) (string, struct{}) {
		return fold(name), struct{}{}
	})

	if len(wanted) == 0 {
		return nil
	}

	procs, err := list()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	var errs []error

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// Gone before it could be inspected
			continue
		}

		if _, ok := wanted[fold(name)]; !ok {
			continue
		}

		err = p.Kill()
		switch {
		case err == nil:
			log.Info("Killed process", slog.String("name", name))
		case isBenignKillError(err):
			log.Debug("Could not kill process, ignoring",
				slog.String("name", name),
				slog.Any("error", err),
			)
		default:
			errs = append(errs, fmt.Errorf("failed to kill %q: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// isBenignKillError reports whether err means access was denied or the
// process was already gone
func isBenignKillError(err error) bool {
	return errors.Is(err, os.ErrPermission) ||
		errors.Is(err, os.ErrProcessDone) ||
		errors.Is(err, psproc.ErrorProcessNotRunning) ||
		isProcessGone(err)
}
