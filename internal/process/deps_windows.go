//go:build windows

package process

import (
	"github.com/Norgate-AV/procctl/internal/capture"
	"github.com/Norgate-AV/procctl/internal/logger"
	"github.com/Norgate-AV/procctl/internal/windows"
)

// NewDefaultDependencies wires the Win32 implementations
func NewDefaultDependencies(log logger.LoggerInterface) (*Dependencies, error) {
	api := windows.NewWindowsAPI(log)

	return &Dependencies{
		Processes:  api,
		Windows:    api,
		Keyboard:   api,
		Grabber:    capture.NewGrabber(log),
		Privileges: api,
	}, nil
}
