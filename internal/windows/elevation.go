//go:build windows

package windows

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/lxn/win"
	"github.com/pkg/errors"
	xwindows "golang.org/x/sys/windows"
)

// IsElevated returns whether the current process is running with administrator privileges
func IsElevated() bool {
	return xwindows.GetCurrentProcessToken().IsElevated()
}

// RelaunchAsAdmin starts the current executable again through the UAC
// prompt with the same arguments
func RelaunchAsAdmin() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	// Check if running via 'go run' (exe will be in temp dir)
	if strings.Contains(exe, "go-build") {
		return fmt.Errorf("cannot relaunch when run via 'go run', please build first")
	}

	args := make([]string, 0, len(os.Args)-1)
	for _, a := range os.Args[1:] {
		args = append(args, xwindows.EscapeArg(a))
	}

	verb, _ := syscall.UTF16PtrFromString("runas")
	file, err := syscall.UTF16PtrFromString(exe)
	if err != nil {
		return err
	}

	params, err := syscall.UTF16PtrFromString(strings.Join(args, " "))
	if err != nil {
		return err
	}

	if !win.ShellExecute(0, verb, file, params, nil, win.SW_SHOWNORMAL) {
		return errors.New("ShellExecute runas failed")
	}

	return nil
}
