//go:build !windows

package cmd

import (
	"errors"
	"os"
)

var (
	isElevated      = func() bool { return os.Geteuid() == 0 }
	relaunchAsAdmin = func() error {
		return errors.New("relaunching as administrator is only supported on Windows")
	}
)
