//go:build windows

package cmd

import "github.com/Norgate-AV/procctl/internal/windows"

var (
	isElevated      = windows.IsElevated
	relaunchAsAdmin = windows.RelaunchAsAdmin
)
