//go:build windows

package process

import (
	"errors"

	xwindows "golang.org/x/sys/windows"
)

// OpenProcess fails with ERROR_INVALID_PARAMETER once the pid no longer exists
func isProcessGone(err error) bool {
	return errors.Is(err, xwindows.ERROR_INVALID_PARAMETER)
}
