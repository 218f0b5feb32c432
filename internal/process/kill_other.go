//go:build !windows

package process

import (
	"errors"
	"syscall"
)

func isProcessGone(err error) bool {
	return errors.Is(err, syscall.ESRCH)
}
