//go:build !windows

package process

import (
	"errors"

	"github.com/Norgate-AV/procctl/internal/logger"
)

// ErrUnsupportedPlatform is returned outside Windows
var ErrUnsupportedPlatform = errors.New("attaching to processes is only supported on Windows")

// NewDefaultDependencies fails outside Windows. KillByName still works.
func NewDefaultDependencies(_ logger.LoggerInterface) (*Dependencies, error) {
	return nil, ErrUnsupportedPlatform
}
