//go:build windows

package windows

import (
	"github.com/Norgate-AV/procctl/internal/logger"
)

// Client provides methods for interacting with Windows APIs
// It composes specialized managers for different categories of functionality
type Client struct {
	log      logger.LoggerInterface
	Process  *processManager
	Window   *windowManager
	Keyboard *keyboardInjector
}

// NewClient creates a new Windows API client
func NewClient(log logger.LoggerInterface) *Client {
	return &Client{
		log:      log,
		Process:  newProcessManager(log),
		Window:   newWindowManager(log),
		Keyboard: newKeyboardInjector(log),
	}
}
