package process

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/Norgate-AV/procctl/internal/interfaces"
)

// Windows lists the visible top-level windows owned by the process. It is
// meant for picking a window title, not for focus; Focus always looks the
// window up by title.
func (h *Handle) Windows() ([]interfaces.WindowInfo, error) {
	all, err := h.deps.Windows.Windows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	return lo.Filter(all, func(w interfaces.WindowInfo, _ int) bool {
		return w.PID == h.identity.PID
	}), nil
}
