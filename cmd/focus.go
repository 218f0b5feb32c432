package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/procctl/internal/timeouts"
)

var focusHold time.Duration

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring the target window to the foreground",
	Long: `Bring the target window to the foreground. With --hold the window keeps
the focus for that long and the previous window is then restored.`,
	Args: cobra.NoArgs,
	RunE: runFocus,
}

func init() {
	focusCmd.Flags().DurationVar(&focusHold, "hold", 0, "restore the previous window after this long (e.g. "+timeouts.FocusHoldDelay.String()+")")
}

func runFocus(_ *cobra.Command, _ []string) error {
	h, deps, err := attach(true)
	if err != nil {
		return err
	}
	defer closeHandle(h)

	warnIfNotElevated(deps)

	if err := h.Focus(); err != nil {
		return err
	}

	log.Info("Window focused", "title", h.WindowTitle())

	if focusHold > 0 {
		time.Sleep(focusHold)
		h.FocusBackToLastWindow()
	}

	return nil
}
