package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/procctl/internal/process"
	"github.com/Norgate-AV/procctl/internal/timeouts"
)

var (
	sendDirect      bool
	sendNoFocus     bool
	sendNoFocusBack bool
	sendInter       time.Duration
	sendIntra       time.Duration
)

var sendCmd = &cobra.Command{
	Use:   "send <keys...>",
	Short: "Send key presses to the target window",
	Long: `Send key presses to the target window, one argument per key.

Keys are names such as "a", "enter", "f5" or "alt". By default the window is
focused first and the previous window gets the focus back afterwards.
With --direct the keys are posted straight to the window's message queue,
which works without focus; "ctrl+s" or "s+ctrl" sends s with ctrl held.`,
	Example: `  procctl send -p game.exe -w "Game" f5
  procctl send -p game.exe -w "Game" --direct ctrl+s`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().BoolVar(&sendDirect, "direct", false, "post key messages to the window instead of synthesizing input")
	sendCmd.Flags().BoolVar(&sendNoFocus, "no-focus", false, "do not focus the window first")
	sendCmd.Flags().BoolVar(&sendNoFocusBack, "no-focus-back", false, "leave the target window focused")
	sendCmd.Flags().DurationVar(&sendInter, "inter", timeouts.InterKeyDelay, "delay between keys")
	sendCmd.Flags().DurationVar(&sendIntra, "intra", timeouts.KeystrokeDelay, "hold time between press and release")
}

func runSend(_ *cobra.Command, args []string) error {
	h, deps, err := attach(true)
	if err != nil {
		return err
	}
	defer closeHandle(h)

	warnIfNotElevated(deps)

	opts := process.SendOptions{
		InterKeyDelay:  sendInter,
		IntraKeyDelay:  sendIntra,
		Focus:          !sendNoFocus,
		FocusBack:      !sendNoFocusBack,
		DirectToWindow: sendDirect,
	}

	if err := h.SendInput(args, opts); err != nil {
		return err
	}

	log.Info("Sent keys", "count", len(args))
	return nil
}
