package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/procctl/internal/process"
	"github.com/Norgate-AV/procctl/internal/timeouts"
)

var waitTimeout time.Duration

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait until the target window exists and responds",
	Long: `Wait until the target window has been created and answers window
messages reliably. Useful right after launching the target, before sending
keys to it.`,
	Args: cobra.NoArgs,
	RunE: runWait,
}

func init() {
	waitCmd.Flags().DurationVar(&waitTimeout, "timeout", timeouts.WindowWaitTimeout, "give up after this long")
}

func runWait(cmd *cobra.Command, _ []string) error {
	h, _, err := attach(true)
	if err != nil {
		return err
	}
	defer closeHandle(h)

	ctx, cancel := context.WithTimeout(cmd.Context(), waitTimeout)
	defer cancel()

	log.Info("Waiting for window", "title", h.WindowTitle(), "timeout", waitTimeout)

	hwnd, err := h.WaitForWindow(ctx, process.DefaultWaitOptions())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "window: %#x %q\n", hwnd, h.WindowTitle())
	return nil
}
