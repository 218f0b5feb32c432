package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Locate the target process and list its windows",
	Args:  cobra.NoArgs,
	RunE:  runFind,
}

func runFind(cmd *cobra.Command, _ []string) error {
	h, _, err := attach(false)
	if err != nil {
		return err
	}
	defer closeHandle(h)

	id := h.Identity()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "pid:  %d\n", id.PID)
	fmt.Fprintf(out, "base: %#x\n", id.BaseAddress)

	windows, err := h.Windows()
	if err != nil {
		log.Warn("Could not list windows", "error", err)
		return nil
	}

	for _, w := range windows {
		fmt.Fprintf(out, "window: %#x %q\n", w.Handle, w.Title)
	}

	return nil
}
