package cmd

import (
	"github.com/spf13/cobra"
)

var killCmd = &cobra.Command{
	Use:   "kill <names...>",
	Short: "Terminate every process with one of the given executable names",
	Long: `Terminate every running process whose executable name matches one of the
arguments, ignoring case. Processes that cannot be terminated for lack of
rights, or that already exited, are skipped.`,
	Example: `  procctl kill game.exe launcher.exe`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return killByName(log, args)
	},
}
