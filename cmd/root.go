package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/procctl/internal/config"
	"github.com/Norgate-AV/procctl/internal/logger"
	"github.com/Norgate-AV/procctl/internal/process"
	"github.com/Norgate-AV/procctl/internal/version"
)

var (
	verbose     bool
	noColor     bool
	showLogs    bool
	elevate     bool
	processName string
	windowTitle string
	logDir      string

	cfg config.Config
	log logger.LoggerInterface = logger.NewNoOpLogger()

	// Swapped out in tests
	osExit          = os.Exit
	newDependencies = process.NewDefaultDependencies
	killByName      = process.KillByName
)

var RootCmd = &cobra.Command{
	Use:   "procctl",
	Short: "procctl - Read memory from and send input to a running process",
	Long: `procctl attaches to a running process by module name, follows pointer
chains through its memory and drives its window with synthetic key presses.

The target is chosen with --process and --window, or with the
PROCCTL_PROCESS and PROCCTL_WINDOW environment variables.`,
	Version:            version.GetVersion(),
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runRoot,
}

func init() {
	// Set custom version template to show full version info
	RootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored console output")
	RootCmd.PersistentFlags().StringVarP(&processName, "process", "p", "", "module name (or path fragment) of the target process")
	RootCmd.PersistentFlags().StringVarP(&windowTitle, "window", "w", "", "exact title of the target window")
	RootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for the log file")
	RootCmd.PersistentFlags().BoolVar(&elevate, "elevate", false, "relaunch as administrator when not elevated")
	RootCmd.Flags().BoolVar(&showLogs, "logs", false, "print the log file and exit")

	RootCmd.AddCommand(findCmd, readCmd, sendCmd, focusCmd, captureCmd, killCmd, waitCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg = config.Load().Merge(config.Config{
		ProcessName: processName,
		WindowTitle: windowTitle,
		LogDir:      logDir,
		Verbose:     verbose,
	})

	l, err := logger.NewLogger(logger.LoggerOptions{
		Verbose: cfg.Verbose,
		NoColor: noColor,
		LogDir:  cfg.LogDir,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("error initializing logger: %w", err)
	}

	log = l
	log.Debug("Starting", "command", cmd.CommandPath(), "version", version.GetFullVersion())

	if elevate && !isElevated() {
		log.Info("Relaunching as administrator")

		if err := relaunchAsAdmin(); err != nil {
			return fmt.Errorf("error relaunching as admin: %w", err)
		}

		// The elevated instance carries on
		log.Close()
		osExit(0)
	}

	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	log.Close()
	log = logger.NewNoOpLogger()
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !showLogs {
		return cmd.Help()
	}

	f, err := os.Open(log.GetLogPath())
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(cmd.OutOrStdout(), f); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	osExit(0)
	return nil
}

// attach validates the target and returns a handle to it. The caller must
// Close the handle.
func attach(needWindow bool) (*process.Handle, *process.Dependencies, error) {
	if err := cfg.ValidateTarget(needWindow); err != nil {
		return nil, nil, err
	}

	deps, err := newDependencies(log)
	if err != nil {
		return nil, nil, err
	}

	h, err := process.FindByName(log, deps, cfg.ProcessName, cfg.WindowTitle)
	if err != nil {
		return nil, nil, err
	}

	return h, deps, nil
}

// closeHandle closes h and logs a failure
func closeHandle(h *process.Handle) {
	if err := h.Close(); err != nil {
		log.Debug("Close failed", "error", err)
	}
}

// warnIfNotElevated logs a warning when input injection may be blocked by UIPI
func warnIfNotElevated(deps *process.Dependencies) {
	if deps.Privileges.IsElevated() {
		log.Debug("Running with administrator privileges")
		return
	}

	log.Warn("Not running as administrator, input to elevated windows will be dropped")
}
