package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/procctl/internal/process"
	"github.com/Norgate-AV/procctl/internal/timeouts"
)

var (
	readWidth    string
	readWatch    bool
	readInterval time.Duration
	readRelative bool
)

var readCmd = &cobra.Command{
	Use:   "read <address> [offsets...]",
	Short: "Read a value, optionally following a pointer chain",
	Long: `Read an unsigned value from the target process.

The address and every offset are hexadecimal ("0x1A0" or "1a0", a leading
"-" subtracts). With offsets, each step reads a pointer at the current
address and adds the next offset to it. Put "--" before the address when
an offset is negative so it is not taken for a flag.`,
	Example: `  procctl read -p game.exe 0x7FF6A2C01000
  procctl read -p game.exe --relative 0x10 0x18 0x4 --width dword
  procctl read -p game.exe -- 0x7FF6A2C01000 0x18 -0x8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().StringVar(&readWidth, "width", "word", "read width: byte, dword, qword or word (native)")
	readCmd.Flags().BoolVar(&readWatch, "watch", false, "keep reading until interrupted")
	readCmd.Flags().DurationVar(&readInterval, "interval", timeouts.WatchInterval, "delay between reads with --watch")
	readCmd.Flags().BoolVarP(&readRelative, "relative", "r", false, "treat the address as an offset from the module base")
}

// parseReadArgs turns the positional arguments into a start address and chain
func parseReadArgs(args []string) (uintptr, process.OffsetChain, error) {
	base, err := process.ParseHexOffset(args[0])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid address: %w", err)
	}

	offsets := make([]any, len(args)-1)
	for i, a := range args[1:] {
		offsets[i] = a
	}

	chain, err := process.ParseOffsets(offsets...)
	if err != nil {
		return 0, nil, err
	}

	return uintptr(base), chain, nil
}

func runRead(cmd *cobra.Command, args []string) error {
	width, err := process.ParseWidth(strings.ToLower(readWidth))
	if err != nil {
		return err
	}

	address, chain, err := parseReadArgs(args)
	if err != nil {
		return err
	}

	h, _, err := attach(false)
	if err != nil {
		return err
	}
	defer closeHandle(h)

	if readRelative {
		address += h.Identity().BaseAddress
	}

	out := cmd.OutOrStdout()

	if !readWatch {
		result, err := h.ReadMemory(address, chain, width)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%#x = %d (%#x)\n", result.Address, result.Value, result.Value)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return watch(ctx, readInterval, func() error {
		result, err := h.ReadMemory(address, chain, width)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %#x = %d\n", time.Now().Format(time.TimeOnly), result.Address, result.Value)
		return nil
	})
}

// watch calls fn every interval until ctx is done or fn fails
func watch(ctx context.Context, interval time.Duration, fn func() error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := fn(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
