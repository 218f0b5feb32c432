package cmd

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"
)

var (
	captureWidth  int
	captureHeight int
	captureOut    string
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a region centered in the target window",
	Args:  cobra.NoArgs,
	RunE:  runCapture,
}

func init() {
	captureCmd.Flags().IntVar(&captureWidth, "width", 200, "width of the region in pixels")
	captureCmd.Flags().IntVar(&captureHeight, "height", 60, "height of the region in pixels")
	captureCmd.Flags().StringVarP(&captureOut, "out", "o", "capture.png", "output PNG file")
}

func runCapture(cmd *cobra.Command, _ []string) error {
	h, _, err := attach(true)
	if err != nil {
		return err
	}
	defer closeHandle(h)

	img, err := h.CaptureRegion(captureWidth, captureHeight)
	if err != nil {
		return err
	}

	f, err := os.Create(captureOut)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", captureOut, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("error writing %s: %w", captureOut, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "saved %dx%d capture to %s\n", img.Bounds().Dx(), img.Bounds().Dy(), captureOut)
	return nil
}
