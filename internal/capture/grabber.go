// Package capture grabs screen regions.
package capture

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/kbinani/screenshot"

	"github.com/Norgate-AV/procctl/internal/logger"
)

// Grabber captures screen pixels with github.com/kbinani/screenshot
type Grabber struct {
	log logger.LoggerInterface

	// displays and capture are swapped out in tests
	displays func() []image.Rectangle
	capture  func(image.Rectangle) (*image.RGBA, error)
}

// NewGrabber creates a Grabber for the attached displays
func NewGrabber(log logger.LoggerInterface) *Grabber {
	return &Grabber{
		log:      log,
		displays: activeDisplays,
		capture:  screenshot.CaptureRect,
	}
}

func activeDisplays() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)

	for i := range n {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}

	return bounds
}

// Grab captures rect, which is in virtual desktop coordinates. Unless
// allScreens is set the rectangle is clipped to the primary display.
func (g *Grabber) Grab(rect image.Rectangle, allScreens bool) (*image.RGBA, error) {
	rect = rect.Canon()

	displays := g.displays()
	if len(displays) == 0 {
		return nil, fmt.Errorf("no active displays")
	}

	var desktop image.Rectangle
	if allScreens {
		for _, d := range displays {
			desktop = desktop.Union(d)
		}
	} else {
		desktop = displays[0]
	}

	clipped := rect.Intersect(desktop)
	if clipped.Empty() {
		return nil, fmt.Errorf("capture region %v is outside the desktop %v", rect, desktop)
	}

	img, err := g.capture(clipped)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %v: %w", clipped, err)
	}

	g.log.Debug("Grabbed screen region",
		slog.String("rect", clipped.String()),
		slog.Bool("all_screens", allScreens),
	)

	return img, nil
}
