package process

import (
	"fmt"
	"image"
	"log/slog"
)

// CaptureOffsetY moves the top edge of a capture region this many pixels
// above the vertical center of the client area
const CaptureOffsetY = 22

// ClientSize returns the width and height of the target window's client area
func (h *Handle) ClientSize() (int, int, error) {
	hwnd, err := h.WindowHandle()
	if err != nil {
		return 0, 0, err
	}

	rect, err := h.deps.Windows.ClientRect(hwnd)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get client area of %q: %w", h.windowTitle, err)
	}

	return rect.Dx(), rect.Dy(), nil
}

// CaptureRect returns, in screen coordinates, a width x height region that is
// horizontally centered in the client area and starts CaptureOffsetY pixels
// above its vertical center
func (h *Handle) CaptureRect(width, height int) (image.Rectangle, error) {
	if width <= 0 || height <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid capture size %dx%d", width, height)
	}

	cw, ch, err := h.ClientSize()
	if err != nil {
		return image.Rectangle{}, err
	}

	topLeft := image.Pt(cw/2-width/2, ch/2-CaptureOffsetY)
	bottomRight := topLeft.Add(image.Pt(width, height))

	hwnd, err := h.WindowHandle()
	if err != nil {
		return image.Rectangle{}, err
	}

	min, err := h.deps.Windows.ClientToScreen(hwnd, topLeft)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("failed to convert client point %v: %w", topLeft, err)
	}

	max, err := h.deps.Windows.ClientToScreen(hwnd, bottomRight)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("failed to convert client point %v: %w", bottomRight, err)
	}

	return image.Rectangle{Min: min, Max: max}, nil
}

// CaptureRegion grabs the region computed by CaptureRect across all monitors
func (h *Handle) CaptureRegion(width, height int) (*image.RGBA, error) {
	rect, err := h.CaptureRect(width, height)
	if err != nil {
		return nil, err
	}

	img, err := h.deps.Grabber.Grab(rect, true)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %v: %w", rect, err)
	}

	h.log.Debug("Captured region", slog.String("rect", rect.String()))
	return img, nil
}
