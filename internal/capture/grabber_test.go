package capture

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/procctl/internal/logger"
	"github.com/Norgate-AV/procctl/internal/testutil"
)

func newTestGrabber(displays ...image.Rectangle) (*Grabber, *[]image.Rectangle) {
	var captured []image.Rectangle

	g := NewGrabber(logger.NewNoOpLogger())
	g.displays = func() []image.Rectangle { return displays }
	g.capture = func(r image.Rectangle) (*image.RGBA, error) {
		captured = append(captured, r)
		return image.NewRGBA(r), nil
	}

	return g, &captured
}

func TestGrab_AllScreensSpansMonitors(t *testing.T) {
	g, captured := newTestGrabber(
		image.Rect(0, 0, 1920, 1080),
		image.Rect(1920, 0, 3840, 1080),
	)

	rect := image.Rect(1800, 100, 2000, 200)
	img, err := g.Grab(rect, true)
	require.NoError(t, err)

	assert.Equal(t, rect, img.Bounds())
	assert.Equal(t, []image.Rectangle{rect}, *captured)
}

func TestGrab_PrimaryOnlyClips(t *testing.T) {
	g, captured := newTestGrabber(
		image.Rect(0, 0, 1920, 1080),
		image.Rect(1920, 0, 3840, 1080),
	)

	_, err := g.Grab(image.Rect(1800, 100, 2000, 200), false)
	require.NoError(t, err)

	assert.Equal(t, []image.Rectangle{image.Rect(1800, 100, 1920, 200)}, *captured)
}

func TestGrab_NegativeMonitorCoordinates(t *testing.T) {
	g, captured := newTestGrabber(
		image.Rect(0, 0, 1920, 1080),
		image.Rect(-1280, 0, 0, 1024),
	)

	rect := image.Rect(-200, 10, -100, 60)
	_, err := g.Grab(rect, true)
	require.NoError(t, err)
	assert.Equal(t, []image.Rectangle{rect}, *captured)
}

func TestGrab_Errors(t *testing.T) {
	t.Run("outside desktop", func(t *testing.T) {
		g, captured := newTestGrabber(image.Rect(0, 0, 100, 100))

		_, err := g.Grab(image.Rect(200, 200, 300, 300), true)
		assert.ErrorContains(t, err, "outside the desktop")
		assert.Empty(t, *captured)
	})

	t.Run("no displays", func(t *testing.T) {
		g, _ := newTestGrabber()

		_, err := g.Grab(image.Rect(0, 0, 10, 10), true)
		assert.ErrorContains(t, err, "no active displays")
	})

	t.Run("capture failure", func(t *testing.T) {
		g, _ := newTestGrabber(image.Rect(0, 0, 100, 100))
		g.capture = func(image.Rectangle) (*image.RGBA, error) { return nil, testutil.ErrMock }

		_, err := g.Grab(image.Rect(0, 0, 10, 10), true)
		assert.ErrorIs(t, err, testutil.ErrMock)
	})
}
