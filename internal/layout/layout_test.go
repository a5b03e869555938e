package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicwall/mosaicwall/internal/geom"
	"github.com/mosaicwall/mosaicwall/internal/model"
)

func activeMonitor(x, y, w, h int) model.Monitor {
	return model.Monitor{
		Active: true,
		Info:   model.Info{X: x, Y: y, Width: w, Height: h},
	}
}

func TestComputeVirtualDesktopSkipsInactive(t *testing.T) {
	monitors := []model.Monitor{
		activeMonitor(0, 0, 1920, 1080),
		{Active: false, Info: model.Info{X: 5000, Y: 5000, Width: 100, Height: 100}},
	}
	got := ComputeVirtualDesktop(monitors)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, got)
}

func TestRebaseEmptyLayout(t *testing.T) {
	_, err := Rebase(nil, geom.Rect{})
	assert.ErrorIs(t, err, ErrEmptyLayout)
}

func TestRebaseSideBySide(t *testing.T) {
	// S2
	monitors := []model.Monitor{
		activeMonitor(0, 0, 1920, 1080),
		activeMonitor(1920, 0, 2560, 1440),
	}
	desktop := ComputeVirtualDesktop(monitors)
	rebased, err := Rebase(monitors, desktop)
	require.NoError(t, err)

	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 4480, Height: 1440}, rebased)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, monitors[0].VirtPos)
	assert.Equal(t, geom.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}, monitors[1].VirtPos)
}

func TestRebaseNegativeX(t *testing.T) {
	// S3
	monitors := []model.Monitor{
		activeMonitor(-1280, 0, 1280, 1024),
		activeMonitor(0, 0, 1920, 1080),
	}
	desktop := ComputeVirtualDesktop(monitors)
	rebased, err := Rebase(monitors, desktop)
	require.NoError(t, err)

	assert.Equal(t, 3200, rebased.Width)
	assert.Equal(t, 0, monitors[0].VirtPos.X)
	assert.Equal(t, 1280, monitors[1].VirtPos.X)

	// Invariant 1 & 2 from spec.md §8.
	for _, m := range monitors {
		assert.GreaterOrEqual(t, m.VirtPos.X, 0)
		assert.GreaterOrEqual(t, m.VirtPos.Y, 0)
		assert.LessOrEqual(t, m.VirtPos.X+m.Info.Width, rebased.Width)
		assert.LessOrEqual(t, m.VirtPos.Y+m.Info.Height, rebased.Height)
	}
}
