package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicwall/mosaicwall/internal/model"
)

func writeTestPNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestMonitorInactiveYieldsNoOutput(t *testing.T) {
	_, err := Monitor(model.Monitor{Active: false})
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestMonitorBadOrientation(t *testing.T) {
	_, err := Monitor(model.Monitor{Active: true, Info: model.Info{Orientation: model.OrientUnknown}})
	assert.ErrorIs(t, err, ErrBadOrientation)
}

func TestMonitorNoSourceYieldsNoOutput(t *testing.T) {
	m := model.Monitor{
		Active: true,
		Info:   model.Info{Width: 100, Height: 100, Orientation: model.Orient0},
	}
	_, err := Monitor(m)
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestMonitorRendersExactSize(t *testing.T) {
	src := writeTestPNG(t, 1920, 1080, color.NRGBA{R: 255, A: 255})
	m := model.Monitor{
		Active: true,
		Info:   model.Info{Width: 1920, Height: 1080, Orientation: model.Orient0},
		Wallpaper: model.Wallpaper{
			Style: model.StyleFitNoCut,
			Files: [4]string{model.Orient0: src},
		},
	}
	tile, err := Monitor(m)
	require.NoError(t, err)
	assert.Equal(t, 1920, tile.Image.Bounds().Dx())
	assert.Equal(t, 1080, tile.Image.Bounds().Dy())
}

func TestMonitorLoadFailedForMissingFile(t *testing.T) {
	m := model.Monitor{
		Active: true,
		Info:   model.Info{Width: 100, Height: 100, Orientation: model.Orient0},
		Wallpaper: model.Wallpaper{
			Style: model.StyleStretch,
			Files: [4]string{model.Orient0: "/does/not/exist.png"},
		},
	}
	_, err := Monitor(m)
	var loadErr *LoadFailed
	assert.ErrorAs(t, err, &loadErr)
}

func TestMonitorRotatesSourceForAutoRotate(t *testing.T) {
	// S4: landscape source onto a portrait monitor.
	src := writeTestPNG(t, 1920, 1080, color.NRGBA{G: 255, A: 255})
	m := model.Monitor{
		Active: true,
		Info:   model.Info{Width: 1080, Height: 1920, Orientation: model.Orient90},
		Wallpaper: model.Wallpaper{
			AutoRotate: true,
			Style:      model.StyleStretch,
			Files:      [4]string{model.Orient0: src},
		},
	}
	tile, err := Monitor(m)
	require.NoError(t, err)
	assert.Equal(t, 1080, tile.Image.Bounds().Dx())
	assert.Equal(t, 1920, tile.Image.Bounds().Dy())
}
