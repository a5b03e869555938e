package canvas

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicwall/mosaicwall/internal/geom"
	"github.com/mosaicwall/mosaicwall/internal/render"
)

func solidTile(w, h int, c color.Color) render.Tile {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return render.Tile{Image: img}
}

func TestComposeSizesToDesktop(t *testing.T) {
	desktop := geom.Rect{Width: 100, Height: 50}
	out := Compose(desktop, color.Black, nil)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())
}

func TestComposePlacesTileAtVirtPos(t *testing.T) {
	desktop := geom.Rect{Width: 200, Height: 100}
	tile := solidTile(50, 50, color.NRGBA{R: 255, A: 255})
	out := Compose(desktop, color.Black, []Placement{
		{Index: 0, VirtPos: geom.Rect{X: 100, Y: 0}, Tile: tile},
	})

	r, _, _, _ := out.At(110, 10).RGBA()
	assert.NotEqual(t, uint32(0), r)

	r, _, _, _ = out.At(10, 10).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestComposeLaterIndexWinsOverlap(t *testing.T) {
	desktop := geom.Rect{Width: 100, Height: 100}
	red := solidTile(80, 80, color.NRGBA{R: 255, A: 255})
	blue := solidTile(80, 80, color.NRGBA{B: 255, A: 255})

	out := Compose(desktop, color.Black, []Placement{
		{Index: 1, VirtPos: geom.Rect{}, Tile: blue},
		{Index: 0, VirtPos: geom.Rect{}, Tile: red},
	})

	_, _, b, _ := out.At(10, 10).RGBA()
	assert.NotEqual(t, uint32(0), b)
}

func TestEncodeUnknownFormat(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	err := Encode(&bytes.Buffer{}, img, "tiff")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncodePNGRoundTrips(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, "png"))
	assert.NotZero(t, buf.Len())
}

func TestWriteAtomicProducesFinalFileOnly(t *testing.T) {
	dir := t.TempDir()
	final := filepath.Join(dir, "wallpaper_generated.png")
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	require.NoError(t, WriteAtomic(final, img, "png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "wallpaper_generated.png", entries[0].Name())
}
