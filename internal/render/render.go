// Package render implements the per-monitor renderer of spec.md §4.R:
// load a monitor's source image, apply background/rotation, and style
// it to the monitor's target size.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"

	"github.com/mosaicwall/mosaicwall/internal/model"
	"github.com/mosaicwall/mosaicwall/internal/orient"
	"github.com/mosaicwall/mosaicwall/internal/style"
)

// ErrNoOutput signals that a monitor produced no tile this cycle: it is
// inactive, has no usable source, or is not an actionable failure —
// spec.md §4.R steps 1 and 3.
var ErrNoOutput = errors.New("render: monitor produced no tile")

// ErrBadOrientation is returned when a monitor reports an orientation
// outside the four addressable rotation slots.
var ErrBadOrientation = errors.New("render: unrecognized orientation")

// LoadFailed wraps an I/O or decode error for a specific source path.
type LoadFailed struct {
	Path string
	Err  error
}

func (e *LoadFailed) Error() string { return fmt.Sprintf("render: loading %q: %v", e.Path, e.Err) }
func (e *LoadFailed) Unwrap() error { return e.Err }

// Tile is a finished, monitor-sized image ready to be pasted onto the
// canvas at its owning monitor's VirtPos.
type Tile struct {
	Image image.Image
}

// Monitor renders one monitor's tile, implementing the seven steps of
// spec.md §4.R. It returns ErrNoOutput (not an error condition worth
// aborting the cycle over) when the monitor is inactive or has no
// source; other returned errors are scoped to this monitor only.
func Monitor(m model.Monitor) (Tile, error) {
	if !m.Active {
		return Tile{}, ErrNoOutput
	}
	if !m.Info.Orientation.Valid() {
		return Tile{}, ErrBadOrientation
	}

	resolved, err := orient.Resolve(m.Info.Orientation, m.Wallpaper)
	if err != nil {
		return Tile{}, ErrNoOutput
	}

	src, err := loadImage(resolved.Path)
	if err != nil {
		return Tile{}, &LoadFailed{Path: resolved.Path, Err: err}
	}

	bg := style.ParseBgColor(m.Wallpaper.BgColor)

	if resolved.Rotation != 0 {
		src = rotateClockwise(src, resolved.Rotation, bg)
	}

	out, err := style.Apply(m.Wallpaper.Style, src, m.Info.Width, m.Info.Height, bg)
	if err != nil {
		return Tile{}, err
	}

	return Tile{Image: out}, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// rotateClockwise rotates img clockwise by degrees (one of 0, 90, 180,
// 270), filling any exposed background with bg. imaging.Rotate rotates
// counterclockwise, so the angle is inverted.
func rotateClockwise(img image.Image, degrees int, bg color.Color) image.Image {
	ccw := (360 - degrees%360) % 360
	return imaging.Rotate(img, float64(ccw), bg)
}
