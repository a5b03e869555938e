// Package canvas implements the Canvas Compositor of spec.md §4.C: paste
// every monitor's rendered tile onto a single virtual-desktop-sized
// image at its VirtPos, then encode and atomically write the result.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/jsummers/gobmp"

	"github.com/mosaicwall/mosaicwall/internal/geom"
	"github.com/mosaicwall/mosaicwall/internal/render"
)

// ErrUnknownFormat is returned by Encode for an output format other than
// "bmp", "png", or "jpg"/"jpeg".
var ErrUnknownFormat = errors.New("canvas: unknown output format")

// Placement pairs a monitor's finished tile with the position on the
// virtual desktop it must be pasted at.
type Placement struct {
	Index   int
	VirtPos geom.Rect
	Tile    render.Tile
}

// Compose allocates a desktop-sized canvas filled with bg and pastes
// every placement's tile at its VirtPos, in ascending Index order, so a
// later monitor's tile wins any overlap with an earlier one — spec.md
// §4.C's paste-order rule. Straight over-composition is used for each
// paste, matching the original tool's OverCompositeOp.
func Compose(desktop geom.Rect, bg color.Color, placements []Placement) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, desktop.Width, desktop.Height))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	ordered := make([]Placement, len(placements))
	copy(ordered, placements)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	for _, p := range ordered {
		if p.Tile.Image == nil {
			continue
		}
		b := p.Tile.Image.Bounds()
		target := image.Rect(p.VirtPos.X, p.VirtPos.Y, p.VirtPos.X+b.Dx(), p.VirtPos.Y+b.Dy())
		draw.Draw(out, target, p.Tile.Image, b.Min, draw.Over)
	}

	return out
}

// Encode writes img in the named format ("bmp", "png", "jpg"/"jpeg") to w.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "bmp":
		return gobmp.Encode(w, img)
	case "png":
		return png.Encode(w, img)
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteAtomic encodes img in format and writes it to finalPath, first
// writing to a uuid-named temp file in the same directory and renaming
// it into place, so a reader never observes a partially written file —
// the same temp-then-rename pattern the teacher's cache store uses.
func WriteAtomic(finalPath string, img image.Image, format string) error {
	dir := filepath.Dir(finalPath)
	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("canvas: create temp file: %w", err)
	}

	if err := Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("canvas: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("canvas: close temp file: %w", err)
	}

	if err := os.Rename(tmp, finalPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("canvas: rename into place: %w", err)
	}
	return nil
}
