// Package style implements the five fit contracts of spec.md §4.S: given
// a source image and a monitor-sized target, produce an image of
// exactly that target size. All resampling goes through
// github.com/disintegration/imaging, the same resize/rotate library the
// teacher repo uses for every image transform.
package style

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"github.com/mosaicwall/mosaicwall/internal/model"
)

// Failed wraps any underlying image operation failure with the style
// name, per spec.md §4.S's "Failure mode".
type Failed struct {
	Style string
	Err   error
}

func (e *Failed) Error() string {
	return fmt.Sprintf("style: %s failed: %v", e.Style, e.Err)
}

func (e *Failed) Unwrap() error { return e.Err }

// Apply renders src into an image of exactly (targetW, targetH) under
// the given style, padding or cropping with bg as spec.md §4.S dictates.
func Apply(style model.Style, src image.Image, targetW, targetH int, bg color.Color) (image.Image, error) {
	if targetW <= 0 || targetH <= 0 {
		return nil, &Failed{Style: styleName(style), Err: fmt.Errorf("non-positive target size %dx%d", targetW, targetH)}
	}

	var out image.Image
	switch style {
	case model.StyleFitNoCut:
		out = fitNoCut(src, targetW, targetH, bg)
	case model.StyleFitEdgeCut:
		out = fitEdgeCut(src, targetW, targetH)
	case model.StyleStretch:
		out = imaging.Resize(src, targetW, targetH, imaging.Lanczos)
	case model.StyleTile:
		out = tile(src, targetW, targetH, bg)
	case model.StyleCenter:
		out = center(src, targetW, targetH, bg)
	default:
		return nil, &Failed{Style: styleName(style), Err: fmt.Errorf("unknown style %d", style)}
	}

	if out == nil {
		return nil, &Failed{Style: styleName(style), Err: fmt.Errorf("render produced no image")}
	}
	return out, nil
}

func styleName(s model.Style) string {
	switch s {
	case model.StyleFitNoCut:
		return "fit_no_cut"
	case model.StyleFitEdgeCut:
		return "fit_edge_cut"
	case model.StyleStretch:
		return "stretch"
	case model.StyleTile:
		return "tile"
	case model.StyleCenter:
		return "center"
	default:
		return "unknown"
	}
}

// scaledSize returns the integer size an image of (sw,sh) becomes when
// scaled by scale, rounded to the nearest pixel.
func scaledSize(sw, sh int, scale float64) (int, int) {
	w := int(math.Round(float64(sw) * scale))
	h := int(math.Round(float64(sh) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// centeredOffset returns the top-left offset of a (innerLen) span padded
// or cropped to (outerLen), biased one pixel toward the top-left on odd
// deltas, per spec.md §4.S.
func centeredOffset(outerLen, innerLen int) int {
	return (outerLen - innerLen) / 2
}

// newCanvas allocates a background-filled canvas of (w, h).
func newCanvas(w, h int, bg color.Color) draw.Image {
	return imaging.New(w, h, bg)
}

// pasteOver composites src onto dst with src's opaque pixels winning and
// dst showing through where src is transparent (straight over-composition,
// matching spec.md §4.C's paste rule and GraphicsMagick's OverCompositeOp
// that the original tool uses for the same operation).
func pasteOver(dst draw.Image, src image.Image, x, y int) {
	b := src.Bounds()
	target := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(dst, target, src, b.Min, draw.Over)
}

// fitNoCut scales src to fit entirely within (targetW, targetH) while
// preserving aspect ratio, padding the shorter axis with bg, centered.
func fitNoCut(src image.Image, targetW, targetH int, bg color.Color) image.Image {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()

	scale := math.Min(float64(targetW)/float64(sw), float64(targetH)/float64(sh))
	newW, newH := scaledSize(sw, sh, scale)
	if newW > targetW {
		newW = targetW
	}
	if newH > targetH {
		newH = targetH
	}

	resized := imaging.Resize(src, newW, newH, imaging.Lanczos)

	if newW == targetW && newH == targetH {
		return resized
	}

	canvas := newCanvas(targetW, targetH, bg)
	ox := centeredOffset(targetW, newW)
	oy := centeredOffset(targetH, newH)
	pasteOver(canvas, resized, ox, oy)
	return canvas
}

// fitEdgeCut scales src to fully cover (targetW, targetH), cropping the
// overflowing axis centered.
func fitEdgeCut(src image.Image, targetW, targetH int) image.Image {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()

	scale := math.Max(float64(targetW)/float64(sw), float64(targetH)/float64(sh))
	newW, newH := scaledSize(sw, sh, scale)
	if newW < targetW {
		newW = targetW
	}
	if newH < targetH {
		newH = targetH
	}

	resized := imaging.Resize(src, newW, newH, imaging.Lanczos)

	if newW == targetW && newH == targetH {
		return resized
	}

	cropX := centeredOffset(newW, targetW)
	cropY := centeredOffset(newH, targetH)
	cropRect := image.Rect(cropX, cropY, cropX+targetW, cropY+targetH)
	return imaging.Crop(resized, cropRect)
}

// tile implements spec.md §4.S's TILE contract, including the
// codified (not centered) crop-from-origin branch the spec keeps as an
// open question in spec.md §9.
func tile(src image.Image, targetW, targetH int, bg color.Color) image.Image {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()

	if sw >= targetW && sh >= targetH {
		return imaging.Crop(src, image.Rect(0, 0, targetW, targetH))
	}

	canvas := newCanvas(targetW, targetH, bg)
	for y := 0; y < targetH; y += sh {
		for x := 0; x < targetW; x += sw {
			pasteOver(canvas, src, x, y)
		}
	}
	return canvas
}

// center implements spec.md §4.S's CENTER contract.
func center(src image.Image, targetW, targetH int, bg color.Color) image.Image {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()

	if sw > targetW && sh > targetH {
		cropX := centeredOffset(sw, targetW)
		cropY := centeredOffset(sh, targetH)
		return imaging.Crop(src, image.Rect(cropX, cropY, cropX+targetW, cropY+targetH))
	}

	canvas := newCanvas(targetW, targetH, bg)
	ox := centeredOffset(targetW, sw)
	oy := centeredOffset(targetH, sh)
	pasteOver(canvas, src, ox, oy)
	return canvas
}
