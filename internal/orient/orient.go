// Package orient implements the orientation resolver: for a monitor's
// current orientation, pick a source image and a clockwise rotation
// that maps it into that orientation, following spec.md §4.O.
package orient

import (
	"errors"

	"github.com/mosaicwall/mosaicwall/internal/model"
)

// ErrNoSource is returned when no usable source image can be found for
// the monitor's orientation, whether or not auto-rotate is enabled.
var ErrNoSource = errors.New("orient: no usable source for orientation")

// Resolution is the chosen source path and the clockwise rotation (one
// of 0, 90, 180, 270) that must be applied to it to match the monitor's
// current orientation.
type Resolution struct {
	Path     string
	Rotation int
}

// scanOrder is the fixed fallback order named in spec.md §4.O rule 4.
var scanOrder = [4]model.Orientation{model.Orient0, model.Orient90, model.Orient180, model.Orient270}

func degrees(o model.Orientation) int {
	return int(o) * 90
}

// Resolve picks a source path and rotation for the given orientation and
// wallpaper configuration.
//
//  1. files[orientation] set -> (path, 0).
//  2. else if !autoRotate -> ErrNoSource.
//  3. else files[(orientation+180)%360] set -> (path, rotation).
//  4. else first set entry in fixed order 0,90,180,270 -> (path, rotation).
//  5. else -> ErrNoSource.
func Resolve(current model.Orientation, w model.Wallpaper) (Resolution, error) {
	if !current.Valid() {
		return Resolution{}, ErrNoSource
	}

	if path := w.Files[current]; path != "" {
		return Resolution{Path: path, Rotation: 0}, nil
	}

	if !w.AutoRotate {
		return Resolution{}, ErrNoSource
	}

	flipped := model.Orientation((int(current) + 2) % 4)
	if path := w.Files[flipped]; path != "" {
		return Resolution{Path: path, Rotation: rotationFor(current, flipped)}, nil
	}

	for _, candidate := range scanOrder {
		if path := w.Files[candidate]; path != "" {
			return Resolution{Path: path, Rotation: rotationFor(current, candidate)}, nil
		}
	}

	return Resolution{}, ErrNoSource
}

// rotationFor computes the clockwise rotation that maps a source image
// native to chosen's orientation slot onto the monitor's current
// orientation: spec.md §4.O defines
// rotation = (360 - (chosen_orientation_deg - current_orientation_deg)) mod 360,
// where "chosen" is the monitor's target (current) orientation and
// "current" is the degree of the slot the source file came from.
func rotationFor(current, chosen model.Orientation) int {
	delta := degrees(current) - degrees(chosen)
	rotation := (360 - delta) % 360
	if rotation < 0 {
		rotation += 360
	}
	return rotation
}
