// Package model holds the Monitor/Wallpaper data types shared across the
// layout, orientation, style, render, and canvas packages.
package model

import "github.com/mosaicwall/mosaicwall/internal/geom"

// Orientation is a monitor's clockwise rotation from landscape.
type Orientation int

const (
	Orient0 Orientation = iota
	Orient90
	Orient180
	Orient270
	OrientUnknown
)

// numOrientations is the count of the four addressable rotation slots
// (Orient0..Orient270); OrientUnknown is not an index into Files.
const numOrientations = 4

// Valid reports whether o addresses one of the four rotation slots.
func (o Orientation) Valid() bool {
	return o >= Orient0 && o < numOrientations
}

// Style names one of the five fit contracts in spec.md §4.S.
type Style int

const (
	StyleFitNoCut Style = iota
	StyleFitEdgeCut
	StyleStretch
	StyleTile
	StyleCenter
)

// ParseStyle maps the config file's style strings to a Style.
func ParseStyle(s string) (Style, bool) {
	switch s {
	case "fit_no_cut":
		return StyleFitNoCut, true
	case "fit_edge_cut":
		return StyleFitEdgeCut, true
	case "stretch":
		return StyleStretch, true
	case "tile":
		return StyleTile, true
	case "center":
		return StyleCenter, true
	default:
		return 0, false
	}
}

// Info is the monitor descriptor returned by the platform's display
// enumeration collaborator.
type Info struct {
	X, Y          int
	Width, Height int
	Orientation   Orientation
	IsPrimary     bool
}

// Wallpaper is the per-monitor rendering configuration loaded from the
// JSON config file.
type Wallpaper struct {
	AutoRotate bool
	Style      Style
	BgColor    string
	// Files maps Orient0..Orient270 to an optional source image path.
	// A zero-value (empty string) slot means "no source configured".
	Files [numOrientations]string
}

// Monitor is one entry in the active monitor set for a single update
// cycle. VirtPos is populated by the layout package during rebasing.
type Monitor struct {
	Active    bool
	Info      Info
	VirtPos   geom.Rect // only X, Y are meaningful here
	Wallpaper Wallpaper
}

// Rect returns the monitor's placement rectangle in platform (possibly
// signed) coordinates.
func (m Monitor) Rect() geom.Rect {
	return geom.Rect{X: m.Info.X, Y: m.Info.Y, Width: m.Info.Width, Height: m.Info.Height}
}
