// Package layout computes the virtual-desktop bounding rectangle and
// rebases monitor positions into non-negative canvas coordinates.
package layout

import (
	"errors"

	"github.com/mosaicwall/mosaicwall/internal/geom"
	"github.com/mosaicwall/mosaicwall/internal/model"
)

// ErrEmptyLayout is returned by Rebase when the virtual desktop has no
// area, i.e. there were no active monitors to fold into it.
var ErrEmptyLayout = errors.New("layout: empty virtual desktop")

// ComputeVirtualDesktop folds geom.UnionRect over every active monitor's
// placement rectangle, starting from an empty rectangle. Inactive
// monitors (including mirror-driver entries, which the platform always
// reports inactive) do not contribute.
func ComputeVirtualDesktop(monitors []model.Monitor) geom.Rect {
	var desktop geom.Rect
	for _, m := range monitors {
		if !m.Active {
			continue
		}
		desktop = geom.UnionRect(desktop, m.Rect())
	}
	return desktop
}

// Rebase re-bases every active monitor's VirtPos into the desktop's
// coordinate space (desktop.X/Y become the new origin) and returns the
// rebased desktop rectangle with X=Y=0. It mutates the Monitor slice in
// place. Returns ErrEmptyLayout if desktop has zero area on either axis.
func Rebase(monitors []model.Monitor, desktop geom.Rect) (geom.Rect, error) {
	if desktop.Width == 0 || desktop.Height == 0 {
		return geom.Rect{}, ErrEmptyLayout
	}

	for i := range monitors {
		m := &monitors[i]
		if !m.Active {
			continue
		}
		m.VirtPos = geom.Rect{
			X:      m.Info.X - desktop.X,
			Y:      m.Info.Y - desktop.Y,
			Width:  m.Info.Width,
			Height: m.Info.Height,
		}
	}

	desktop.X, desktop.Y = 0, 0
	return desktop, nil
}
