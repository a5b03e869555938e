// Package geom provides the rectangle-union and axis-overlap primitives
// the layout engine folds over the active monitor set.
package geom

// Line is a 1-D interval. S and E are unordered; callers normalize with
// Min/Max as needed.
type Line struct {
	S, E int
}

// Min returns the smaller of S and E.
func (l Line) Min() int {
	if l.S < l.E {
		return l.S
	}
	return l.E
}

// Max returns the larger of S and E.
func (l Line) Max() int {
	if l.S > l.E {
		return l.S
	}
	return l.E
}

// Covers reports whether p lies within [min(S,E), max(S,E)], endpoints
// inclusive.
func (l Line) Covers(p int) bool {
	return l.Min() <= p && p <= l.Max()
}

// AxisCoversPoint reports whether p falls within line's interval,
// endpoints inclusive. It is the free-function form of Line.Covers.
func AxisCoversPoint(line Line, p int) bool {
	return line.Covers(p)
}

// Rect is an axis-aligned rectangle. X/Y may be negative before layout
// rebases the virtual desktop to 0-based coordinates; Width/Height are
// always non-negative.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rectangle has zero area on both axes, the
// sentinel starting value for a union fold.
func (r Rect) Empty() bool {
	return r.Width == 0 && r.Height == 0
}

// axisUnion implements the union rule of spec.md §4.G for a single axis.
// cStart/cLen describe the current interval, aStart/aLen the addend.
// It returns the new start and new length for that axis.
func axisUnion(cStart, cLen, aStart, aLen int) (newStart, newLen int) {
	c := Line{S: cStart, E: cStart + cLen}
	a := Line{S: aStart, E: aStart + aLen}

	var delta int
	switch {
	case a.Covers(cStart):
		if a.Covers(cStart + cLen) {
			delta = cLen
		} else {
			delta = abs(a.Max() - cStart)
		}
	case c.Covers(aStart):
		if c.Covers(aStart + aLen) {
			delta = aLen
		} else {
			delta = abs(c.Max() - aStart)
		}
	default:
		delta = 0
	}

	newLen = cLen + aLen - delta
	newStart = min(cStart, aStart)
	return newStart, newLen
}

// UnionRect grows current to contain addend under the per-axis rule in
// spec.md §4.G: width and height are unioned independently using the
// overlap of their respective intervals. If current is empty, addend is
// adopted verbatim.
func UnionRect(current, addend Rect) Rect {
	if current.Empty() {
		return addend
	}

	x, w := axisUnion(current.X, current.Width, addend.X, addend.Width)
	y, h := axisUnion(current.Y, current.Height, addend.Y, addend.Height)

	return Rect{X: x, Y: y, Width: w, Height: h}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
