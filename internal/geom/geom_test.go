package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisCoversPoint(t *testing.T) {
	l := Line{S: 10, E: 0}
	assert.True(t, AxisCoversPoint(l, 0))
	assert.True(t, AxisCoversPoint(l, 10))
	assert.True(t, AxisCoversPoint(l, 5))
	assert.False(t, AxisCoversPoint(l, 11))
	assert.False(t, AxisCoversPoint(l, -1))
}

func TestUnionRectAdoptsAddendWhenEmpty(t *testing.T) {
	got := UnionRect(Rect{}, Rect{X: 5, Y: 5, Width: 100, Height: 50})
	assert.Equal(t, Rect{X: 5, Y: 5, Width: 100, Height: 50}, got)
}

func TestUnionRectSideBySide(t *testing.T) {
	// S2: M1{0,0,1920x1080} next to M2{1920,0,2560x1440}
	m1 := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	m2 := Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}

	got := UnionRect(m1, m2)
	require.Equal(t, 0, got.X)
	require.Equal(t, 0, got.Y)
	assert.Equal(t, 4480, got.Width)
	assert.Equal(t, 1440, got.Height)
}

func TestUnionRectNegativeX(t *testing.T) {
	// S3: M1 to the left of the primary, negative x.
	m1 := Rect{X: -1280, Y: 0, Width: 1280, Height: 1024}
	m2 := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	got := UnionRect(m1, m2)
	assert.Equal(t, -1280, got.X)
	assert.Equal(t, 3200, got.Width)
	assert.Equal(t, 1080, got.Height)
}

func TestUnionRectDisjointDegradesToClippedJoin(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 100, Y: 100, Width: 10, Height: 10}

	got := UnionRect(a, b)
	// Disjoint on both axes: delta=0 on each axis, widths/heights just add.
	assert.Equal(t, 20, got.Width)
	assert.Equal(t, 20, got.Height)
}

func TestUnionRectCommutativeOnDisjoint(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	b := Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}

	ab := UnionRect(a, b)
	ba := UnionRect(b, a)
	assert.Equal(t, ab, ba)
}

func TestUnionRectIdempotentUnderSelfUnion(t *testing.T) {
	a := Rect{X: 10, Y: 20, Width: 1920, Height: 1080}
	got := UnionRect(a, a)
	assert.Equal(t, a, got)
}
