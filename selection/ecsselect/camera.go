package ecsselect

import (
	"github.com/plus3/marquee/selection"
)

// Camera maps world cells to screen pixels.
type Camera struct {
	X, Y     float32
	Zoom     float32
	CellSize float32
}

// NewCamera returns a camera at the world origin with no zoom.
func NewCamera(cellSize float32) *Camera {
	return &Camera{Zoom: 1, CellSize: cellSize}
}

func (c *Camera) scale() float32 {
	return c.Zoom * c.CellSize
}

// WorldToScreen projects a world anchor to screen pixels. It fails when the camera
// has no scale, since nothing can be placed on screen then.
func (c *Camera) WorldToScreen(v selection.Vec3) (selection.Point, bool) {
	s := c.scale()
	if s <= 0 {
		return selection.Point{}, false
	}
	return selection.Pt(
		float64((float32(v.X)-c.X)*s),
		float64((float32(v.Y)-c.Y)*s),
	), true
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(p selection.Point) (Position, bool) {
	s := c.scale()
	if s <= 0 {
		return Position{}, false
	}
	return Position{
		X: float32(p.X)/s + c.X,
		Y: float32(p.Y)/s + c.Y,
	}, true
}
