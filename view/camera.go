// Package view holds the presentation state that does not depend on the
// window backend: camera, trails, palette and the background field.
package view

import "math"

// MinZoom limits zoom out to prevent excessive tiling.
const MinZoom = 0.1

// Camera maps plane coordinates to screen pixels.
type Camera struct {
	X, Y         float64 // Plane position of the screen's top-left corner
	Zoom         float64
	prevX, prevY float64 // Previous cursor position for drag
}

// NewCamera returns an unpanned camera at zoom 1.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

// WorldToScreen converts a plane position to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return (wx - c.X) * c.Zoom, (wy - c.Y) * c.Zoom
}

// ZoomBy changes zoom by delta, never below MinZoom.
func (c *Camera) ZoomBy(delta float64) {
	c.Zoom += delta
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
	}
}

// Drag pans by the cursor movement since the last call while pressed.
func (c *Camera) Drag(mx, my float64, pressed bool) {
	if pressed {
		c.X -= (mx - c.prevX) / c.Zoom
		c.Y -= (my - c.prevY) / c.Zoom
	}
	c.prevX, c.prevY = mx, my
}

// Reset restores the unpanned, unzoomed view.
func (c *Camera) Reset() {
	c.X, c.Y, c.Zoom = 0, 0, 1
}

// Tiles returns the range of plane copies [x0, x1) x [y0, y1) visible on a
// screen of sw x sh pixels. The plane is toroidal, so it repeats.
func (c *Camera) Tiles(sw, sh, pw, ph float64) (x0, x1, y0, y1 int) {
	minX, maxX := c.X, c.X+sw/c.Zoom
	minY, maxY := c.Y, c.Y+sh/c.Zoom
	return int(math.Floor(minX / pw)), int(math.Ceil(maxX / pw)),
		int(math.Floor(minY / ph)), int(math.Ceil(maxY / ph))
}
