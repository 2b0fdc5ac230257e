// Package view derives what the render collaborator draws each frame: the
// camera window over the world and the HUD overlay. It never touches a
// graphics API.
package view

import "math"

// Camera is the visible window in world coordinates.
type Camera struct {
	X, Y          float64
	Width, Height float64
}

func NewCamera(width, height float64) Camera {
	return Camera{Width: width, Height: height}
}

// Follow centres the camera on (x, y) and keeps it inside the world.
func (c *Camera) Follow(x, y, worldW, worldH float64) {
	c.X = x - c.Width/2
	c.Y = y - c.Height/2
	c.X = math.Max(0, math.Min(c.X, worldW-c.Width))
	c.Y = math.Max(0, math.Min(c.Y, worldH-c.Height))
}

// ToScreen converts a world position to integer screen coordinates.
func (c Camera) ToScreen(x, y float64) (int, int) {
	return int(x - c.X), int(y - c.Y)
}

// Visible reports whether a w×h box at (x, y) intersects the camera window.
func (c Camera) Visible(x, y, w, h float64) bool {
	return x+w > c.X && x < c.X+c.Width && y+h > c.Y && y < c.Y+c.Height
}
