package render

import "github.com/jakecoffman/cp"

// Camera projects world coordinates onto the screen. World space is y-up with
// the origin wherever the scene puts it; screen space is y-down pixels.
type Camera struct {
	Center cp.Vector
	Zoom   float64 // pixels per world unit
	Width  int
	Height int
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		Zoom:   20,
		Width:  width,
		Height: height,
	}
}

func (c *Camera) WorldToScreen(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: (p.X-c.Center.X)*c.Zoom + float64(c.Width)/2,
		Y: float64(c.Height)/2 - (p.Y-c.Center.Y)*c.Zoom,
	}
}

func (c *Camera) ScreenToWorld(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: (p.X-float64(c.Width)/2)/c.Zoom + c.Center.X,
		Y: (float64(c.Height)/2-p.Y)/c.Zoom + c.Center.Y,
	}
}

// project applies the camera transform, or the identity when no camera is set.
func (c *Camera) project(p cp.Vector) cp.Vector {
	if c == nil {
		return p
	}
	return c.WorldToScreen(p)
}
