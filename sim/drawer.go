package sim

import (
	"github.com/jakecoffman/cp"

	"github.com/tetryon/physbed/render"
	"github.com/tetryon/physbed/scene"
)

// DebugDraw renders the space through the debug renderer. The textured path
// walks the tracked bodies directly so each shape can bind its material
// texture; the plain path goes through chipmunk's own space iteration.
func (w *World) DebugDraw(r *render.Renderer, textured bool) {
	if textured {
		w.drawTextured(r)
		return
	}
	cp.DrawSpace(w.space, &spaceDrawer{draw: r})
}

func (w *World) drawTextured(r *render.Renderer) {
	for _, e := range w.entries {
		pos := e.body.Position()
		angle := e.body.Angle()
		color := shapeColor(e.shape)
		mat := e.state.Material.TextureIndex()

		switch e.state.Shape {
		case scene.ShapeCircle:
			r.DrawTexturedCircle(pos, e.state.Radius, cp.ForAngle(angle), color, mat)
		case scene.ShapeBox:
			hw, hh := e.state.Width/2, e.state.Height/2
			r.DrawTexturedPolygon(worldVerts(pos, angle, []cp.Vector{
				{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh},
			}), color, mat)
		case scene.ShapePolygon:
			local := make([]cp.Vector, len(e.state.Vertices))
			for i, v := range e.state.Vertices {
				local[i] = cp.Vector{X: v.X, Y: v.Y}
			}
			r.DrawTexturedPolygon(worldVerts(pos, angle, local), color, mat)
		}
	}
}

func worldVerts(pos cp.Vector, angle float64, local []cp.Vector) []cp.Vector {
	rot := cp.ForAngle(angle)
	out := make([]cp.Vector, len(local))
	for i, v := range local {
		out[i] = pos.Add(v.Rotate(rot))
	}
	return out
}

// spaceDrawer adapts the render facade to chipmunk's drawer interface.
type spaceDrawer struct {
	draw render.Draw
}

func (d *spaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.draw.DrawSolidCircle(pos, radius, cp.ForAngle(angle), fill)
}

func (d *spaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.draw.DrawSegment(a, b, fill)
}

func (d *spaceDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.draw.DrawSegment(a, b, fill)
	if radius > 0 {
		d.draw.DrawCircle(a, radius, outline)
		d.draw.DrawCircle(b, radius, outline)
	}
}

func (d *spaceDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	d.draw.DrawSolidPolygon(verts[:count], fill)
}

func (d *spaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	d.draw.DrawPoint(pos, size, fill)
}

func (d *spaceDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *spaceDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *spaceDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return shapeColor(shape)
}

func (d *spaceDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *spaceDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *spaceDrawer) Data() interface{} { return nil }

func shapeColor(shape *cp.Shape) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if shape.Sensor() {
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	}
	if shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
}
