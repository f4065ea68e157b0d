package sim

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/tetryon/physbed/scene"
)

const (
	gravityY        = -9.8
	spaceIterations = 20
	defaultFriction = 0.8
)

type entry struct {
	state scene.ObjectState // creation-time parameters; pose read from body
	body  *cp.Body
	shape *cp.Shape
}

// World owns a chipmunk space populated from scene snapshots. Bodies are
// tracked in insertion order so captures round-trip in the same order they
// were loaded.
type World struct {
	space   *cp.Space
	entries []entry
	nextID  int
}

func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = spaceIterations
	space.SetGravity(cp.Vector{X: 0, Y: gravityY})
	return &World{space: space}
}

func (w *World) Space() *cp.Space { return w.space }

func (w *World) Len() int { return len(w.entries) }

func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// Clear removes every tracked body and shape from the space.
func (w *World) Clear() {
	for _, e := range w.entries {
		w.space.RemoveShape(e.shape)
		w.space.RemoveBody(e.body)
	}
	w.entries = w.entries[:0]
	w.nextID = 0
}

// Populate replaces the world contents with the scene's objects.
func (w *World) Populate(st *scene.SceneState) error {
	w.Clear()
	for _, o := range st.Objects() {
		if err := w.Add(o); err != nil {
			return err
		}
	}
	return nil
}

// Add creates a body and shape for one object state. A zero ID is assigned
// the next free one.
func (w *World) Add(o scene.ObjectState) error {
	if o.ID == 0 {
		w.nextID++
		o.ID = w.nextID
	} else if o.ID > w.nextID {
		w.nextID = o.ID
	}

	body, shape, err := w.build(o)
	if err != nil {
		return err
	}

	body.SetPosition(cp.Vector{X: o.Position.X, Y: o.Position.Y})
	body.SetAngle(o.Angle)
	if !o.Static {
		body.SetVelocityVector(cp.Vector{X: o.Velocity.X, Y: o.Velocity.Y})
		body.SetAngularVelocity(o.AngularVelocity)
	}

	w.space.AddBody(body)
	w.space.AddShape(shape)
	shape.SetFriction(defaultFriction)
	shape.SetElasticity(o.Material.Restitution())

	w.entries = append(w.entries, entry{state: o, body: body, shape: shape})
	return nil
}

func (w *World) build(o scene.ObjectState) (*cp.Body, *cp.Shape, error) {
	switch o.Shape {
	case scene.ShapeCircle:
		if o.Radius <= 0 {
			return nil, nil, fmt.Errorf("object %d: circle needs a positive radius", o.ID)
		}
		body := w.newBody(o, o.Material.Density()*cp.AreaForCircle(0, o.Radius), func(mass float64) float64 {
			return cp.MomentForCircle(mass, 0, o.Radius, cp.Vector{})
		})
		return body, cp.NewCircle(body, o.Radius, cp.Vector{}), nil

	case scene.ShapeBox:
		if o.Width <= 0 || o.Height <= 0 {
			return nil, nil, fmt.Errorf("object %d: box needs positive extents", o.ID)
		}
		body := w.newBody(o, o.Material.Density()*o.Width*o.Height, func(mass float64) float64 {
			return cp.MomentForBox(mass, o.Width, o.Height)
		})
		return body, cp.NewBox(body, o.Width, o.Height, 0), nil

	case scene.ShapePolygon:
		if len(o.Vertices) < 3 {
			return nil, nil, fmt.Errorf("object %d: polygon needs at least 3 vertices", o.ID)
		}
		verts := make([]cp.Vector, len(o.Vertices))
		for i, v := range o.Vertices {
			verts[i] = cp.Vector{X: v.X, Y: v.Y}
		}
		body := w.newBody(o, o.Material.Density()*cp.AreaForPoly(len(verts), verts, 0), func(mass float64) float64 {
			return cp.MomentForPoly(mass, len(verts), verts, cp.Vector{}, 0)
		})
		return body, cp.NewPolyShapeRaw(body, len(verts), verts, 0), nil
	}
	return nil, nil, fmt.Errorf("object %d: unknown shape %q", o.ID, o.Shape)
}

func (w *World) newBody(o scene.ObjectState, mass float64, moment func(mass float64) float64) *cp.Body {
	if o.Static {
		return cp.NewStaticBody()
	}
	return cp.NewBody(mass, moment(mass))
}

// Capture snapshots every tracked body into a fresh scene state, in the
// order the bodies were added.
func (w *World) Capture() *scene.SceneState {
	st := &scene.SceneState{}
	for _, e := range w.entries {
		o := e.state
		pos := e.body.Position()
		vel := e.body.Velocity()
		o.Position = scene.Vec2{X: pos.X, Y: pos.Y}
		o.Angle = e.body.Angle()
		o.Velocity = scene.Vec2{X: vel.X, Y: vel.Y}
		o.AngularVelocity = e.body.AngularVelocity()
		st.Add(o)
	}
	return st
}
