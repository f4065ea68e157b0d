// Package scenario loads tengo-scripted scene definitions. A script builds
// the initial object list by calling the spawn functions the runtime
// provides; the result is an ordinary scene snapshot the world can load.
//
// Script API:
//
//	circle(x, y, radius, material)          dynamic disc
//	box(x, y, width, height, material)      dynamic box
//	polygon(x, y, verts, material)          dynamic convex polygon, verts local [[x, y], ...]
//	wall(x, y, width, height)               static metal box
//	velocity(vx, vy)                        sets the velocity of the last spawned object
//
// material is "metal" or "rubber".
package scenario

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/tetryon/physbed/scene"
)

// Load runs the script at path and returns the scene it builds.
func Load(path string) (*scene.SceneState, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	b := &builder{state: &scene.SceneState{}}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("circle", &tengo.UserFunction{Name: "circle", Value: b.circle})
	_ = script.Add("box", &tengo.UserFunction{Name: "box", Value: b.box})
	_ = script.Add("polygon", &tengo.UserFunction{Name: "polygon", Value: b.polygon})
	_ = script.Add("wall", &tengo.UserFunction{Name: "wall", Value: b.wall})
	_ = script.Add("velocity", &tengo.UserFunction{Name: "velocity", Value: b.velocity})

	if _, err := script.Run(); err != nil {
		return nil, fmt.Errorf("run scenario %s: %w", path, err)
	}
	return b.state, nil
}

type builder struct {
	state  *scene.SceneState
	nextID int
}

func (b *builder) spawn(o scene.ObjectState) {
	b.nextID++
	o.ID = b.nextID
	b.state.Add(o)
}

func (b *builder) circle(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 4 {
		return nil, tengo.ErrWrongNumArguments
	}
	x, y, err := floatPair(args[0], args[1], "x", "y")
	if err != nil {
		return nil, err
	}
	radius, err := floatArg(args[2], "radius")
	if err != nil {
		return nil, err
	}
	mat, err := materialArg(args[3])
	if err != nil {
		return nil, err
	}
	b.spawn(scene.ObjectState{
		Shape:    scene.ShapeCircle,
		Radius:   radius,
		Position: scene.Vec2{X: x, Y: y},
		Material: mat,
	})
	return tengo.UndefinedValue, nil
}

func (b *builder) box(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 5 {
		return nil, tengo.ErrWrongNumArguments
	}
	x, y, err := floatPair(args[0], args[1], "x", "y")
	if err != nil {
		return nil, err
	}
	w, h, err := floatPair(args[2], args[3], "width", "height")
	if err != nil {
		return nil, err
	}
	mat, err := materialArg(args[4])
	if err != nil {
		return nil, err
	}
	b.spawn(scene.ObjectState{
		Shape:    scene.ShapeBox,
		Width:    w,
		Height:   h,
		Position: scene.Vec2{X: x, Y: y},
		Material: mat,
	})
	return tengo.UndefinedValue, nil
}

func (b *builder) polygon(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 4 {
		return nil, tengo.ErrWrongNumArguments
	}
	x, y, err := floatPair(args[0], args[1], "x", "y")
	if err != nil {
		return nil, err
	}
	verts, err := vertsArg(args[2])
	if err != nil {
		return nil, err
	}
	mat, err := materialArg(args[3])
	if err != nil {
		return nil, err
	}
	b.spawn(scene.ObjectState{
		Shape:    scene.ShapePolygon,
		Vertices: verts,
		Position: scene.Vec2{X: x, Y: y},
		Material: mat,
	})
	return tengo.UndefinedValue, nil
}

func (b *builder) wall(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 4 {
		return nil, tengo.ErrWrongNumArguments
	}
	x, y, err := floatPair(args[0], args[1], "x", "y")
	if err != nil {
		return nil, err
	}
	w, h, err := floatPair(args[2], args[3], "width", "height")
	if err != nil {
		return nil, err
	}
	b.spawn(scene.ObjectState{
		Shape:    scene.ShapeBox,
		Static:   true,
		Width:    w,
		Height:   h,
		Position: scene.Vec2{X: x, Y: y},
		Material: scene.MaterialMetal,
	})
	return tengo.UndefinedValue, nil
}

func (b *builder) velocity(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	vx, vy, err := floatPair(args[0], args[1], "vx", "vy")
	if err != nil {
		return nil, err
	}
	objects := b.state.Objects()
	if len(objects) == 0 {
		return nil, fmt.Errorf("velocity called before any spawn")
	}
	objects[len(objects)-1].Velocity = scene.Vec2{X: vx, Y: vy}
	return tengo.UndefinedValue, nil
}

func floatArg(o tengo.Object, name string) (float64, error) {
	v, ok := tengo.ToFloat64(o)
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: name, Expected: "number", Found: o.TypeName()}
	}
	return v, nil
}

func floatPair(a, b tengo.Object, nameA, nameB string) (float64, float64, error) {
	va, err := floatArg(a, nameA)
	if err != nil {
		return 0, 0, err
	}
	vb, err := floatArg(b, nameB)
	if err != nil {
		return 0, 0, err
	}
	return va, vb, nil
}

func materialArg(o tengo.Object) (scene.Material, error) {
	s, ok := tengo.ToString(o)
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: "material", Expected: "string", Found: o.TypeName()}
	}
	return scene.ParseMaterial(s)
}

func vertsArg(o tengo.Object) ([]scene.Vec2, error) {
	arr, ok := o.(*tengo.Array)
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "verts", Expected: "array", Found: o.TypeName()}
	}
	verts := make([]scene.Vec2, 0, len(arr.Value))
	for _, el := range arr.Value {
		pair, ok := el.(*tengo.Array)
		if !ok || len(pair.Value) != 2 {
			return nil, fmt.Errorf("verts elements must be [x, y] pairs")
		}
		x, ok := tengo.ToFloat64(pair.Value[0])
		if !ok {
			return nil, fmt.Errorf("verts elements must be numeric")
		}
		y, ok := tengo.ToFloat64(pair.Value[1])
		if !ok {
			return nil, fmt.Errorf("verts elements must be numeric")
		}
		verts = append(verts, scene.Vec2{X: x, Y: y})
	}
	return verts, nil
}
