package sim

import (
	"math"
	"testing"

	"github.com/tetryon/physbed/scene"
)

func groundAndBall() *scene.SceneState {
	st := &scene.SceneState{}
	st.Add(scene.ObjectState{
		ID:       1,
		Shape:    scene.ShapeBox,
		Static:   true,
		Width:    40,
		Height:   2,
		Position: scene.Vec2{Y: -10},
		Material: scene.MaterialMetal,
	})
	st.Add(scene.ObjectState{
		ID:       2,
		Shape:    scene.ShapeCircle,
		Radius:   0.5,
		Position: scene.Vec2{Y: 5},
		Material: scene.MaterialRubber,
	})
	return st
}

func TestPopulateAndCapturePreserveOrder(t *testing.T) {
	w := NewWorld()
	st := groundAndBall()
	st.Add(scene.ObjectState{
		ID:       3,
		Shape:    scene.ShapePolygon,
		Vertices: []scene.Vec2{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Position: scene.Vec2{X: 3, Y: 8},
		Material: scene.MaterialMetal,
	})

	if err := w.Populate(st); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if w.Len() != 3 {
		t.Fatalf("expected 3 bodies, got %d", w.Len())
	}

	got := w.Capture()
	if got.Len() != 3 {
		t.Fatalf("capture returned %d objects", got.Len())
	}
	for i, o := range got.Objects() {
		want := st.Objects()[i]
		if o.ID != want.ID || o.Shape != want.Shape || o.Material != want.Material {
			t.Fatalf("object %d identity changed: got %+v", i, o)
		}
	}
	// Before stepping, the captured pose matches the loaded one.
	ball := got.Objects()[1]
	if math.Abs(ball.Position.Y-5) > 1e-9 {
		t.Fatalf("ball pose drifted before stepping: %+v", ball.Position)
	}
}

func TestStepAppliesGravity(t *testing.T) {
	w := NewWorld()
	if err := w.Populate(groundAndBall()); err != nil {
		t.Fatalf("populate: %v", err)
	}

	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60.0)
	}

	ball := w.Capture().Objects()[1]
	if ball.Position.Y >= 5 {
		t.Fatalf("dynamic ball should fall, still at y=%v", ball.Position.Y)
	}
	if ball.Velocity.Y >= 0 {
		t.Fatalf("falling ball should have downward velocity, got %v", ball.Velocity.Y)
	}
	ground := w.Capture().Objects()[0]
	if ground.Position.Y != -10 {
		t.Fatalf("static ground must not move, at y=%v", ground.Position.Y)
	}
}

func TestAddAssignsIDs(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 3; i++ {
		err := w.Add(scene.ObjectState{
			Shape:    scene.ShapeCircle,
			Radius:   1,
			Material: scene.MaterialMetal,
		})
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	for i, o := range w.Capture().Objects() {
		if o.ID != i+1 {
			t.Fatalf("object %d assigned id %d", i, o.ID)
		}
	}

	// An explicit ID advances the counter.
	if err := w.Add(scene.ObjectState{ID: 10, Shape: scene.ShapeCircle, Radius: 1}); err != nil {
		t.Fatal(err)
	}
	if err := w.Add(scene.ObjectState{Shape: scene.ShapeCircle, Radius: 1}); err != nil {
		t.Fatal(err)
	}
	objs := w.Capture().Objects()
	if got := objs[len(objs)-1].ID; got != 11 {
		t.Fatalf("id after explicit 10 should be 11, got %d", got)
	}
}

func TestAddRejectsBadShapes(t *testing.T) {
	cases := []struct {
		name string
		obj  scene.ObjectState
	}{
		{"zero_radius", scene.ObjectState{Shape: scene.ShapeCircle}},
		{"flat_box", scene.ObjectState{Shape: scene.ShapeBox, Width: 2}},
		{"degenerate_polygon", scene.ObjectState{Shape: scene.ShapePolygon, Vertices: []scene.Vec2{{}, {X: 1}}}},
		{"unknown_shape", scene.ObjectState{Shape: "wedge"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			if err := w.Add(c.obj); err == nil {
				t.Fatal("expected an error")
			}
			if w.Len() != 0 {
				t.Fatalf("failed add must not leave bodies behind, got %d", w.Len())
			}
		})
	}
}

func TestClearEmptiesWorld(t *testing.T) {
	w := NewWorld()
	if err := w.Populate(groundAndBall()); err != nil {
		t.Fatalf("populate: %v", err)
	}
	w.Clear()
	if w.Len() != 0 {
		t.Fatalf("expected empty world, got %d", w.Len())
	}

	// Repopulating starts ID assignment over.
	if err := w.Add(scene.ObjectState{Shape: scene.ShapeCircle, Radius: 1}); err != nil {
		t.Fatal(err)
	}
	if got := w.Capture().Objects()[0].ID; got != 1 {
		t.Fatalf("fresh world should assign id 1, got %d", got)
	}
}

func TestCaptureRoundTripsThroughPopulate(t *testing.T) {
	w := NewWorld()
	if err := w.Populate(groundAndBall()); err != nil {
		t.Fatalf("populate: %v", err)
	}
	for i := 0; i < 10; i++ {
		w.Step(1.0 / 60.0)
	}

	snap := w.Capture()
	w2 := NewWorld()
	if err := w2.Populate(snap); err != nil {
		t.Fatalf("repopulate from capture: %v", err)
	}

	again := w2.Capture()
	for i, o := range again.Objects() {
		want := snap.Objects()[i]
		if math.Abs(o.Position.X-want.Position.X) > 1e-9 || math.Abs(o.Position.Y-want.Position.Y) > 1e-9 {
			t.Fatalf("object %d pose not restored: got %+v want %+v", i, o.Position, want.Position)
		}
		if math.Abs(o.Velocity.Y-want.Velocity.Y) > 1e-9 {
			t.Fatalf("object %d velocity not restored: got %+v want %+v", i, o.Velocity, want.Velocity)
		}
	}
}
