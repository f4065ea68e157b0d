package scene

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleState() *SceneState {
	s := &SceneState{}
	s.Add(ObjectState{
		ID:       1,
		Shape:    ShapeCircle,
		Radius:   0.5,
		Position: Vec2{X: 1, Y: 2},
		Velocity: Vec2{X: 0.5, Y: -1},
		Material: MaterialRubber,
	})
	s.Add(ObjectState{
		ID:       2,
		Shape:    ShapeBox,
		Static:   true,
		Width:    10,
		Height:   1,
		Position: Vec2{Y: -5},
		Material: MaterialMetal,
	})
	s.Add(ObjectState{
		ID:              3,
		Shape:           ShapePolygon,
		Vertices:        []Vec2{{X: -1}, {X: 1}, {Y: 1}},
		Angle:           0.3,
		AngularVelocity: -0.1,
		Material:        MaterialMetal,
	})
	return s
}

func TestSceneStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	want := sampleState()

	if err := want.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := &SceneState{}
	if err := got.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got.Objects(), want.Objects()) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got.Objects(), want.Objects())
	}
}

func TestSceneStateSaveEmptyWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	s := &SceneState{}

	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Fatalf("empty scene should serialize as [], got %q", got)
	}
}

func TestSceneStateLoadFailureKeepsObjects(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"id": 1,`), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		path string
	}{
		{"missing_file", filepath.Join(dir, "nope.json")},
		{"malformed_json", bad},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := sampleState()
			before := append([]ObjectState(nil), s.Objects()...)

			if err := s.Load(c.path); err == nil {
				t.Fatal("expected load error")
			}
			if !reflect.DeepEqual(s.Objects(), before) {
				t.Fatalf("failed load must not change state:\ngot  %+v\nwant %+v", s.Objects(), before)
			}
		})
	}
}

func TestSceneStateAddClear(t *testing.T) {
	s := sampleState()
	if s.Len() != 3 {
		t.Fatalf("expected 3 objects, got %d", s.Len())
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected empty state after Clear, got %d", s.Len())
	}
}

func TestMaterialJSON(t *testing.T) {
	cases := []struct {
		mat  Material
		name string
	}{
		{MaterialMetal, "metal"},
		{MaterialRubber, "rubber"},
	}
	for _, c := range cases {
		data, err := c.mat.MarshalJSON()
		if err != nil {
			t.Fatalf("%v: marshal: %v", c.mat, err)
		}
		if string(data) != `"`+c.name+`"` {
			t.Fatalf("%v: marshaled as %s", c.mat, data)
		}
		var back Material
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("%v: unmarshal: %v", c.mat, err)
		}
		if back != c.mat {
			t.Fatalf("%v: round trip gave %v", c.mat, back)
		}
	}

	if _, err := Material(42).MarshalJSON(); err == nil {
		t.Fatal("marshaling an unknown material should fail")
	}
	var m Material
	if err := m.UnmarshalJSON([]byte(`"wood"`)); err == nil {
		t.Fatal("unmarshaling an unknown material name should fail")
	}
}

func TestMaterialProperties(t *testing.T) {
	cases := []struct {
		mat         Material
		density     float64
		restitution float64
		texture     int
	}{
		{MaterialMetal, 10, 0.02, 0},
		{MaterialRubber, 5, 0.35, 1},
	}
	for _, c := range cases {
		if got := c.mat.Density(); got != c.density {
			t.Errorf("%v density = %v, want %v", c.mat, got, c.density)
		}
		if got := c.mat.Restitution(); got != c.restitution {
			t.Errorf("%v restitution = %v, want %v", c.mat, got, c.restitution)
		}
		if got := c.mat.TextureIndex(); got != c.texture {
			t.Errorf("%v texture index = %v, want %v", c.mat, got, c.texture)
		}
	}
}

func TestParseMaterial(t *testing.T) {
	if m, err := ParseMaterial("rubber"); err != nil || m != MaterialRubber {
		t.Fatalf("ParseMaterial(rubber) = %v, %v", m, err)
	}
	if _, err := ParseMaterial("glass"); err == nil {
		t.Fatal("ParseMaterial should reject unknown names")
	}
}
