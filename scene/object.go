package scene

import (
	"encoding/json"
	"fmt"
)

// Vec2 is a serializable 2D vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ShapeKind names the shape of a captured object.
type ShapeKind string

const (
	ShapeCircle  ShapeKind = "circle"
	ShapeBox     ShapeKind = "box"
	ShapePolygon ShapeKind = "polygon"
)

// Material is one of the fixed simulation materials. It determines density
// and restitution for the physics body and the texture for the rendered
// fill.
type Material int

const (
	MaterialMetal Material = iota
	MaterialRubber
)

var materialNames = map[Material]string{
	MaterialMetal:  "metal",
	MaterialRubber: "rubber",
}

func (m Material) String() string {
	if s, ok := materialNames[m]; ok {
		return s
	}
	return fmt.Sprintf("material(%d)", int(m))
}

func (m Material) Density() float64 {
	if m == MaterialMetal {
		return 10
	}
	return 5
}

func (m Material) Restitution() float64 {
	switch m {
	case MaterialMetal:
		return 0.02
	case MaterialRubber:
		return 0.35
	}
	return 0
}

// TextureIndex is the material's slot in the renderer's texture set.
func (m Material) TextureIndex() int { return int(m) }

func (m Material) MarshalJSON() ([]byte, error) {
	s, ok := materialNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown material %d", int(m))
	}
	return json.Marshal(s)
}

func (m *Material) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mat, err := ParseMaterial(s)
	if err != nil {
		return err
	}
	*m = mat
	return nil
}

// ParseMaterial maps a material name ("metal", "rubber") to its Material.
func ParseMaterial(s string) (Material, error) {
	for mat, name := range materialNames {
		if name == s {
			return mat, nil
		}
	}
	return 0, fmt.Errorf("unknown material %q", s)
}

// ObjectState is the snapshot of one simulation object. Shape parameters are
// fixed at creation; position, angle and velocities change step to step.
type ObjectState struct {
	ID     int       `json:"id"`
	Shape  ShapeKind `json:"shape"`
	Static bool      `json:"static,omitempty"`

	Radius   float64 `json:"radius,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Vertices []Vec2  `json:"vertices,omitempty"`

	Position        Vec2    `json:"position"`
	Angle           float64 `json:"angle"`
	Velocity        Vec2    `json:"velocity"`
	AngularVelocity float64 `json:"angular_velocity"`

	Material Material `json:"material"`
}
