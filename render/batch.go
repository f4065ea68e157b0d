package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Batch capacities, counted in logical entries. A point entry is one vertex,
// a line batch holds segment endpoints (two per segment), a triangle batch
// holds corner vertices (three per triangle).
const (
	maxPointVertices    = 512
	maxLineVertices     = 2 * 512
	maxTriangleVertices = 3 * 512
)

// Width of flushed line segments, in screen pixels.
const lineHalfWidth = 0.5

// Target is the surface a batch flushes to. *ebiten.Image satisfies it
// directly; tests substitute a recording implementation.
type Target interface {
	DrawTriangles(vertices []ebiten.Vertex, indices []uint16, img *ebiten.Image, options *ebiten.DrawTrianglesOptions)
}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type pointEntry struct {
	pos   cp.Vector
	color cp.FColor
	size  float64
}

// pointBatch accumulates sized point markers. Each entry becomes a
// screen-axis-aligned quad at flush time.
type pointBatch struct {
	entries []pointEntry
	verts   []ebiten.Vertex
	indices []uint16
}

func newPointBatch() *pointBatch {
	return &pointBatch{
		entries: make([]pointEntry, 0, maxPointVertices),
		verts:   make([]ebiten.Vertex, 0, 4*maxPointVertices),
		indices: make([]uint16, 0, 6*maxPointVertices),
	}
}

func (b *pointBatch) add(t Target, cam *Camera, pos cp.Vector, c cp.FColor, size float64) {
	if len(b.entries) == cap(b.entries) {
		b.flush(t, cam)
	}
	b.entries = append(b.entries, pointEntry{pos: pos, color: c, size: size})
}

func (b *pointBatch) flush(t Target, cam *Camera) {
	if len(b.entries) == 0 {
		return
	}
	if t == nil {
		panic("render: point batch flushed without a bound target")
	}
	b.verts = b.verts[:0]
	b.indices = b.indices[:0]
	for _, e := range b.entries {
		p := cam.project(e.pos)
		half := e.size / 2
		base := uint16(len(b.verts))
		b.verts = append(b.verts,
			newVertex(p.X-half, p.Y-half, e.color),
			newVertex(p.X+half, p.Y-half, e.color),
			newVertex(p.X+half, p.Y+half, e.color),
			newVertex(p.X-half, p.Y+half, e.color),
		)
		b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
	}
	t.DrawTriangles(b.verts, b.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	b.entries = b.entries[:0]
}

type lineEntry struct {
	pos   cp.Vector
	color cp.FColor
}

// lineBatch accumulates segment endpoints in pairs. Flushing expands each
// segment into a thin quad since the GPU path has no native line primitive.
type lineBatch struct {
	entries []lineEntry
	verts   []ebiten.Vertex
	indices []uint16
}

func newLineBatch() *lineBatch {
	return &lineBatch{
		entries: make([]lineEntry, 0, maxLineVertices),
		verts:   make([]ebiten.Vertex, 0, 2*maxLineVertices),
		indices: make([]uint16, 0, 3*maxLineVertices),
	}
}

func (b *lineBatch) add(t Target, cam *Camera, pos cp.Vector, c cp.FColor) {
	if len(b.entries) == cap(b.entries) {
		b.flush(t, cam)
	}
	b.entries = append(b.entries, lineEntry{pos: pos, color: c})
}

func (b *lineBatch) flush(t Target, cam *Camera) {
	if len(b.entries) == 0 {
		return
	}
	if t == nil {
		panic("render: line batch flushed without a bound target")
	}
	b.verts = b.verts[:0]
	b.indices = b.indices[:0]
	for i := 0; i+1 < len(b.entries); i += 2 {
		a := cam.project(b.entries[i].pos)
		bb := cam.project(b.entries[i+1].pos)
		dx, dy := bb.X-a.X, bb.Y-a.Y
		l := cp.Vector{X: dx, Y: dy}.Length()
		var nx, ny float64
		if l > 0 {
			nx, ny = -dy/l*lineHalfWidth, dx/l*lineHalfWidth
		}
		ca, cb := b.entries[i].color, b.entries[i+1].color
		base := uint16(len(b.verts))
		b.verts = append(b.verts,
			newVertex(a.X-nx, a.Y-ny, ca),
			newVertex(a.X+nx, a.Y+ny, ca),
			newVertex(bb.X+nx, bb.Y+ny, cb),
			newVertex(bb.X-nx, bb.Y-ny, cb),
		)
		b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
	}
	t.DrawTriangles(b.verts, b.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	b.entries = b.entries[:0]
}

type triangleEntry struct {
	pos      cp.Vector
	color    cp.FColor
	texCoord cp.Vector
	material int // material texture index, or -1 for untextured
}

// triangleBatch accumulates triangle corner vertices. Untextured vertices
// draw from the shared white pixel; textured vertices sample the material
// texture with repeat addressing, one draw call per material present.
type triangleBatch struct {
	entries []triangleEntry
	verts   []ebiten.Vertex
	indices []uint16
}

func newTriangleBatch() *triangleBatch {
	return &triangleBatch{
		entries: make([]triangleEntry, 0, maxTriangleVertices),
		verts:   make([]ebiten.Vertex, 0, maxTriangleVertices),
		indices: make([]uint16, 0, maxTriangleVertices),
	}
}

func (b *triangleBatch) add(t Target, cam *Camera, tex *MaterialTextures, pos cp.Vector, c cp.FColor, texCoord cp.Vector, material int) {
	if len(b.entries) == cap(b.entries) {
		b.flush(t, cam, tex)
	}
	b.entries = append(b.entries, triangleEntry{pos: pos, color: c, texCoord: texCoord, material: material})
}

func (b *triangleBatch) flush(t Target, cam *Camera, tex *MaterialTextures) {
	if len(b.entries) == 0 {
		return
	}
	if t == nil {
		panic("render: triangle batch flushed without a bound target")
	}
	// One pass per material so each draw call binds a single texture.
	// Material -1 (untextured) is always drawn first.
	b.flushMaterial(t, cam, nil, -1)
	if tex != nil {
		for m := 0; m < tex.Count(); m++ {
			b.flushMaterial(t, cam, tex.Image(m), m)
		}
	}
	b.entries = b.entries[:0]
}

func (b *triangleBatch) flushMaterial(t Target, cam *Camera, src *ebiten.Image, material int) {
	b.verts = b.verts[:0]
	b.indices = b.indices[:0]
	var texW, texH float64
	if src != nil {
		bounds := src.Bounds()
		texW, texH = float64(bounds.Dx()), float64(bounds.Dy())
	}
	for _, e := range b.entries {
		if e.material != material {
			continue
		}
		p := cam.project(e.pos)
		v := newVertex(p.X, p.Y, e.color)
		if src != nil {
			v.SrcX = float32(e.texCoord.X * texW)
			v.SrcY = float32(e.texCoord.Y * texH)
		}
		b.indices = append(b.indices, uint16(len(b.verts)))
		b.verts = append(b.verts, v)
	}
	if len(b.verts) == 0 {
		return
	}
	opts := &ebiten.DrawTrianglesOptions{}
	if src == nil {
		src = whiteSubImage
	} else {
		opts.Address = ebiten.AddressRepeat
	}
	t.DrawTriangles(b.verts, b.indices, src, opts)
}

func newVertex(x, y float64, c cp.FColor) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: c.R,
		ColorG: c.G,
		ColorB: c.B,
		ColorA: c.A,
	}
}
