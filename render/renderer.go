package render

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
)

const (
	circleSegments = 16
	axisScale      = 0.4
)

// Draw is the capability set a physics debug pass needs. The Renderer is the
// production implementation; positions are world coordinates, colors RGBA in
// [0, 1].
type Draw interface {
	DrawPolygon(verts []cp.Vector, c cp.FColor)
	DrawSolidPolygon(verts []cp.Vector, c cp.FColor)
	DrawCircle(center cp.Vector, radius float64, c cp.FColor)
	DrawSolidCircle(center cp.Vector, radius float64, axis cp.Vector, c cp.FColor)
	DrawSegment(a, b cp.Vector, c cp.FColor)
	DrawTransform(pos cp.Vector, angle float64)
	DrawPoint(p cp.Vector, size float64, c cp.FColor)
	DrawAABB(bb cp.BB, c cp.FColor)
}

// Renderer batches debug primitives and draws each batch with a single call
// per flush. It is single threaded and owned by whoever runs the frame loop.
type Renderer struct {
	points    *pointBatch
	lines     *lineBatch
	triangles *triangleBatch

	textures *MaterialTextures // nil disables the textured path
	camera   *Camera
	target   Target
	capture  FrameWriter

	debug bool
}

// NewRenderer creates a renderer drawing through cam. textures may be nil, in
// which case textured draws degrade to their solid equivalents.
func NewRenderer(cam *Camera, textures *MaterialTextures) *Renderer {
	return &Renderer{
		points:    newPointBatch(),
		lines:     newLineBatch(),
		triangles: newTriangleBatch(),
		textures:  textures,
		camera:    cam,
	}
}

// Begin binds the frame's render target. It must be called before any draw
// each frame; batches that fill up mid-frame flush to this target.
func (r *Renderer) Begin(t Target) {
	r.target = t
}

// Flush drains all batches to the bound target: triangles first so fills sit
// under outlines, then lines, then points. If capture is armed the completed
// frame is handed to the frame writer afterwards.
func (r *Renderer) Flush() {
	r.triangles.flush(r.target, r.camera, r.textures)
	r.lines.flush(r.target, r.camera)
	r.points.flush(r.target, r.camera)

	if r.capture != nil {
		if img, ok := r.target.(*ebiten.Image); ok {
			if err := r.capture.WriteFrame(img); err != nil {
				log.Printf("render: dropping capture frame: %v", err)
			}
		}
	}
}

func (r *Renderer) SetDebug(debug bool) { r.debug = debug }
func (r *Renderer) Debug() bool         { return r.debug }

func (r *Renderer) Camera() *Camera { return r.camera }

// SetCapture arms (or, with nil, disarms) frame export. The previous writer,
// if any, is not closed; the caller owns writer lifetimes.
func (r *Renderer) SetCapture(w FrameWriter) { r.capture = w }

// Capturing reports whether a frame writer is armed.
func (r *Renderer) Capturing() bool { return r.capture != nil }

// DrawString prints formatted text at screen coordinates. Text skips the
// batches and draws straight to the target, so it needs an image target;
// anything else drops the string.
func (r *Renderer) DrawString(x, y int, format string, args ...any) {
	img, ok := r.target.(*ebiten.Image)
	if !ok {
		return
	}
	ebitenutil.DebugPrintAt(img, fmt.Sprintf(format, args...), x, y)
}

// DrawPolygon draws a closed wireframe outline: one segment per vertex pair,
// including the closing edge back to the first vertex.
func (r *Renderer) DrawPolygon(verts []cp.Vector, c cp.FColor) {
	if len(verts) < 2 {
		return
	}
	p1 := verts[len(verts)-1]
	for _, p2 := range verts {
		r.lines.add(r.target, r.camera, p1, c)
		r.lines.add(r.target, r.camera, p2, c)
		p1 = p2
	}
}

// DrawSolidPolygon fan-triangulates a convex polygon from its first vertex.
// In debug mode the fill is halved and the outline overlaid so both stay
// visible.
func (r *Renderer) DrawSolidPolygon(verts []cp.Vector, c cp.FColor) {
	r.solidPolygon(verts, c, nil, -1)
}

// DrawTexturedPolygon is DrawSolidPolygon with per-vertex texture coordinates
// derived from world position. Without textures it falls back to the solid
// fill.
func (r *Renderer) DrawTexturedPolygon(verts []cp.Vector, c cp.FColor, material int) {
	if r.textures == nil || r.textures.Image(material) == nil {
		r.DrawSolidPolygon(verts, c)
		return
	}
	texCoords := make([]cp.Vector, len(verts))
	for i, v := range verts {
		texCoords[i] = tileCoord(v)
	}
	r.solidPolygon(verts, c, texCoords, material)
}

func (r *Renderer) solidPolygon(verts []cp.Vector, c cp.FColor, texCoords []cp.Vector, material int) {
	if len(verts) < 3 {
		return
	}
	fill := fillColor(c, r.debug)
	for i := 1; i < len(verts)-1; i++ {
		tc0, tci, tcj := cp.Vector{}, cp.Vector{}, cp.Vector{}
		if texCoords != nil {
			tc0, tci, tcj = texCoords[0], texCoords[i], texCoords[i+1]
		}
		r.triangles.add(r.target, r.camera, r.textures, verts[0], fill, tc0, material)
		r.triangles.add(r.target, r.camera, r.textures, verts[i], fill, tci, material)
		r.triangles.add(r.target, r.camera, r.textures, verts[i+1], fill, tcj, material)
	}
	if r.debug {
		r.DrawPolygon(verts, c)
	}
}

// DrawCircle draws a 16-segment wireframe circle. The ring is walked with an
// incremental rotation so sin/cos run once, not per segment.
func (r *Renderer) DrawCircle(center cp.Vector, radius float64, c cp.FColor) {
	sinInc, cosInc := circleIncrement()
	r1 := cp.Vector{X: 1, Y: 0}
	v1 := center.Add(r1.Mult(radius))
	for i := 0; i < circleSegments; i++ {
		r2 := rotate(r1, sinInc, cosInc)
		v2 := center.Add(r2.Mult(radius))
		r.lines.add(r.target, r.camera, v1, c)
		r.lines.add(r.target, r.camera, v2, c)
		r1, v1 = r2, v2
	}
}

// DrawSolidCircle draws a 16-triangle fan. In debug mode the fill is halved,
// the outline is overlaid, and a radius line along axis visualizes rotation.
func (r *Renderer) DrawSolidCircle(center cp.Vector, radius float64, axis cp.Vector, c cp.FColor) {
	r.solidCircle(center, radius, axis, c, -1)
}

// DrawTexturedCircle is DrawSolidCircle with texture coordinates derived from
// world position. Without textures it falls back to the solid fill.
func (r *Renderer) DrawTexturedCircle(center cp.Vector, radius float64, axis cp.Vector, c cp.FColor, material int) {
	if r.textures == nil || r.textures.Image(material) == nil {
		r.DrawSolidCircle(center, radius, axis, c)
		return
	}
	r.solidCircle(center, radius, axis, c, material)
}

func (r *Renderer) solidCircle(center cp.Vector, radius float64, axis cp.Vector, c cp.FColor, material int) {
	sinInc, cosInc := circleIncrement()
	fill := fillColor(c, r.debug)
	r1 := cp.Vector{X: cosInc, Y: sinInc}
	v1 := center.Add(r1.Mult(radius))
	for i := 0; i < circleSegments; i++ {
		r2 := rotate(r1, sinInc, cosInc)
		v2 := center.Add(r2.Mult(radius))
		r.triangles.add(r.target, r.camera, r.textures, center, fill, tileCoord(center), material)
		r.triangles.add(r.target, r.camera, r.textures, v1, fill, tileCoord(v1), material)
		r.triangles.add(r.target, r.camera, r.textures, v2, fill, tileCoord(v2), material)
		r1, v1 = r2, v2
	}

	if r.debug {
		r.DrawCircle(center, radius, c)
		// Radius line fixed in the body to make rotation visible.
		r.DrawSegment(center, center.Add(axis.Mult(radius)), c)
	}
}

func (r *Renderer) DrawSegment(a, b cp.Vector, c cp.FColor) {
	r.lines.add(r.target, r.camera, a, c)
	r.lines.add(r.target, r.camera, b, c)
}

// DrawTransform draws the frame axes at pos: x axis red, y axis green.
func (r *Renderer) DrawTransform(pos cp.Vector, angle float64) {
	red := cp.FColor{R: 1, A: 1}
	green := cp.FColor{G: 1, A: 1}
	xAxis := cp.Vector{X: math.Cos(angle), Y: math.Sin(angle)}
	yAxis := cp.Vector{X: -math.Sin(angle), Y: math.Cos(angle)}
	r.DrawSegment(pos, pos.Add(xAxis.Mult(axisScale)), red)
	r.DrawSegment(pos, pos.Add(yAxis.Mult(axisScale)), green)
}

// DrawPoint draws a screen-size sized marker at p.
func (r *Renderer) DrawPoint(p cp.Vector, size float64, c cp.FColor) {
	r.points.add(r.target, r.camera, p, c, size)
}

// DrawAABB outlines a bounding box with four segments.
func (r *Renderer) DrawAABB(bb cp.BB, c cp.FColor) {
	p1 := cp.Vector{X: bb.L, Y: bb.B}
	p2 := cp.Vector{X: bb.R, Y: bb.B}
	p3 := cp.Vector{X: bb.R, Y: bb.T}
	p4 := cp.Vector{X: bb.L, Y: bb.T}
	r.DrawSegment(p1, p2, c)
	r.DrawSegment(p2, p3, c)
	r.DrawSegment(p3, p4, c)
	r.DrawSegment(p4, p1, c)
}

func circleIncrement() (sin, cos float64) {
	const increment = 2 * math.Pi / circleSegments
	return math.Sin(increment), math.Cos(increment)
}

func rotate(v cp.Vector, sin, cos float64) cp.Vector {
	return cp.Vector{X: cos*v.X - sin*v.Y, Y: sin*v.X + cos*v.Y}
}

// fillColor dims fills in debug mode so the overlaid outline stays distinct.
func fillColor(c cp.FColor, debug bool) cp.FColor {
	if !debug {
		return cp.FColor{R: c.R, G: c.G, B: c.B, A: 1}
	}
	return cp.FColor{R: 0.5 * c.R, G: 0.5 * c.G, B: 0.5 * c.B, A: 0.5}
}

func tileCoord(v cp.Vector) cp.Vector {
	return cp.Vector{X: v.X / TextureTileEdge, Y: v.Y / TextureTileEdge}
}
