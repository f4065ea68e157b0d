package render

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestPointBatchAutoFlush(t *testing.T) {
	r, target := newTestRenderer(nil)
	for i := 0; i < maxPointVertices; i++ {
		r.DrawPoint(cp.Vector{X: float64(i)}, 4, cp.FColor{A: 1})
	}
	if len(target.draws) != 0 {
		t.Fatalf("batch should hold up to %d points without drawing, got %d calls", maxPointVertices, len(target.draws))
	}

	r.DrawPoint(cp.Vector{}, 4, cp.FColor{A: 1})
	if len(target.draws) != 1 {
		t.Fatalf("overflow should flush exactly once, got %d calls", len(target.draws))
	}
	if target.draws[0].vertices != 4*maxPointVertices {
		t.Fatalf("flush should expand every point to a quad, got %d vertices", target.draws[0].vertices)
	}
	if got := len(r.points.entries); got != 1 {
		t.Fatalf("overflowing point should remain queued, got %d entries", got)
	}
}

func TestLineBatchAutoFlush(t *testing.T) {
	r, target := newTestRenderer(nil)
	for i := 0; i < maxLineVertices/2; i++ {
		r.DrawSegment(cp.Vector{X: float64(i)}, cp.Vector{X: float64(i), Y: 1}, cp.FColor{A: 1})
	}
	if len(target.draws) != 0 {
		t.Fatalf("batch should hold %d segments without drawing, got %d calls", maxLineVertices/2, len(target.draws))
	}

	r.DrawSegment(cp.Vector{}, cp.Vector{Y: 1}, cp.FColor{A: 1})
	if len(target.draws) != 1 {
		t.Fatalf("overflow should flush exactly once, got %d calls", len(target.draws))
	}
	if got := len(r.lines.entries); got != 2 {
		t.Fatalf("overflowing segment should remain queued, got %d entries", got)
	}
}

func TestTriangleBatchAutoFlush(t *testing.T) {
	r, target := newTestRenderer(nil)
	tri := []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	for i := 0; i < maxTriangleVertices/3; i++ {
		r.DrawSolidPolygon(tri, cp.FColor{A: 1})
	}
	if len(target.draws) != 0 {
		t.Fatalf("batch should hold %d triangles without drawing, got %d calls", maxTriangleVertices/3, len(target.draws))
	}

	r.DrawSolidPolygon(tri, cp.FColor{A: 1})
	if len(target.draws) != 1 {
		t.Fatalf("overflow should flush exactly once, got %d calls", len(target.draws))
	}
	if got := len(r.triangles.entries); got != 3 {
		t.Fatalf("overflowing triangle should remain queued, got %d entries", got)
	}
}

func TestLineFlushExpandsToQuads(t *testing.T) {
	r, target := newTestRenderer(nil)
	r.DrawSegment(cp.Vector{}, cp.Vector{X: 2}, cp.FColor{R: 1, A: 1})
	r.DrawSegment(cp.Vector{Y: 1}, cp.Vector{X: 2, Y: 1}, cp.FColor{G: 1, A: 1})
	r.Flush()

	if len(target.draws) != 1 {
		t.Fatalf("expected one draw call, got %d", len(target.draws))
	}
	if target.draws[0].vertices != 8 || target.draws[0].indices != 12 {
		t.Fatalf("two segments should expand to 8 vertices / 12 indices, got %d/%d",
			target.draws[0].vertices, target.draws[0].indices)
	}
}
