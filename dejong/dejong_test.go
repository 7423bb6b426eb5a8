package dejong

import (
	"math"
	"testing"

	"github.com/jletroui/rcurves/curve"
)

func TestBatchCountSplitsAtTheTriangleCap(t *testing.T) {
	if batchCount(1) != 1 {
		t.Errorf("expected a single point to take one mesh, got %d", batchCount(1))
	}
	if batchCount(maxTrianglesPerMesh) != 1 {
		t.Errorf("expected an orbit filling the cap exactly to fit one mesh, got %d", batchCount(maxTrianglesPerMesh))
	}
	if batchCount(maxTrianglesPerMesh+1) != 2 {
		t.Errorf("expected one point over the cap to spill into a second mesh, got %d", batchCount(maxTrianglesPerMesh+1))
	}
	if batchCount(5*maxTrianglesPerMesh) != 5 {
		t.Errorf("expected five full meshes, got %d", batchCount(5*maxTrianglesPerMesh))
	}
}

func TestNextPointFromOrigin(t *testing.T) {
	a := New()

	next := a.nextPoint(curve.Vec2{})
	if next.X != -1 || next.Y != -1 {
		t.Errorf("expected the origin to map to (-1, -1), got (%g, %g)", next.X, next.Y)
	}
}

func TestNormalizeMapsStickRangeToBounds(t *testing.T) {
	if got := normalize(-1, -math.Pi, math.Pi); got != -math.Pi {
		t.Errorf("expected a full left deflection to map to -pi, got %g", got)
	}
	if got := normalize(1, -math.Pi, math.Pi); got != math.Pi {
		t.Errorf("expected a full right deflection to map to pi, got %g", got)
	}
	if got := normalize(0, -math.Pi, math.Pi); got != 0 {
		t.Errorf("expected a centered stick to map to 0, got %g", got)
	}
}

func TestComputeDrawablesEmitsOneTrianglePerIteration(t *testing.T) {
	a := New()
	a.nbIter = 5000

	drawables, err := a.ComputeDrawables(curve.Vec2{X: 400, Y: 300}, curve.Vec2{X: 800, Y: 600})
	if err != nil {
		t.Fatalf("computing the attractor: %s", err)
	}
	if len(drawables) != 1 {
		t.Fatalf("expected a single mesh below the batch cap, got %d", len(drawables))
	}
	mesh, ok := drawables[0].(curve.MeshDrawable)
	if !ok {
		t.Fatal("expected a mesh drawable")
	}
	if len(mesh.Mesh.Primitives) != 5000 {
		t.Errorf("expected 5000 triangles, got %d", len(mesh.Mesh.Primitives))
	}
	if mesh.Param().Scale.X != mesh.Param().Scale.Y {
		t.Error("expected a uniform scale")
	}
}

func TestComputeDrawablesRejectsDegenerateSizes(t *testing.T) {
	a := New()
	if _, err := a.ComputeDrawables(curve.Vec2{}, curve.Vec2{X: 0, Y: 600}); err == nil {
		t.Error("expected an error for a zero width viewport")
	}
}

func TestButtonsAdjustIterations(t *testing.T) {
	a := New()

	a.AdjustForButton(curve.ButtonEast)
	if a.nbIter != 2*defaultIterations {
		t.Errorf("expected east to double the iterations, got %d", a.nbIter)
	}
	a.AdjustForButton(curve.ButtonSouth)
	a.AdjustForButton(curve.ButtonSouth)
	if a.nbIter != defaultIterations/2 {
		t.Errorf("expected two souths to halve the iterations, got %d", a.nbIter)
	}
	a.AdjustForButton(curve.ButtonNorth)
	if a.nbIter != defaultIterations {
		t.Errorf("expected north to reset the iterations, got %d", a.nbIter)
	}
}

func TestAxisEventsArePinnedByTriggers(t *testing.T) {
	a := New()

	a.AdjustForAxis(curve.AxisLeftStickX, 1)
	if a.a != math.Pi {
		t.Errorf("expected a full deflection to set a to pi, got %g", a.a)
	}

	a.AdjustForButton(curve.ButtonLeftTrigger)
	a.AdjustForAxis(curve.AxisLeftStickX, 0.5)
	if a.a != math.Pi {
		t.Errorf("expected the pinned parameter to stay at pi, got %g", a.a)
	}

	a.AdjustForAxis(curve.AxisLeftStickX, 0)
	a.AdjustForAxis(curve.AxisLeftStickX, -1)
	if a.a != -math.Pi {
		t.Errorf("expected the release to let a move to -pi, got %g", a.a)
	}
	if a.b != -2.3 {
		t.Errorf("expected b untouched at its default, got %g", a.b)
	}
}
