package curve

import (
	"image/color"
	"math"
	"testing"
)

var black = color.RGBA{A: 255}

func TestMeshLineRejectsDegenerateInput(t *testing.T) {
	mesh := NewMesh()

	if err := mesh.Line([]Vec2{{X: 1, Y: 1}}, 1, black); err == nil {
		t.Error("expected an error for a single point line")
	}
	nan := float32(math.NaN())
	if err := mesh.Line([]Vec2{{X: 0, Y: 0}, {X: nan, Y: 1}}, 1, black); err == nil {
		t.Error("expected an error for a NaN point")
	}
	if len(mesh.Primitives) != 0 {
		t.Errorf("expected rejected lines to leave the mesh empty, got %d primitives", len(mesh.Primitives))
	}
}

func TestMeshKeepsEmissionOrder(t *testing.T) {
	mesh := NewMesh()
	mesh.Rectangle(0, 0, 1, 1, black)
	mesh.Circle(Vec2{}, 1, 0.1, black)
	if err := mesh.Line([]Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}, 1, black); err != nil {
		t.Fatalf("adding a line: %s", err)
	}
	mesh.Triangle(Vec2{}, Vec2{X: 1}, Vec2{Y: 1}, black)

	if len(mesh.Primitives) != 4 {
		t.Fatalf("expected 4 primitives, got %d", len(mesh.Primitives))
	}
	if _, ok := mesh.Primitives[0].(FillRect); !ok {
		t.Error("expected the rectangle first")
	}
	if _, ok := mesh.Primitives[1].(StrokeCircle); !ok {
		t.Error("expected the circle second")
	}
	if _, ok := mesh.Primitives[2].(Line); !ok {
		t.Error("expected the line third")
	}
	if _, ok := mesh.Primitives[3].(Triangle); !ok {
		t.Error("expected the triangle last")
	}
}

func TestDrawParamBuilders(t *testing.T) {
	param := NewDrawParam()
	if param.Scale.X != 1 || param.Scale.Y != 1 {
		t.Errorf("expected an identity scale by default, got (%g, %g)", param.Scale.X, param.Scale.Y)
	}

	placed := param.WithDest(Vec2{X: 10, Y: 20}).WithScale(Vec2{X: 2, Y: 3}).WithZ(-1)
	if placed.Dest.X != 10 || placed.Dest.Y != 20 || placed.Scale.X != 2 || placed.Scale.Y != 3 || placed.Z != -1 {
		t.Errorf("unexpected placed params %+v", placed)
	}
	if param.Dest.X != 0 || param.Z != 0 {
		t.Error("expected the builders to leave the original params untouched")
	}
}

func TestVec2Helpers(t *testing.T) {
	v := Vec2{X: 3, Y: 4}

	if sum := v.Add(Vec2{X: 1, Y: 2}); sum.X != 4 || sum.Y != 6 {
		t.Errorf("unexpected sum (%g, %g)", sum.X, sum.Y)
	}
	if diff := v.Sub(Vec2{X: 1, Y: 2}); diff.X != 2 || diff.Y != 2 {
		t.Errorf("unexpected difference (%g, %g)", diff.X, diff.Y)
	}
	if scaled := v.Scale(2); scaled.X != 6 || scaled.Y != 8 {
		t.Errorf("unexpected scale (%g, %g)", scaled.X, scaled.Y)
	}
	if prod := v.ScaleBy(Vec2{X: 2, Y: 0.5}); prod.X != 6 || prod.Y != 2 {
		t.Errorf("unexpected component product (%g, %g)", prod.X, prod.Y)
	}
	if v.MinElement() != 3 {
		t.Errorf("unexpected min element %g", v.MinElement())
	}
}
