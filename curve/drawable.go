package curve

import (
	"errors"
	"image/color"
	"math"
)

// DrawParam places a drawable on screen. Dest is the top left corner in
// pixels, Scale multiplies the drawable's own coordinates and Z orders
// overlapping drawables (higher draws on top; equal z draws in emission
// order).
type DrawParam struct {
	Dest  Vec2
	Scale Vec2
	Z     int
}

func NewDrawParam() DrawParam {
	return DrawParam{Scale: Vec2{X: 1, Y: 1}}
}

func (dp DrawParam) WithDest(dest Vec2) DrawParam {
	dp.Dest = dest
	return dp
}

func (dp DrawParam) WithScale(scale Vec2) DrawParam {
	dp.Scale = scale
	return dp
}

func (dp DrawParam) WithZ(z int) DrawParam {
	dp.Z = z
	return dp
}

// Drawable is one payload handed to the host renderer: either a pixel
// image or a mesh of colored primitives.
type Drawable interface {
	Param() DrawParam
}

// ImageDrawable is a rgba pixel buffer (4 bytes per pixel, row major).
type ImageDrawable struct {
	Pixels []uint8
	Width  int
	Height int
	Params DrawParam
}

func (d ImageDrawable) Param() DrawParam {
	return d.Params
}

// MeshDrawable is an ordered list of primitives sharing one placement.
type MeshDrawable struct {
	Mesh   *Mesh
	Params DrawParam
}

func (d MeshDrawable) Param() DrawParam {
	return d.Params
}

// Mesh accumulates primitives in draw order. It is data only: turning the
// primitives into triangles or pixels is the host renderer's job.
type Mesh struct {
	Primitives []Primitive
}

func NewMesh() *Mesh {
	return &Mesh{}
}

type Primitive interface {
	primitive()
}

type Line struct {
	Points []Vec2
	Width  float32
	Color  color.RGBA
}

type FillRect struct {
	X, Y, W, H float32
	Color      color.RGBA
}

type StrokeCircle struct {
	Center      Vec2
	Radius      float32
	StrokeWidth float32
	Color       color.RGBA
}

type Triangle struct {
	A, B, C Vec2
	Color   color.RGBA
}

func (Line) primitive()         {}
func (FillRect) primitive()     {}
func (StrokeCircle) primitive() {}
func (Triangle) primitive()     {}

func (m *Mesh) Line(points []Vec2, width float32, c color.RGBA) error {
	if len(points) < 2 {
		return errors.New("a line needs at least two points")
	}
	for _, p := range points {
		if math.IsNaN(float64(p.X)) || math.IsNaN(float64(p.Y)) {
			return errors.New("line point is NaN")
		}
	}
	m.Primitives = append(m.Primitives, Line{Points: points, Width: width, Color: c})
	return nil
}

func (m *Mesh) Rectangle(x float32, y float32, w float32, h float32, c color.RGBA) {
	m.Primitives = append(m.Primitives, FillRect{X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Mesh) Circle(center Vec2, radius float32, strokeWidth float32, c color.RGBA) {
	m.Primitives = append(m.Primitives, StrokeCircle{Center: center, Radius: radius, StrokeWidth: strokeWidth, Color: c})
}

func (m *Mesh) Triangle(a Vec2, b Vec2, c Vec2, col color.RGBA) {
	m.Primitives = append(m.Primitives, Triangle{A: a, B: b, C: c, Color: col})
}
