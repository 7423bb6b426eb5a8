// Inspiration: http://paulbourke.net/fractals/peterdejong/
package dejong

import (
	"fmt"
	"image/color"
	"math"

	"github.com/jletroui/rcurves/curve"
)

const (
	maxTrianglesPerMesh = 2_560_000
	sizeRatio           = 0.9
	defaultIterations   = 80000
)

// Attractor iterates the Peter de Jong map and plots every visited point
// as a tiny triangle. Parameters a..d live in [-pi, pi].
type Attractor struct {
	curve.DefaultHandlers

	a      float64
	b      float64
	c      float64
	d      float64
	nbIter int
	pins   curve.AxisPinner
}

func New() *Attractor {
	return &Attractor{
		a:      1.4,
		b:      -2.3,
		c:      2.4,
		d:      -2.1,
		nbIter: defaultIterations,
		pins:   curve.NewAxisPinner(),
	}
}

func (a *Attractor) nextPoint(prev curve.Vec2) curve.Vec2 {
	return curve.Vec2{
		X: float32(math.Sin(a.a*float64(prev.Y)) - math.Cos(a.b*float64(prev.X))),
		Y: float32(math.Sin(a.c*float64(prev.X)) - math.Cos(a.d*float64(prev.Y))),
	}
}

// batchCount is how many meshes the orbit needs so no mesh exceeds the
// triangle cap. An orbit filling the cap exactly takes one batch.
func batchCount(points int) int {
	return (points + maxTrianglesPerMesh - 1) / maxTrianglesPerMesh
}

func normalize(value float32, lower float64, upper float64) float64 {
	norm := (float64(value) + 1) / 2
	return lower + norm*(upper-lower)
}

// ComputeDrawables plots the orbit in unit space, scaled through the draw
// params. Long orbits are split into several meshes so a single mesh stays
// below the triangle cap.
func (a *Attractor) ComputeDrawables(dest curve.Vec2, size curve.Vec2) ([]curve.Drawable, error) {
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("cannot render into a %gx%g pixel area", size.X, size.Y)
	}

	radius := size.Scale(sizeRatio / 5).MinElement()
	triSize := 1 / radius
	pointColor := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	if a.nbIter != defaultIterations {
		pointColor = color.RGBA{R: 76, G: 76, B: 76, A: 102}
	}

	var drawables []curve.Drawable
	point := curve.Vec2{}

	for batch := 0; batch < batchCount(a.nbIter); batch++ {
		mesh := curve.NewMesh()
		nTriangles := 0
		for batch*maxTrianglesPerMesh+nTriangles < a.nbIter && nTriangles < maxTrianglesPerMesh {
			mesh.Triangle(
				point,
				point.Add(curve.Vec2{X: triSize}),
				point.Add(curve.Vec2{Y: triSize}),
				pointColor,
			)
			point = a.nextPoint(point)
			nTriangles++
		}
		drawables = append(drawables, curve.MeshDrawable{
			Mesh:   mesh,
			Params: curve.NewDrawParam().WithDest(dest).WithScale(curve.Vec2{X: radius, Y: radius}),
		})
	}

	return drawables, nil
}

func (a *Attractor) AdjustForButton(btn curve.Button) {
	switch btn {
	case curve.ButtonLeftTrigger, curve.ButtonRightTrigger:
		a.pins.Pin()
	case curve.ButtonNorth:
		a.nbIter = defaultIterations
	case curve.ButtonSouth:
		a.nbIter /= 2
	case curve.ButtonEast:
		a.nbIter *= 2
	}
}

func (a *Attractor) AdjustForAxis(axis curve.Axis, value float32) {
	if !a.pins.Track(axis, value) {
		return
	}

	newValue := normalize(value, -math.Pi, math.Pi)
	switch axis {
	case curve.AxisLeftStickX:
		a.a = newValue
	case curve.AxisLeftStickY:
		a.b = newValue
	case curve.AxisRightStickX:
		a.c = newValue
	case curve.AxisRightStickY:
		a.d = newValue
	}
}

func (a *Attractor) String() string {
	return fmt.Sprintf(
		"DE JONG   a %-6.1f b %-6.1f c %-6.1f d %-6.1f   iter %d (A / B / Y)",
		a.a, a.b, a.c, a.d, a.nbIter,
	)
}

func (a *Attractor) ScreenshotFileName() string {
	return fmt.Sprintf(
		"dejong_a%g_b%g_c%g_d%g_iter%d",
		a.a, a.b, a.c, a.d, a.nbIter,
	)
}

func (a *Attractor) Name() string {
	return "De Jong attractor"
}
