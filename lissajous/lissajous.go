package lissajous

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"sort"

	"github.com/jletroui/rcurves/curve"
)

const (
	margin          = 40.0
	maxLinkDistance = float32(200.0)
	dIncrement      = math.Pi / 18
	pointIncrement  = 100
	jitterIncrement = 0.002
	defaultPoints   = 500
	lineWidth       = 2.0
)

// Lissajous draws a parametric sine figure as a cloud of sampled points
// linked to their spatial neighbors, with link shade and transparency
// fading with distance.
type Lissajous struct {
	curve.DefaultHandlers

	a            float64
	b            float64
	d            float64
	nbPoints     int
	randomJitter float64
	rng          *rand.Rand
}

func New() *Lissajous {
	return &Lissajous{
		a:        2,
		b:        5,
		nbPoints: defaultPoints,
		rng:      rand.New(rand.NewSource(1)),
	}
}

func (l *Lissajous) location(radiusX float64, radiusY float64, t float64) curve.Vec2 {
	x := radiusX * math.Sin(l.a*t+l.d)
	y := radiusY * math.Sin(l.b*t)
	if l.randomJitter != 0 {
		x += (l.rng.Float64()*2 - 1) * l.randomJitter * radiusX
		y += (l.rng.Float64()*2 - 1) * l.randomJitter * radiusY
	}
	return curve.Vec2{X: float32(x), Y: float32(y)}
}

func (l *Lissajous) points(radiusX float64, radiusY float64) []curve.Vec2 {
	points := make([]curve.Vec2, l.nbPoints)
	step := 2 * math.Pi / float64(l.nbPoints)
	for i := range points {
		points[i] = l.location(radiusX, radiusY, float64(i)*step)
	}
	return points
}

// ComputeDrawables links every sampled point to its neighbors closer than
// maxLinkDistance. Close links are dark and opaque, distant ones light and
// transparent, layered so darker links draw on top.
func (l *Lissajous) ComputeDrawables(dest curve.Vec2, size curve.Vec2) ([]curve.Drawable, error) {
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("cannot render into a %gx%g pixel area", size.X, size.Y)
	}

	points := l.points(float64(size.X)/2-margin, float64(size.Y)/2-margin)
	index := newGridIndex(points, maxLinkDistance)
	layers := make(map[int]*curve.Mesh)

	for _, point := range points {
		for _, neighbor := range index.neighbors(point) {
			distance := float32(math.Hypot(float64(neighbor.X-point.X), float64(neighbor.Y-point.Y)))
			if distance == 0 {
				continue
			}
			grayLevel := 0.6 * distance / maxLinkDistance
			transparency := 1 - distance/maxLinkDistance
			linkColor := color.RGBA{
				R: uint8(grayLevel * 255),
				G: uint8(grayLevel * 255),
				B: uint8(grayLevel * 255),
				A: uint8(transparency * 255),
			}
			z := -int(grayLevel * 5)
			mesh, ok := layers[z]
			if !ok {
				mesh = curve.NewMesh()
				layers[z] = mesh
			}
			if err := mesh.Line([]curve.Vec2{point, neighbor}, lineWidth, linkColor); err != nil {
				return nil, err
			}
		}
	}

	zOrder := make([]int, 0, len(layers))
	for z := range layers {
		zOrder = append(zOrder, z)
	}
	sort.Ints(zOrder)

	drawables := make([]curve.Drawable, 0, len(zOrder))
	for _, z := range zOrder {
		drawables = append(drawables, curve.MeshDrawable{
			Mesh:   layers[z],
			Params: curve.NewDrawParam().WithDest(dest).WithZ(z),
		})
	}
	return drawables, nil
}

func (l *Lissajous) AdjustForButton(btn curve.Button) {
	switch btn {
	case curve.ButtonDPadDown:
		l.a--
	case curve.ButtonDPadUp:
		l.a++
	case curve.ButtonDPadLeft:
		l.b--
	case curve.ButtonDPadRight:
		l.b++
	case curve.ButtonLeftTrigger:
		l.d -= dIncrement
	case curve.ButtonRightTrigger:
		l.d += dIncrement
	case curve.ButtonSouth:
		if l.nbPoints > pointIncrement {
			l.nbPoints -= pointIncrement
		}
	case curve.ButtonEast:
		l.nbPoints += pointIncrement
	case curve.ButtonWest:
		if l.randomJitter >= jitterIncrement {
			l.randomJitter -= jitterIncrement
		}
	case curve.ButtonNorth:
		l.randomJitter += jitterIncrement
	}
}

func (l *Lissajous) String() string {
	return fmt.Sprintf(
		"LISSAJOUS a: %g b: %g d: %g points: %d jitter: %g",
		l.a, l.b, l.d, l.nbPoints, l.randomJitter,
	)
}

func (l *Lissajous) ScreenshotFileName() string {
	return fmt.Sprintf(
		"lissajou_a%g_b%g_d%g_pts%d_jit%g",
		l.a, l.b, l.d, l.nbPoints, l.randomJitter,
	)
}

func (l *Lissajous) Name() string {
	return "Lissajous figure"
}
