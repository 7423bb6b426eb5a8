package mandelbrot

import (
	"errors"
	"fmt"
	"math"

	"github.com/jletroui/rcurves/curve"
)

// Point is a position in the complex plane: X is the real part, Y the
// imaginary part.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x float64, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// ViewBox maps between screen pixels and plane coordinates for one frame.
// It is a pure function of its four inputs: identical inputs always build
// an identical mapping.
//
// The transform is isotropic: only the horizontal ratio is used for both
// axes, so BoxSize.Y is expected to track BoxSize.X proportionally to the
// screen aspect ratio. Nothing enforces this; callers that break it get a
// distorted image.
type ViewBox struct {
	ScreenCenter curve.Vec2
	ScreenSize   curve.Vec2
	BoxCenter    Point
	BoxSize      Point

	// Ratio is plane units per pixel: BoxSize.X / ScreenSize.X.
	Ratio      float64
	PixelCount int

	screenMinX   int
	screenMinY   int
	screenWidth  int
	screenHeight int
}

// NewViewBox builds the mapping. A screen smaller than one pixel in either
// dimension has no usable transform and is rejected.
func NewViewBox(screenCenter curve.Vec2, screenSize curve.Vec2, boxCenter Point, boxSize Point) (ViewBox, error) {
	if screenSize.X < 1 || screenSize.Y < 1 {
		return ViewBox{}, fmt.Errorf("view box needs at least one pixel in each dimension, got %gx%g", screenSize.X, screenSize.Y)
	}

	width := int(math.Round(float64(screenSize.X)))
	height := int(math.Round(float64(screenSize.Y)))

	return ViewBox{
		ScreenCenter: screenCenter,
		ScreenSize:   screenSize,
		BoxCenter:    boxCenter,
		BoxSize:      boxSize,
		Ratio:        boxSize.X / float64(screenSize.X),
		PixelCount:   width * height,
		screenMinX:   int(math.Round(float64(screenCenter.X - screenSize.X/2))),
		screenMinY:   int(math.Round(float64(screenCenter.Y - screenSize.Y/2))),
		screenWidth:  width,
		screenHeight: height,
	}, nil
}

// PlanePointForPixelIndex recovers the screen pixel from a flat buffer
// index (row major, width as stride) and converts it to the plane.
func (v *ViewBox) PlanePointForPixelIndex(pixelIndex int) Point {
	screenShiftX := pixelIndex % v.screenWidth
	screenShiftY := pixelIndex / v.screenWidth

	return v.PlanePoint(v.screenMinX+screenShiftX, v.screenMinY+screenShiftY)
}

// PlanePoint converts an absolute screen pixel to plane coordinates.
func (v *ViewBox) PlanePoint(screenPixelX int, screenPixelY int) Point {
	return Point{
		X: (float64(screenPixelX)-float64(v.ScreenCenter.X))*v.Ratio + v.BoxCenter.X,
		Y: (float64(screenPixelY)-float64(v.ScreenCenter.Y))*v.Ratio + v.BoxCenter.Y,
	}
}

// PixelForPlanePoint is the inverse of PlanePoint. Used to place overlays
// (known circles, iteration traces) and to re-center on a click.
func (v *ViewBox) PixelForPlanePoint(planePoint Point) curve.Vec2 {
	return curve.Vec2{
		X: float32((planePoint.X-v.BoxCenter.X)/v.Ratio) + v.ScreenCenter.X,
		Y: float32((planePoint.Y-v.BoxCenter.Y)/v.Ratio) + v.ScreenCenter.Y,
	}
}

// PixelIndexForScreenPoint maps a screen coordinate to the flat buffer
// index, for point inspection under the cursor.
func (v *ViewBox) PixelIndexForScreenPoint(x float32, y float32) (int, error) {
	ix := int(math.Round(float64(x))) - v.screenMinX
	iy := int(math.Round(float64(y))) - v.screenMinY
	if ix < 0 || ix >= v.screenWidth || iy < 0 || iy >= v.screenHeight {
		return 0, errors.New("screen point is outside the view box")
	}
	return iy*v.screenWidth + ix, nil
}
