package colorpicker

import (
	"fmt"
	"image/color"

	"github.com/crazy3lf/colorconv"
	"github.com/jletroui/rcurves/curve"
)

const (
	spaceSize         = 0.75
	targetSize        = 0.02
	targetStrokeWidth = 0.005
	margin            = 0.05
	stepsH            = 360
	stepsV            = 64
	stepsX            = spaceSize / stepsH
	stepsY            = spaceSize / stepsV
	valueIncrement    = 0.05
)

var targetColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// HSV is a hue [0, 360) / saturation [0, 1] / value [0, 1] triple.
type HSV struct {
	Hue        float64
	Saturation float64
	Value      float64
}

func NewHSV(hue float64, saturation float64, value float64) HSV {
	if hue < 0 || hue >= 360 {
		panic(fmt.Sprintf("hue must be in [0, 360), got %g", hue))
	}
	return HSV{Hue: hue, Saturation: saturation, Value: value}
}

// Color converts to rgb. The fields are range checked on construction and
// adjustment, so a conversion failure is an invariant breakage.
func (hsv HSV) Color() color.RGBA {
	r, g, b, err := colorconv.HSVToRGB(hsv.Hue, hsv.Saturation, hsv.Value)
	if err != nil {
		panic(fmt.Sprintf("converting hsv(%g, %g, %g): %s", hsv.Hue, hsv.Saturation, hsv.Value, err))
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ColorPicker is an embeddable hue/saturation picking widget. It lives at
// a fixed placement ratio relative to the viewport center and draws a
// hue/saturation space at the current value level, a target ring on the
// current pick, a value bar and swatches of the picked color.
type ColorPicker struct {
	currentPick    HSV
	sizeRatio      float32
	placementRatio curve.Vec2

	lastSize float32
	lastDest curve.Vec2
}

func New(currentPick HSV, sizeRatio float32, placementRatio curve.Vec2) *ColorPicker {
	return &ColorPicker{
		currentPick:    currentPick,
		sizeRatio:      sizeRatio,
		placementRatio: placementRatio,
	}
}

func (cp *ColorPicker) Color() color.RGBA {
	return cp.currentPick.Color()
}

func (cp *ColorPicker) Pick() HSV {
	return cp.currentPick
}

// SetView records where the widget sits for the current frame, from the
// viewport center and size. Meshes and click handling use the recorded
// placement.
func (cp *ColorPicker) SetView(size curve.Vec2, dest curve.Vec2) {
	cp.lastSize = size.MinElement() * cp.sizeRatio
	cp.lastDest = dest.Add(size.ScaleBy(cp.placementRatio))
}

// Meshes builds the widget in unit space, scaled and placed through the
// draw params. Drawn above the fractal image.
func (cp *ColorPicker) Meshes() (curve.Drawable, error) {
	mesh := curve.NewMesh()

	// Color space
	for hi := 0; hi < stepsH; hi++ {
		for si := 0; si < stepsV; si++ {
			hue := float64(hi)
			saturation := float64(si) / stepsV
			r, g, b, err := colorconv.HSVToRGB(hue, saturation, cp.currentPick.Value)
			if err != nil {
				return nil, err
			}
			mesh.Rectangle(float32(hi)*stepsX, float32(si)*stepsY, stepsX, stepsY, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	// Target on the current pick
	targetCenter := curve.Vec2{
		X: float32(cp.currentPick.Hue) / 360 * spaceSize,
		Y: float32(cp.currentPick.Saturation) * spaceSize,
	}
	mesh.Circle(targetCenter, targetSize, targetStrokeWidth, targetColor)
	mesh.Rectangle(spaceSize, float32(1-cp.currentPick.Value)*spaceSize, margin, targetStrokeWidth, targetColor)

	// Picked color swatches
	picked := cp.currentPick.Color()
	mesh.Rectangle(0, spaceSize+margin, 1, 1-spaceSize-margin, picked)
	mesh.Rectangle(spaceSize+margin, 0, 1-spaceSize-margin, spaceSize+margin, picked)

	params := curve.NewDrawParam().
		WithDest(cp.lastDest.Sub(curve.Vec2{X: cp.lastSize / 2, Y: cp.lastSize / 2})).
		WithScale(curve.Vec2{X: cp.lastSize, Y: cp.lastSize}).
		WithZ(1)
	return curve.MeshDrawable{Mesh: mesh, Params: params}, nil
}

// AdjustForClick picks hue and saturation from a click inside the color
// space area.
func (cp *ColorPicker) AdjustForClick(btn curve.MouseButton, x float32, y float32) {
	if btn != curve.MouseButtonLeft {
		return
	}
	leftTop := cp.lastDest.Sub(curve.Vec2{X: cp.lastSize / 2, Y: cp.lastSize / 2})
	space := cp.lastSize * spaceSize
	diffX := x - leftTop.X
	diffY := y - leftTop.Y
	if diffX < 0 || diffX >= space || diffY < 0 || diffY >= space {
		return
	}
	cp.AdjustHue(float64(diffX/space) * 360)
	cp.AdjustSaturation(float64(diffY / space))
}

func (cp *ColorPicker) AdjustForButton(btn curve.Button) {
	switch btn {
	case curve.ButtonNorth:
		cp.IncrValue(valueIncrement)
	case curve.ButtonSouth:
		cp.IncrValue(-valueIncrement)
	}
}

func (cp *ColorPicker) AdjustForAxis(axis curve.Axis, value float32) {
	if axis == curve.AxisRightStickY {
		cp.IncrValue(float64(value) * valueIncrement)
	}
}

func (cp *ColorPicker) AdjustHue(hue float64) {
	if hue < 0 {
		hue = 0
	}
	if hue >= 360 {
		hue = 359.999
	}
	cp.currentPick.Hue = hue
}

func (cp *ColorPicker) AdjustSaturation(saturation float64) {
	if saturation < 0 {
		saturation = 0
	}
	if saturation > 1 {
		saturation = 1
	}
	cp.currentPick.Saturation = saturation
}

// IncrValue nudges the value component, clamped to [0, 1].
func (cp *ColorPicker) IncrValue(incr float64) {
	value := cp.currentPick.Value + incr
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	cp.currentPick.Value = value
}
