package harmonograph

import (
	"fmt"
	"image/color"
	"math"

	"github.com/jletroui/rcurves/colorpicker"
	"github.com/jletroui/rcurves/curve"
	"github.com/jletroui/rcurves/misc"
)

const (
	sizeRatio = 0.9
	nbIter    = 30000
	tStep     = 0.015
	lineWidth = 1
)

// Pendulum indexes into the pendulums array.
const (
	paperX = iota
	paperY
	penX
	penY
)

// Adjustable parameter pages.
const (
	paramAmp = iota
	paramFreq
	paramPhase
	paramDecay
	paramStartColor
	paramEndColor
)

var paramNames = []string{
	"< [amp]  freq   phase   decay   startColor   endColor >",
	"<  amp  [freq]  phase   decay   startColor   endColor >",
	"<  amp   freq  [phase]  decay   startColor   endColor >",
	"<  amp   freq   phase  [decay]  startColor   endColor >",
	"<  amp   freq   phase   decay  [startColor]  endColor >",
	"<  amp   freq   phase   decay   startColor  [endColor]>",
}

// pendulum contributes amp*sin(freq*t+phase)*exp(-decay*t) to one axis.
// The two pendulums sharing an axis should have amplitudes summing to 1.
type pendulum struct {
	amp   float64
	freq  float64
	phase float64
	decay float64
}

func (p *pendulum) position(t float64) float64 {
	return p.amp * math.Sin(p.freq*t+p.phase) * math.Exp(-p.decay*t)
}

func (p *pendulum) paramValue(i int) float64 {
	switch i {
	case paramAmp:
		return p.amp
	case paramFreq:
		return p.freq
	case paramPhase:
		return p.phase
	case paramDecay:
		return p.decay
	}
	panic(fmt.Sprintf("asked for an unknown pendulum parameter index: %d", i))
}

// Harmonograph simulates a pen attached to two damped pendulums drawing on
// a paper attached to two more.
type Harmonograph struct {
	curve.DefaultHandlers

	pendulums        [4]*pendulum
	displayedParam   int
	pins             curve.AxisPinner
	axisToPendulum   map[curve.Axis]int
	startColorPicker *colorpicker.ColorPicker
	endColorPicker   *colorpicker.ColorPicker
}

func New() *Harmonograph {
	return &Harmonograph{
		pendulums: [4]*pendulum{
			{amp: 0.25, freq: 7.5, phase: 0, decay: 0.0004},
			{amp: 0.25, freq: 4, phase: 0, decay: 0.0004},
			{amp: 0.75, freq: 1, phase: 0, decay: 0.0004},
			{amp: 0.75, freq: 2, phase: 0, decay: 0.0004},
		},
		displayedParam: paramAmp,
		pins:           curve.NewAxisPinner(),
		axisToPendulum: map[curve.Axis]int{
			curve.AxisLeftStickX:  paperX,
			curve.AxisLeftStickY:  paperY,
			curve.AxisRightStickX: penX,
			curve.AxisRightStickY: penY,
		},
		startColorPicker: colorpicker.New(colorpicker.NewHSV(180, 0.75, 0.75), 1./3., curve.Vec2{X: -1. / 4., Y: 0}),
		endColorPicker:   colorpicker.New(colorpicker.NewHSV(60, 0.75, 0.75), 1./3., curve.Vec2{X: 1. / 4., Y: 0}),
	}
}

func (h *Harmonograph) point(radiusX float64, radiusY float64, t float64) curve.Vec2 {
	return curve.Vec2{
		X: float32(radiusX * (h.pendulums[paperX].position(t) + h.pendulums[penX].position(t))),
		Y: float32(radiusY * (h.pendulums[paperY].position(t) + h.pendulums[penY].position(t))),
	}
}

// color folds t onto [0, pi] so the stroke fades from the start color to
// the end color and back once per 2*pi of simulated time.
func (h *Harmonograph) color(t float64) color.RGBA {
	t = math.Mod(t, 2*math.Pi)
	interpolation := t / math.Pi
	if t > math.Pi {
		interpolation = 1 - (t-math.Pi)/math.Pi
	}
	return misc.LinearInterpolationRGB(h.startColorPicker.Color(), h.endColorPicker.Color(), interpolation)
}

func normalize(value float32, upper float64) float64 {
	return (float64(value) + 1) / 2 * upper
}

func (h *Harmonograph) adjustAmpForAxis(axis curve.Axis, value float32) {
	newValue := normalize(value, 1)

	switch axis {
	case curve.AxisLeftStickY:
		h.pendulums[paperY].amp = newValue
		h.pendulums[penY].amp = 1 - newValue
	case curve.AxisRightStickX:
		h.pendulums[paperX].amp = newValue
		h.pendulums[penX].amp = 1 - newValue
	}
}

func (h *Harmonograph) adjustFreqForAxis(axis curve.Axis, value float32) {
	newValue := math.Round(normalize(value, 20)) / 2
	h.pendulums[h.axisToPendulum[axis]].freq = newValue
}

func (h *Harmonograph) adjustPhaseForAxis(axis curve.Axis, value float32) {
	h.pendulums[h.axisToPendulum[axis]].phase = normalize(value, math.Pi/2)
}

func (h *Harmonograph) adjustDecayForAxis(axis curve.Axis, value float32) {
	h.pendulums[h.axisToPendulum[axis]].decay = normalize(value, 0.002)
}

func (h *Harmonograph) displayedColorPicker() *colorpicker.ColorPicker {
	switch h.displayedParam {
	case paramStartColor:
		return h.startColorPicker
	case paramEndColor:
		return h.endColorPicker
	}
	return nil
}

func (h *Harmonograph) ComputeDrawables(dest curve.Vec2, size curve.Vec2) ([]curve.Drawable, error) {
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("cannot render into a %gx%g pixel area", size.X, size.Y)
	}

	radius := size.Scale(sizeRatio / 2)
	mesh := curve.NewMesh()
	previousPt := h.point(float64(radius.X), float64(radius.Y), 0)
	for i := 0; i < nbIter; i++ {
		t := float64(i) * tStep
		pt := h.point(float64(radius.X), float64(radius.Y), t)
		if err := mesh.Line([]curve.Vec2{previousPt, pt}, lineWidth, h.color(t)); err != nil {
			return nil, err
		}
		previousPt = pt
	}
	drawables := []curve.Drawable{
		curve.MeshDrawable{Mesh: mesh, Params: curve.NewDrawParam().WithDest(dest)},
	}

	if picker := h.displayedColorPicker(); picker != nil {
		picker.SetView(size, dest)
		pickerDrawable, err := picker.Meshes()
		if err != nil {
			return nil, err
		}
		drawables = append(drawables, pickerDrawable)
	}

	return drawables, nil
}

func (h *Harmonograph) AdjustForButton(btn curve.Button) {
	switch btn {
	case curve.ButtonDPadLeft:
		if h.displayedParam > 0 {
			h.displayedParam--
		}
	case curve.ButtonDPadRight:
		if h.displayedParam < len(paramNames)-1 {
			h.displayedParam++
		}
	case curve.ButtonLeftTrigger, curve.ButtonRightTrigger:
		h.pins.Pin()
	}

	if picker := h.displayedColorPicker(); picker != nil {
		picker.AdjustForButton(btn)
	}
}

func (h *Harmonograph) AdjustForAxis(axis curve.Axis, value float32) {
	if !h.pins.Track(axis, value) {
		return
	}

	switch h.displayedParam {
	case paramAmp:
		h.adjustAmpForAxis(axis, value)
	case paramFreq:
		h.adjustFreqForAxis(axis, value)
	case paramPhase:
		h.adjustPhaseForAxis(axis, value)
	case paramDecay:
		h.adjustDecayForAxis(axis, value)
	}

	if picker := h.displayedColorPicker(); picker != nil {
		picker.AdjustForAxis(axis, value)
	}
}

func (h *Harmonograph) AdjustForMouseButtonUp(btn curve.MouseButton, x float32, y float32, dragStart curve.Vec2) {
	if picker := h.displayedColorPicker(); picker != nil {
		picker.AdjustForClick(btn, x, y)
	}
}

func (h *Harmonograph) String() string {
	if h.displayedParam < paramStartColor {
		return fmt.Sprintf(
			"HARMONOGRAPH %s [Paper] x %-6.4g y %-6.4g [Pen] x %-6.4g y %-6.4g",
			paramNames[h.displayedParam],
			h.pendulums[paperX].paramValue(h.displayedParam),
			h.pendulums[paperY].paramValue(h.displayedParam),
			h.pendulums[penX].paramValue(h.displayedParam),
			h.pendulums[penY].paramValue(h.displayedParam),
		)
	}
	return fmt.Sprintf("HARMONOGRAPH %s", paramNames[h.displayedParam])
}

func (h *Harmonograph) ScreenshotFileName() string {
	name := "armono"
	for _, label := range []struct {
		prefix string
		p      *pendulum
	}{
		{"paperx", h.pendulums[paperX]},
		{"papery", h.pendulums[paperY]},
		{"penx", h.pendulums[penX]},
		{"peny", h.pendulums[penY]},
	} {
		name += fmt.Sprintf("_%s_amp%g_freq%g_ph%g_dec%g", label.prefix, label.p.amp, label.p.freq, label.p.phase, label.p.decay)
	}
	return name
}

func (h *Harmonograph) Name() string {
	return "Harmonograph"
}
