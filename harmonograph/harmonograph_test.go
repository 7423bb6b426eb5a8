package harmonograph

import (
	"math"
	"strings"
	"testing"

	"github.com/jletroui/rcurves/curve"
)

func TestPendulumPosition(t *testing.T) {
	p := &pendulum{amp: 0.5, freq: 2, phase: math.Pi / 2, decay: 0}

	if got := p.position(0); got != 0.5 {
		t.Errorf("expected the undamped pendulum at its amplitude at t 0, got %g", got)
	}

	damped := &pendulum{amp: 1, freq: 1, phase: math.Pi / 2, decay: 0.1}
	if got := damped.position(0); got != 1 {
		t.Errorf("expected no damping at t 0, got %g", got)
	}
	later := damped.position(2 * math.Pi)
	if math.Abs(later) >= 1 {
		t.Errorf("expected the damped swing to shrink, got %g", later)
	}
}

func TestPendulumParamValuePanicsOnUnknownIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown parameter index")
		}
	}()
	p := &pendulum{}
	p.paramValue(6)
}

func TestColorFoldsOverThePhase(t *testing.T) {
	h := New()

	start := h.startColorPicker.Color()
	end := h.endColorPicker.Color()

	if got := h.color(0); got != start {
		t.Errorf("expected the stroke to start at the start color %v, got %v", start, got)
	}
	atPi := h.color(math.Pi)
	if atPi.R != end.R || atPi.G != end.G || atPi.B != end.B {
		t.Errorf("expected the stroke at t pi to reach the end color %v, got %v", end, atPi)
	}
	backAtTwoPi := h.color(2 * math.Pi)
	if backAtTwoPi != start {
		t.Errorf("expected the stroke to fold back to the start color at 2 pi, got %v", backAtTwoPi)
	}
}

func TestAmpAxisKeepsAxisAmplitudesComplementary(t *testing.T) {
	h := New()

	h.AdjustForAxis(curve.AxisLeftStickY, 0.5)
	paper := h.pendulums[paperY].amp
	pen := h.pendulums[penY].amp
	if paper+pen != 1 {
		t.Errorf("expected the paper and pen amplitudes to sum to 1, got %g", paper+pen)
	}
	if paper != 0.75 {
		t.Errorf("expected a 0.5 deflection to set the paper amplitude to 0.75, got %g", paper)
	}
}

func TestFreqAxisSnapsToHalfSteps(t *testing.T) {
	h := New()
	h.displayedParam = paramFreq

	h.AdjustForAxis(curve.AxisRightStickX, 0)
	if h.pendulums[penX].freq != 5 {
		t.Errorf("expected a centered stick to snap the frequency to 5, got %g", h.pendulums[penX].freq)
	}

	h.AdjustForAxis(curve.AxisLeftStickY, 0.31)
	freq := h.pendulums[paperY].freq
	if freq != math.Round(freq*2)/2 {
		t.Errorf("expected the frequency snapped to half steps, got %g", freq)
	}
}

func TestDPadNavigationClampsToParamPages(t *testing.T) {
	h := New()

	h.AdjustForButton(curve.ButtonDPadLeft)
	if h.displayedParam != paramAmp {
		t.Errorf("expected the first page to stay put, got %d", h.displayedParam)
	}
	for i := 0; i < 10; i++ {
		h.AdjustForButton(curve.ButtonDPadRight)
	}
	if h.displayedParam != paramEndColor {
		t.Errorf("expected the last page to stay put, got %d", h.displayedParam)
	}
}

func TestColorPagesRouteEventsToThePicker(t *testing.T) {
	h := New()
	for h.displayedParam != paramStartColor {
		h.AdjustForButton(curve.ButtonDPadRight)
	}

	before := h.startColorPicker.Pick().Value
	h.AdjustForButton(curve.ButtonNorth)
	if h.startColorPicker.Pick().Value != before+0.05 {
		t.Errorf("expected north to raise the start picker value, got %g", h.startColorPicker.Pick().Value)
	}
}

func TestComputeDrawablesAddsThePickerOnColorPages(t *testing.T) {
	h := New()
	dest := curve.Vec2{X: 200, Y: 150}
	size := curve.Vec2{X: 400, Y: 300}

	drawables, err := h.ComputeDrawables(dest, size)
	if err != nil {
		t.Fatalf("computing the figure: %s", err)
	}
	if len(drawables) != 1 {
		t.Fatalf("expected only the stroke mesh on a pendulum page, got %d drawables", len(drawables))
	}

	h.displayedParam = paramEndColor
	drawables, err = h.ComputeDrawables(dest, size)
	if err != nil {
		t.Fatalf("computing the figure with a picker: %s", err)
	}
	if len(drawables) != 2 {
		t.Fatalf("expected the stroke mesh and the picker, got %d drawables", len(drawables))
	}
}

func TestStatusStringNamesTheParamPage(t *testing.T) {
	h := New()

	if !strings.Contains(h.String(), "[amp]") {
		t.Errorf("expected the status to highlight the amp page, got %q", h.String())
	}
	h.displayedParam = paramStartColor
	if strings.Contains(h.String(), "[Paper]") {
		t.Error("expected no pendulum values on a color page")
	}
}

func TestScreenshotFileNameEncodesEveryPendulum(t *testing.T) {
	h := New()

	name := h.ScreenshotFileName()
	for _, fragment := range []string{"paperx", "papery", "penx", "peny", "freq7.5", "dec0.0004"} {
		if !strings.Contains(name, fragment) {
			t.Errorf("expected the file name to contain %q, got %q", fragment, name)
		}
	}
}
