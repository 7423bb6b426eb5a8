package mandelbrot

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/jletroui/rcurves/colorpicker"
	"github.com/jletroui/rcurves/curve"
)

const (
	paramZoomPan = iota
	paramMaxIterations
	paramOutColor
	paramAlmostInColor
)

var paramNames = [...]string{
	"< [pan]  iter   outColor   almostInColor >",
	"<  pan  [iter]  outColor   almostInColor >",
	"<  pan   iter  [outColor]  almostInColor >",
	"<  pan   iter   outColor  [almostInColor]>",
}

const (
	panStepPct           = 0.1
	zoomStepPct          = 0.25
	defaultMaxIterations = 100
	minMaxIterations     = 2
	defaultBoxLeftX      = -2.0
	defaultBoxRightX     = 0.5
	histogramPlotHeight  = 200.0
	paletteStripHeight   = 20.0
	crosshairRadius      = 12.0
)

var (
	red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	yellow = color.RGBA{R: 255, G: 220, B: 0, A: 255}
	grey   = color.RGBA{R: 180, G: 180, B: 180, A: 255}
)

// Set renders the Mandelbrot set and caches as much as it can between
// frames. 3 layers of cache invalidate in dependency order: the pixel
// buffers (on resize), the iteration pass (on any navigation change) and
// the color pass (on any of the former, or a picker change). Panning and
// zooming pay for a full recompute; a picker drag only re-runs the cheap
// color pass over the cached escape values.
type Set struct {
	boxCenter     Point
	boxSize       Point
	maxIterations int
	colorMode     ColorMode

	outColorPicker      *colorpicker.ColorPicker
	almostInColorPicker *colorpicker.ColorPicker
	displayedParam      int
	pins                curve.AxisPinner

	// Iterator tuning, forwarded to every pass.
	periodicityEpsilon             float64
	increasePeriodicityAfterCycles int
	workers                        int

	// Render cache
	colors          []color.RGBA
	pixels          []uint8
	iterationCounts []float64
	histogram       []int

	// Last known values for dirty checking
	lastSize          curve.Vec2
	lastColors        [2]color.RGBA
	lastBoxCenter     Point
	lastBoxSize       Point
	lastMaxIterations int
	lastViewBox       ViewBox

	// Instrumentation
	iterationRate float64
	computeTimeMS [3]int64

	// IterationPasses counts full iteration recomputes since creation.
	IterationPasses int

	// Interaction state
	dragging    bool
	dragOffset  curve.Vec2
	dragCurrent curve.Vec2
	trajectory  []Point

	ShowKnownCircles bool
}

func NewSet() *Set {
	boxSpan := defaultBoxRightX - defaultBoxLeftX

	return &Set{
		boxCenter:     Point{X: defaultBoxLeftX + boxSpan/2, Y: 0},
		boxSize:       Point{X: boxSpan, Y: boxSpan},
		maxIterations: defaultMaxIterations,
		colorMode:     HistogramColors,

		outColorPicker:      colorpicker.New(colorpicker.NewHSV(216, 0.85, 0.34), 1.0/3, curve.Vec2{X: -0.25, Y: 0}),
		almostInColorPicker: colorpicker.New(colorpicker.NewHSV(205, 0.87, 0.94), 1.0/3, curve.Vec2{X: 0.25, Y: 0}),
		pins:                curve.NewAxisPinner(),

		periodicityEpsilon:             DefaultPeriodicityEpsilon,
		increasePeriodicityAfterCycles: DefaultIncreasePeriodicityAfterCycles,

		colors:    make([]color.RGBA, defaultMaxIterations+1),
		histogram: make([]int, defaultMaxIterations),
	}
}

func (s *Set) iterator() Iterator {
	iterator := NewIterator(s.maxIterations)
	iterator.PeriodicityEpsilon = s.periodicityEpsilon
	iterator.IncreasePeriodicityAfterCycles = s.increasePeriodicityAfterCycles
	return iterator
}

func (s *Set) BoxCenter() Point     { return s.boxCenter }
func (s *Set) BoxSize() Point       { return s.boxSize }
func (s *Set) MaxIterations() int   { return s.maxIterations }
func (s *Set) ColorMode() ColorMode { return s.colorMode }
func (s *Set) OutColor() color.RGBA { return s.outColorPicker.Color() }
func (s *Set) SetColorMode(cm ColorMode) {
	s.colorMode = cm
	// Force the color pass on the next frame.
	s.lastColors = [2]color.RGBA{}
}

// IterationCounts exposes the cached escape values of the last pass.
func (s *Set) IterationCounts() []float64 {
	return s.iterationCounts
}

// Dirty rules, in dependency order: a dirty layer implies all layers
// after it.

func (s *Set) needRecreatePixelCache(size curve.Vec2) bool {
	return s.lastSize != size
}

func (s *Set) needRecomputeIterations(size curve.Vec2) bool {
	return s.needRecreatePixelCache(size) ||
		s.lastBoxCenter != s.boxCenter ||
		s.lastBoxSize != s.boxSize ||
		s.lastMaxIterations != s.maxIterations
}

func (s *Set) colorChanged() bool {
	return s.lastColors[0] != s.outColorPicker.Color() ||
		s.lastColors[1] != s.almostInColorPicker.Color()
}

func (s *Set) needRecomputeImage(size curve.Vec2) bool {
	return s.needRecomputeIterations(size) || s.colorChanged()
}

func (s *Set) recordLastValues(size curve.Vec2, view ViewBox) {
	s.lastSize = size
	s.lastColors[0] = s.outColorPicker.Color()
	s.lastColors[1] = s.almostInColorPicker.Color()
	s.lastBoxCenter = s.boxCenter
	s.lastBoxSize = s.boxSize
	s.lastMaxIterations = s.maxIterations
	s.lastViewBox = view
}

// ComputeDrawables runs the dirty-checked render and returns the frame's
// payloads in draw order: overlays at z 1, the fractal image behind them
// at z 0. The call blocks until any required recompute is done; deep
// zooms can take on the order of a second.
func (s *Set) ComputeDrawables(dest curve.Vec2, size curve.Vec2) ([]curve.Drawable, error) {
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("cannot render into a %gx%g pixel area", size.X, size.Y)
	}

	start := time.Now()
	recreatePixels := s.needRecreatePixelCache(size)
	if recreatePixels {
		// Keep the plane box isotropic with the screen.
		s.boxSize.Y = s.boxSize.X * float64(size.Y) / float64(size.X)
	}

	view, err := NewViewBox(dest, size, s.boxCenter, s.boxSize)
	if err != nil {
		return nil, err
	}

	if recreatePixels {
		s.pixels = make([]uint8, 4*view.PixelCount)
		s.iterationCounts = make([]float64, view.PixelCount)
	}

	recomputedIterations := s.needRecomputeIterations(size)
	if recomputedIterations {
		iterator := s.iterator()
		result := iterator.IterateBox(&view, s.iterationCounts, s.workers)
		s.iterationRate = float64(result.ComputedIterationCount) / (float64(s.maxIterations) * float64(view.PixelCount))
		s.histogram = result.Histogram
		s.IterationPasses++
		s.computeTimeMS[1] = time.Since(start).Milliseconds()
	}

	if s.needRecomputeImage(size) {
		fillStart := time.Now()
		s.fillColors()
		FillPixels(s.pixels, s.iterationCounts, s.colors)
		s.computeTimeMS[2] = time.Since(fillStart).Milliseconds()
	}

	if recomputedIterations {
		s.computeTimeMS[0] = time.Since(start).Milliseconds()
	}

	s.recordLastValues(size, view)

	if picker := s.displayedColorPicker(); picker != nil {
		picker.SetView(size, dest)
	}

	var drawables []curve.Drawable

	if picker := s.displayedColorPicker(); picker != nil {
		pickerMeshes, err := picker.Meshes()
		if err != nil {
			return nil, err
		}
		drawables = append(drawables, pickerMeshes)
	}

	histogramPlot, err := s.histogramDrawable(dest, size)
	if err != nil {
		return nil, err
	}
	drawables = append(drawables, histogramPlot)

	if s.ShowKnownCircles {
		drawables = append(drawables, s.knownCirclesDrawable(&view))
	}

	if len(s.trajectory) > 1 {
		trace, err := s.trajectoryDrawable(&view)
		if err != nil {
			return nil, err
		}
		drawables = append(drawables, trace)
	}

	if s.dragging {
		drawables = append(drawables, s.crosshairDrawable())
	}

	imageDest := dest.Sub(size.Scale(0.5)).Add(s.dragOffset)
	drawables = append(drawables, curve.ImageDrawable{
		Pixels: s.pixels,
		Width:  int(math.Round(float64(size.X))),
		Height: int(math.Round(float64(size.Y))),
		Params: curve.NewDrawParam().WithDest(imageDest),
	})

	return drawables, nil
}

func (s *Set) fillColors() {
	if len(s.colors) != s.maxIterations+1 {
		s.colors = make([]color.RGBA, s.maxIterations+1)
	}
	switch s.colorMode {
	case HistogramColors:
		FillHistogramColors(s.colors, s.histogram, s.outColorPicker.Color(), s.almostInColorPicker.Color())
	case CyclicColors:
		FillCyclicColors(s.colors, s.outColorPicker.Color(), s.almostInColorPicker.Color())
	default:
		panic(fmt.Sprintf("unknown color mode: %d", s.colorMode))
	}
}

// histogramDrawable plots the escape time distribution over a palette
// strip, above the top edge of the fractal.
func (s *Set) histogramDrawable(dest curve.Vec2, size curve.Vec2) (curve.Drawable, error) {
	mesh := curve.NewMesh()
	step := size.X / float32(len(s.colors))

	for i, rampColor := range s.colors {
		mesh.Rectangle(float32(i)*step, -paletteStripHeight, step, paletteStripHeight, rampColor)
	}

	histogramMax := 0
	for _, count := range s.histogram {
		if count > histogramMax {
			histogramMax = count
		}
	}
	if histogramMax > 0 {
		previous := curve.Vec2{X: step / 2, Y: 0}
		for i := 1; i < len(s.histogram); i++ {
			point := curve.Vec2{
				X: float32(i)*step + step/2,
				Y: float32(s.histogram[i]) * histogramPlotHeight / float32(histogramMax),
			}
			if err := mesh.Line([]curve.Vec2{previous, point}, 1, red); err != nil {
				return nil, err
			}
			previous = point
		}
	}

	params := curve.NewDrawParam().WithDest(dest.Sub(size.Scale(0.5))).WithZ(1)
	return curve.MeshDrawable{Mesh: mesh, Params: params}, nil
}

func (s *Set) knownCirclesDrawable(view *ViewBox) curve.Drawable {
	mesh := curve.NewMesh()
	for i := range knownCircles {
		pixel := view.PixelForPlanePoint(knownCircles[i].center)
		radius := float32(math.Sqrt(knownCircles[i].radius2) / view.Ratio)
		mesh.Circle(pixel, radius, 10, red)
	}
	return curve.MeshDrawable{Mesh: mesh, Params: curve.NewDrawParam().WithZ(1)}
}

// trajectoryDrawable maps the inspected orbit into the current view.
func (s *Set) trajectoryDrawable(view *ViewBox) (curve.Drawable, error) {
	points := make([]curve.Vec2, len(s.trajectory))
	for i, planePoint := range s.trajectory {
		points[i] = view.PixelForPlanePoint(planePoint)
	}
	mesh := curve.NewMesh()
	if err := mesh.Line(points, 1, yellow); err != nil {
		return nil, err
	}
	return curve.MeshDrawable{Mesh: mesh, Params: curve.NewDrawParam().WithZ(1)}, nil
}

func (s *Set) crosshairDrawable() curve.Drawable {
	mesh := curve.NewMesh()
	center := s.dragCurrent
	// Degenerate segments cannot happen: the arms always span the radius.
	mesh.Line([]curve.Vec2{
		{X: center.X - crosshairRadius, Y: center.Y},
		{X: center.X + crosshairRadius, Y: center.Y},
	}, 1, grey)
	mesh.Line([]curve.Vec2{
		{X: center.X, Y: center.Y - crosshairRadius},
		{X: center.X, Y: center.Y + crosshairRadius},
	}, 1, grey)
	return curve.MeshDrawable{Mesh: mesh, Params: curve.NewDrawParam().WithZ(1)}
}

// AdjustPan moves the box center by a percentage of the box size in the
// given direction (-1, 0 or 1 per axis).
func (s *Set) AdjustPan(xDir int, yDir int) {
	s.boxCenter.X += float64(xDir) * s.boxSize.X * panStepPct
	s.boxCenter.Y += float64(yDir) * s.boxSize.Y * panStepPct
}

// AdjustZoom scales the box size by one step: dir 1 zooms out, -1 zooms
// in.
func (s *Set) AdjustZoom(dir int) {
	s.boxSize = s.boxSize.Scale(1 + float64(dir)*zoomStepPct)
}

func (s *Set) DoubleMaxIterations() {
	s.maxIterations *= 2
}

func (s *Set) HalveMaxIterations() {
	if s.maxIterations/2 >= minMaxIterations {
		s.maxIterations /= 2
	}
}

// JumpTo resets the view to a remarkable point preset.
func (s *Set) JumpTo(preset RemarkablePoint) {
	s.boxCenter = preset.Center
	s.boxSize.X = preset.Span
	aspect := 1.0
	if s.lastSize.X >= 1 {
		aspect = float64(s.lastSize.Y) / float64(s.lastSize.X)
	}
	s.boxSize.Y = preset.Span * aspect
	s.maxIterations = preset.MaxIterations
	s.trajectory = nil
}

func (s *Set) displayedColorPicker() *colorpicker.ColorPicker {
	switch s.displayedParam {
	case paramOutColor:
		return s.outColorPicker
	case paramAlmostInColor:
		return s.almostInColorPicker
	}
	return nil
}

func (s *Set) AdjustForButton(btn curve.Button) {
	switch {
	case btn == curve.ButtonDPadLeft && s.displayedParam > 0:
		s.displayedParam--
	case btn == curve.ButtonDPadRight && s.displayedParam < len(paramNames)-1:
		s.displayedParam++
	case btn == curve.ButtonLeftTrigger || btn == curve.ButtonRightTrigger:
		s.pins.Pin()
	case btn == curve.ButtonDPadUp && s.displayedParam == paramZoomPan:
		s.AdjustZoom(-1)
	case btn == curve.ButtonDPadDown && s.displayedParam == paramZoomPan:
		s.AdjustZoom(1)
	case btn == curve.ButtonSouth && s.displayedParam == paramZoomPan:
		s.AdjustPan(0, 1)
	case btn == curve.ButtonNorth && s.displayedParam == paramZoomPan:
		s.AdjustPan(0, -1)
	case btn == curve.ButtonWest && s.displayedParam == paramZoomPan:
		s.AdjustPan(-1, 0)
	case btn == curve.ButtonEast && s.displayedParam == paramZoomPan:
		s.AdjustPan(1, 0)
	case btn == curve.ButtonSouth && s.displayedParam == paramMaxIterations:
		s.HalveMaxIterations()
	case btn == curve.ButtonEast && s.displayedParam == paramMaxIterations:
		s.DoubleMaxIterations()
	}

	if picker := s.displayedColorPicker(); picker != nil {
		picker.AdjustForButton(btn)
	}
}

func (s *Set) AdjustForAxis(axis curve.Axis, value float32) {
	if !s.pins.Track(axis, value) {
		return
	}
	if picker := s.displayedColorPicker(); picker != nil {
		picker.AdjustForAxis(axis, value)
	}
}

// AdjustForMouseWheel zooms one step and re-centers on the cursor, so the
// point under the wheel stays in view.
func (s *Set) AdjustForMouseWheel(x float32, y float32, wheelYDir float32) {
	s.AdjustZoom(-int(math.Round(float64(wheelYDir))))
	if s.lastViewBox.PixelCount > 0 {
		s.boxCenter = s.lastViewBox.PlanePoint(
			int(math.Round(float64(x))),
			int(math.Round(float64(y))),
		)
	}
}

// AdjustForMouseDrag shifts the image visually while the button is held;
// the box center only commits on release.
func (s *Set) AdjustForMouseDrag(x float32, y float32, dragStart curve.Vec2) {
	if s.displayedColorPicker() != nil {
		return
	}
	s.dragging = true
	s.dragCurrent = curve.Vec2{X: x, Y: y}
	s.dragOffset = curve.Vec2{X: x - dragStart.X, Y: y - dragStart.Y}
}

func (s *Set) AdjustForMouseButtonUp(btn curve.MouseButton, x float32, y float32, dragStart curve.Vec2) {
	defer func() {
		s.dragging = false
		s.dragOffset = curve.Vec2{}
	}()

	if picker := s.displayedColorPicker(); picker != nil {
		picker.AdjustForClick(btn, x, y)
		return
	}

	if btn == curve.MouseButtonRight {
		s.InspectScreenPoint(x, y)
		return
	}

	if s.lastViewBox.PixelCount > 0 {
		s.boxCenter = s.boxCenter.Add(Point{
			X: float64(dragStart.X-x) * s.lastViewBox.Ratio,
			Y: float64(dragStart.Y-y) * s.lastViewBox.Ratio,
		})
	}
}

// InspectScreenPoint captures the escape trajectory of the plane point
// under the cursor, shown as an overlay until the next preset jump or
// inspection.
func (s *Set) InspectScreenPoint(x float32, y float32) {
	if s.lastViewBox.PixelCount == 0 {
		return
	}
	planePoint := s.lastViewBox.PlanePoint(
		int(math.Round(float64(x))),
		int(math.Round(float64(y))),
	)
	iterator := s.iterator()
	s.trajectory = iterator.Trajectory(planePoint)
}

func (s *Set) AdjustForKeyUp(key curve.Key) {
	switch key {
	case curve.KeyUp:
		s.DoubleMaxIterations()
	case curve.KeyDown:
		s.HalveMaxIterations()
	default:
		presetIndex := int(key - curve.Key1)
		if key >= curve.Key1 && presetIndex < len(RemarkablePoints) {
			s.JumpTo(RemarkablePoints[presetIndex])
		}
	}
}

// String is the title bar status: current parameter page, span, iteration
// budget, last full compute time and the share of the iteration budget
// actually consumed.
func (s *Set) String() string {
	return fmt.Sprintf(
		"MANDEL %s  span: %.6g dwell: %d time: %dms iter: %.0f%%",
		paramNames[s.displayedParam], s.boxSize.X, s.maxIterations, s.computeTimeMS[0], s.iterationRate*100,
	)
}

func (s *Set) ScreenshotFileName() string {
	return fmt.Sprintf(
		"mandel_x%g_y%g_span%g_dwell%d",
		s.boxCenter.X, s.boxCenter.Y, s.boxSize.X, s.maxIterations,
	)
}

func (s *Set) Name() string {
	return "Mandelbrot set"
}
