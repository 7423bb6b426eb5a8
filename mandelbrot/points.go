package mandelbrot

// RemarkablePoint is a preset view worth jumping to: a center, a span and
// an iteration budget suited to that zoom depth.
type RemarkablePoint struct {
	Name          string
	Center        Point
	Span          float64
	MaxIterations int
}

// RemarkablePoints is a fixed read-only table. Index 0 is the whole set.
var RemarkablePoints = []RemarkablePoint{
	{Name: "home", Center: Point{X: -0.75, Y: 0}, Span: 2.5, MaxIterations: 100},
	{Name: "seahorse valley", Center: Point{X: -0.75, Y: 0.1}, Span: 0.1, MaxIterations: 400},
	{Name: "elephant valley", Center: Point{X: -1.8, Y: -0.06}, Span: 0.1, MaxIterations: 400},
	{Name: "spiral minibrot", Center: Point{X: -0.74275, Y: 0.13175}, Span: 0.0015, MaxIterations: 1600},
	{Name: "triple spiral", Center: Point{X: -0.7465, Y: 0.0965}, Span: 0.003, MaxIterations: 800},
	{Name: "valley of the dragon", Center: Point{X: -0.7375, Y: 0.1825}, Span: 0.005, MaxIterations: 800},
	{Name: "minibrot in a mini spiral", Center: Point{X: -1.73825, Y: -0.02275}, Span: 0.0015, MaxIterations: 1600},
}
