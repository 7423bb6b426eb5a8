package mandelbrot

// Points provably inside the set can skip the iteration loop entirely.
// https://en.wikibooks.org/wiki/Fractals/Iterations_in_the_complex_plane/Mandelbrot_set/mandelbrot
//
// At 100 iterations this takes a zoomed-out view from 50% of pixels
// iterated down to 38%, at the cost of rendering these regions as flat
// color (no shading gradient inside them).

type knownCircle struct {
	center  Point
	radius2 float64
	xLimit  float64
}

// contains uses an x upper bound gate instead of an abs on x.
func (kc *knownCircle) contains(c Point) bool {
	dx := c.X - kc.center.X
	dy := c.Y - kc.center.Y

	return dx*dx+dy*dy < kc.radius2 && c.X < kc.xLimit
}

var knownCircles = [...]knownCircle{
	{center: Point{X: -0.125, Y: 0.744}, radius2: 0.092 * 0.092, xLimit: 2},
	{center: Point{X: -0.125, Y: -0.744}, radius2: 0.092 * 0.092, xLimit: 2},
	{center: Point{X: -1.308, Y: 0}, radius2: 0.058 * 0.058, xLimit: 2},
}

func isKnownMember(c Point) bool {
	for i := range knownCircles {
		if knownCircles[i].contains(c) {
			return true
		}
	}
	return false
}

// insideBulbOrCardioid is the closed form membership test for the period-2
// bulb and the main cardioid. y2 is c.Y squared, which callers already
// have on hand.
func insideBulbOrCardioid(c Point, y2 float64) bool {
	xPlus1 := c.X + 1

	// Bulb
	if xPlus1*xPlus1+y2 < 0.0625 {
		return true
	}

	// Cardioid
	xMinusQuarter := c.X - 0.25
	q := xMinusQuarter*xMinusQuarter + y2
	return q*(q+xMinusQuarter) < y2*0.25
}
