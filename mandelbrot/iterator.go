package mandelbrot

import "math"

const (
	// DefaultEscapeRadius is the modulus beyond which an orbit provably
	// diverges.
	DefaultEscapeRadius = 2.0

	// DefaultPeriodicityEpsilon is the absolute difference under which two
	// orbit positions count as the same point. Empirically tuned, no
	// documented derivation.
	DefaultPeriodicityEpsilon = 1e-17

	// DefaultIncreasePeriodicityAfterCycles is how many checkpoint
	// refreshes happen before the checkpoint interval doubles. Also an
	// empirically tuned value.
	DefaultIncreasePeriodicityAfterCycles = 10
)

// IterationResult is the outcome for one plane point. Iterations is the
// escape time (MaxIterations when the point never escaped), Smooth the
// fractional correction for banding-free coloring, and Computed the loop
// steps actually run, for work rate reporting. Points classified by a
// shortcut or a detected cycle report Computed zero.
type IterationResult struct {
	Iterations int
	Smooth     float64
	Computed   int
}

// Iterator runs the escape time loop z <- z^2 + c for a fixed iteration
// budget. The zero value is not usable; construct with NewIterator.
type Iterator struct {
	MaxIterations int
	EscapeRadius2 float64

	// PeriodicityEpsilon and IncreasePeriodicityAfterCycles tune the cycle
	// detector. They are fields rather than constants so hosts can trade
	// early-exit accuracy against longer-period detection.
	PeriodicityEpsilon             float64
	IncreasePeriodicityAfterCycles int
}

func NewIterator(maxIterations int) Iterator {
	return Iterator{
		MaxIterations:                  maxIterations,
		EscapeRadius2:                  DefaultEscapeRadius * DefaultEscapeRadius,
		PeriodicityEpsilon:             DefaultPeriodicityEpsilon,
		IncreasePeriodicityAfterCycles: DefaultIncreasePeriodicityAfterCycles,
	}
}

// IterToDivergence classifies one plane point. The known-region shortcuts
// run first; then the loop iterates until escape, budget exhaustion or a
// detected cycle. Cycle detection compares the current position against a
// historical checkpoint refreshed every maxPeriodicity steps, an interval
// that starts at 3 and doubles every IncreasePeriodicityAfterCycles
// refreshes.
func (it *Iterator) IterToDivergence(c Point) IterationResult {
	if isKnownMember(c) {
		return IterationResult{Iterations: it.MaxIterations, Smooth: 0, Computed: 0}
	}

	y := c.Y
	y2 := y * y

	if insideBulbOrCardioid(c, y2) {
		return IterationResult{Iterations: it.MaxIterations, Smooth: 0, Computed: 0}
	}

	x := c.X
	x2 := x * x
	xy := x * y
	i := 0
	xh, yh := 0.0, 0.0
	iterationsSincePeriodicityRefresh := 0
	maxPeriodicity := 3
	refreshPeriodicityCycles := 0

	for i < it.MaxIterations && (x2+y2) < it.EscapeRadius2 {
		x = x2 - y2 + c.X
		y = xy + xy + c.Y
		x2 = x * x
		y2 = y * y
		xy = x * y

		if math.Abs(x-xh) < it.PeriodicityEpsilon && math.Abs(y-yh) < it.PeriodicityEpsilon {
			// The orbit is periodic: it will never escape.
			return IterationResult{Iterations: it.MaxIterations, Smooth: 0, Computed: 0}
		}

		if iterationsSincePeriodicityRefresh == maxPeriodicity {
			iterationsSincePeriodicityRefresh = 0
			xh = x
			yh = y

			if refreshPeriodicityCycles == it.IncreasePeriodicityAfterCycles {
				refreshPeriodicityCycles = 0
				maxPeriodicity *= 2
			}
			refreshPeriodicityCycles++
		}
		iterationsSincePeriodicityRefresh++

		i++
	}

	if i == it.MaxIterations {
		return IterationResult{Iterations: it.MaxIterations, Smooth: 0, Computed: i}
	}

	return IterationResult{Iterations: i, Smooth: smoothAdjustment(x2 + y2), Computed: i}
}

// smoothAdjustment computes the continuous escape time correction
// max(0, 1 - nu) with nu = log2(log2(|z|^2) / 2). At the escape radius of
// 2 the modulus squared is at least 4, so nu >= 0 and the correction lands
// in [0, 1]. A non-positive log is guarded to zero instead of letting NaN
// reach the color ramp.
func smoothAdjustment(modulus2 float64) float64 {
	logModZ := math.Log2(modulus2) * 0.5
	if logModZ <= 0 {
		return 0
	}
	smooth := 1 - math.Log2(logModZ)
	if smooth < 0 || math.IsNaN(smooth) {
		return 0
	}
	return smooth
}

// Trajectory records the orbit of c up to escape or the iteration budget,
// for the point inspection overlay.
func (it *Iterator) Trajectory(c Point) []Point {
	trajectory := make([]Point, 0, 64)
	x, y := 0.0, 0.0

	for i := 0; i < it.MaxIterations; i++ {
		nx := x*x - y*y + c.X
		ny := 2*x*y + c.Y
		x, y = nx, ny
		trajectory = append(trajectory, Point{X: x, Y: y})
		if x*x+y*y >= it.EscapeRadius2 {
			break
		}
	}

	return trajectory
}
