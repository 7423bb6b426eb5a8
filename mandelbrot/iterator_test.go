package mandelbrot

import (
	"math"
	"testing"
)

func TestIteratorShortcutsReportNoWork(t *testing.T) {
	it := NewIterator(100)

	for _, c := range []Point{
		{X: -0.5, Y: 0},   // cardioid
		{X: -1, Y: 0},     // bulb
		{X: -1.308, Y: 0}, // known circle
		{X: -0.125, Y: 0.744},
	} {
		res := it.IterToDivergence(c)
		if res.Iterations != 100 {
			t.Errorf("expected (%g, %g) to reach the iteration budget, got %d", c.X, c.Y, res.Iterations)
		}
		if res.Computed != 0 {
			t.Errorf("expected (%g, %g) to skip the loop, computed %d iterations", c.X, c.Y, res.Computed)
		}
		if res.Smooth != 0 {
			t.Errorf("expected no smooth correction for (%g, %g), got %g", c.X, c.Y, res.Smooth)
		}
	}
}

func TestIteratorEscapingPoint(t *testing.T) {
	it := NewIterator(100)

	res := it.IterToDivergence(Point{X: 1, Y: 1})
	if res.Iterations >= 100 {
		t.Errorf("expected (1, 1) to escape within the budget, got %d iterations", res.Iterations)
	}
	if res.Computed != res.Iterations {
		t.Errorf("expected the computed count %d to match the escape time %d", res.Computed, res.Iterations)
	}
	if res.Smooth < 0 || res.Smooth > 1 {
		t.Errorf("expected the smooth correction in [0, 1], got %g", res.Smooth)
	}
}

func TestIteratorBudgetExhaustion(t *testing.T) {
	it := NewIterator(10)

	// (0.26, 0) is outside the set but takes dozens of iterations to escape.
	res := it.IterToDivergence(Point{X: 0.26, Y: 0})
	if res.Iterations != 10 {
		t.Errorf("expected the budget of 10 to be exhausted, got %d iterations", res.Iterations)
	}
	if res.Computed != 10 {
		t.Errorf("expected 10 computed iterations, got %d", res.Computed)
	}
	if res.Smooth != 0 {
		t.Errorf("expected no smooth correction at budget exhaustion, got %g", res.Smooth)
	}
}

func TestIteratorDetectsPeriodicOrbit(t *testing.T) {
	it := NewIterator(100000)

	// The superstable center of the period-3 bulb. Outside every shortcut
	// region, and its orbit converges onto a 3-cycle.
	res := it.IterToDivergence(Point{X: -1.7548776662466927, Y: 0})
	if res.Iterations != it.MaxIterations {
		t.Errorf("expected the point to be classified inside the set, got %d iterations", res.Iterations)
	}
	if res.Computed != 0 {
		t.Errorf("expected the cycle detector to cut the loop short, computed %d iterations", res.Computed)
	}
}

func TestSmoothAdjustmentStaysInUnitInterval(t *testing.T) {
	for _, modulus2 := range []float64{4, 4.5, 7, 16, 10000, 1e300} {
		smooth := smoothAdjustment(modulus2)
		if smooth < 0 || smooth > 1 || math.IsNaN(smooth) {
			t.Errorf("smooth correction for modulus squared %g is %g", modulus2, smooth)
		}
	}
}

func TestSmoothAdjustmentGuardsDegenerateModulus(t *testing.T) {
	for _, modulus2 := range []float64{0, 0.5, 1} {
		if smooth := smoothAdjustment(modulus2); smooth != 0 {
			t.Errorf("expected a zero correction for modulus squared %g, got %g", modulus2, smooth)
		}
	}
}

func TestTrajectoryEndsPastTheEscapeRadius(t *testing.T) {
	it := NewIterator(100)

	trajectory := it.Trajectory(Point{X: 0.5, Y: 0.5})
	if len(trajectory) == 0 {
		t.Fatal("expected a non-empty trajectory")
	}
	if len(trajectory) > 100 {
		t.Fatalf("expected at most 100 orbit points, got %d", len(trajectory))
	}
	last := trajectory[len(trajectory)-1]
	if last.X*last.X+last.Y*last.Y < 4 {
		t.Errorf("expected the last orbit point past the escape radius, got (%g, %g)", last.X, last.Y)
	}
}

func TestTrajectoryOfInsidePointUsesTheWholeBudget(t *testing.T) {
	it := NewIterator(50)

	trajectory := it.Trajectory(Point{X: -0.5, Y: 0})
	if len(trajectory) != 50 {
		t.Errorf("expected 50 orbit points for an inside point, got %d", len(trajectory))
	}
}
