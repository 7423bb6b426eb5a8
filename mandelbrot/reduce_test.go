package mandelbrot

import (
	"math"
	"testing"

	"github.com/jletroui/rcurves/curve"
)

func homeView(t *testing.T, width int, height int) ViewBox {
	t.Helper()
	view, err := NewViewBox(
		curve.Vec2{X: float32(width) / 2, Y: float32(height) / 2},
		curve.Vec2{X: float32(width), Y: float32(height)},
		Point{X: -0.75, Y: 0},
		Point{X: 2.5, Y: 2.5 * float64(height) / float64(width)},
	)
	if err != nil {
		t.Fatalf("building the home view: %s", err)
	}
	return view
}

func TestParIterResultAddSkipsBudgetedPoints(t *testing.T) {
	acc := NewParIterResult(10)

	acc.Add(IterationResult{Iterations: 10, Smooth: 0, Computed: 10})
	for _, count := range acc.Histogram {
		if count != 0 {
			t.Fatal("points that reached the budget must stay out of the histogram")
		}
	}
	if acc.ComputedIterationCount != 10 {
		t.Errorf("expected 10 computed iterations recorded, got %d", acc.ComputedIterationCount)
	}

	acc.Add(IterationResult{Iterations: 3, Smooth: 0.25, Computed: 3})
	if acc.Histogram[3] != 1 {
		t.Errorf("expected one point at escape time 3, got %d", acc.Histogram[3])
	}
	if acc.MinSmooth != 0.25 || acc.MaxSmooth != 0.25 {
		t.Errorf("expected the smooth extrema to both be 0.25, got [%g, %g]", acc.MinSmooth, acc.MaxSmooth)
	}
}

func TestParIterResultCombineIsOrderIndependent(t *testing.T) {
	build := func(results ...IterationResult) *ParIterResult {
		acc := NewParIterResult(10)
		for _, res := range results {
			acc.Add(res)
		}
		return acc
	}
	a := build(IterationResult{Iterations: 1, Smooth: 0.5, Computed: 1}, IterationResult{Iterations: 4, Smooth: 0.1, Computed: 4})
	b := build(IterationResult{Iterations: 4, Smooth: 0.9, Computed: 4})
	c := build(IterationResult{Iterations: 10, Computed: 10})

	left := build()
	left.Combine(a)
	left.Combine(b)
	left.Combine(c)

	right := build()
	right.Combine(c)
	right.Combine(b)
	right.Combine(a)

	for i := range left.Histogram {
		if left.Histogram[i] != right.Histogram[i] {
			t.Fatalf("histograms diverge at %d: %d != %d", i, left.Histogram[i], right.Histogram[i])
		}
	}
	if left.MinSmooth != right.MinSmooth || left.MaxSmooth != right.MaxSmooth {
		t.Errorf("smooth extrema diverge: [%g, %g] != [%g, %g]", left.MinSmooth, right.MinSmooth, left.MaxSmooth, right.MaxSmooth)
	}
	if left.ComputedIterationCount != right.ComputedIterationCount {
		t.Errorf("computed counts diverge: %d != %d", left.ComputedIterationCount, right.ComputedIterationCount)
	}
}

func TestParIterResultCombineRejectsMismatchedSizes(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic when combining accumulators of different budgets")
		}
	}()
	NewParIterResult(10).Combine(NewParIterResult(20))
}

func TestIterateBoxRejectsWrongBufferSize(t *testing.T) {
	view := homeView(t, 32, 32)
	it := NewIterator(50)

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a buffer not matching the pixel count")
		}
	}()
	it.IterateBox(&view, make([]float64, 10), 1)
}

func TestIterateBoxIsDeterministicAcrossWorkerCounts(t *testing.T) {
	view := homeView(t, 64, 48)
	it := NewIterator(100)

	reference := make([]float64, view.PixelCount)
	referenceResult := it.IterateBox(&view, reference, 1)

	for _, workers := range []int{2, 4, 7} {
		counts := make([]float64, view.PixelCount)
		result := it.IterateBox(&view, counts, workers)

		for i := range counts {
			if counts[i] != reference[i] {
				t.Fatalf("escape value %d diverges with %d workers: %g != %g", i, workers, counts[i], reference[i])
			}
		}
		for i := range result.Histogram {
			if result.Histogram[i] != referenceResult.Histogram[i] {
				t.Fatalf("histogram bin %d diverges with %d workers", i, workers)
			}
		}
		if result.MinSmooth != referenceResult.MinSmooth || result.MaxSmooth != referenceResult.MaxSmooth {
			t.Errorf("smooth extrema diverge with %d workers", workers)
		}
		if result.ComputedIterationCount != referenceResult.ComputedIterationCount {
			t.Errorf("computed count diverges with %d workers", workers)
		}
	}
}

func TestIterateBoxHistogramMassNeverExceedsPixelCount(t *testing.T) {
	view := homeView(t, 50, 50)
	it := NewIterator(100)

	result := it.IterateBox(&view, make([]float64, view.PixelCount), 0)

	total := 0
	for _, count := range result.Histogram {
		total += count
	}
	if total > view.PixelCount {
		t.Errorf("histogram holds %d points for %d pixels", total, view.PixelCount)
	}
	if total == 0 {
		t.Error("expected at least one escaping point in the home view")
	}
	if math.IsInf(result.MinSmooth, 1) {
		t.Error("expected the smooth minimum to move off its initial value")
	}
}
