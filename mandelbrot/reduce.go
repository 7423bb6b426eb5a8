package mandelbrot

import (
	"fmt"
	"math"
	"runtime"
	"sync"
)

// ParIterResult accumulates per-point outcomes across one iteration pass:
// a histogram of escape times, the smooth correction extrema and the total
// loop steps actually run. Add and Combine are commutative and
// associative, so the final result does not depend on how pixels were
// partitioned across workers.
type ParIterResult struct {
	Histogram              []int
	MinSmooth              float64
	MaxSmooth              float64
	ComputedIterationCount int64
}

func NewParIterResult(maxIterations int) *ParIterResult {
	return &ParIterResult{
		Histogram: make([]int, maxIterations),
		MinSmooth: math.Inf(1),
		MaxSmooth: math.Inf(-1),
	}
}

// Add folds one point outcome in. Points that reached the budget
// (iterations == max) stay out of the histogram by design.
func (r *ParIterResult) Add(res IterationResult) {
	if res.Iterations < len(r.Histogram) {
		r.Histogram[res.Iterations]++
		if res.Smooth < r.MinSmooth {
			r.MinSmooth = res.Smooth
		}
		if res.Smooth > r.MaxSmooth {
			r.MaxSmooth = res.Smooth
		}
	}
	r.ComputedIterationCount += int64(res.Computed)
}

// Combine merges another worker's accumulator into this one.
func (r *ParIterResult) Combine(other *ParIterResult) {
	if len(r.Histogram) != len(other.Histogram) {
		panic(fmt.Sprintf("combining histograms of different sizes: %d != %d", len(r.Histogram), len(other.Histogram)))
	}
	for i := range r.Histogram {
		r.Histogram[i] += other.Histogram[i]
	}
	if other.MinSmooth < r.MinSmooth {
		r.MinSmooth = other.MinSmooth
	}
	if other.MaxSmooth > r.MaxSmooth {
		r.MaxSmooth = other.MaxSmooth
	}
	r.ComputedIterationCount += other.ComputedIterationCount
}

// IterateBox classifies every pixel of the view box, writing the
// continuous escape value (iterations + smooth) into counts and returning
// the reduced accumulator. Pixels are partitioned in disjoint index ranges
// across workers goroutines (NumCPU when workers is 0), each folding into
// its own accumulator; the per-worker accumulators merge in index order at
// the end, so the result is identical for any worker count. The call
// blocks until the whole pass is done.
func (it *Iterator) IterateBox(view *ViewBox, counts []float64, workers int) *ParIterResult {
	if len(counts) != view.PixelCount {
		panic(fmt.Sprintf("iteration buffer has %d entries for %d pixels", len(counts), view.PixelCount))
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(counts) {
		workers = 1
	}

	accumulators := make([]*ParIterResult, workers)
	chunk := (len(counts) + workers - 1) / workers
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(counts) {
			end = len(counts)
		}

		wg.Add(1)
		go func(w int, start int, end int) {
			defer wg.Done()
			acc := NewParIterResult(it.MaxIterations)
			for i := start; i < end; i++ {
				res := it.IterToDivergence(view.PlanePointForPixelIndex(i))
				counts[i] = float64(res.Iterations) + res.Smooth
				acc.Add(res)
			}
			accumulators[w] = acc
		}(w, start, end)
	}
	wg.Wait()

	final := NewParIterResult(it.MaxIterations)
	for _, acc := range accumulators {
		final.Combine(acc)
	}
	return final
}

// parallelChunks runs fn over disjoint subranges of [0, n).
func parallelChunks(n int, fn func(start int, end int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start int, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
