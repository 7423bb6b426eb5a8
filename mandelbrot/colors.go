package mandelbrot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/jletroui/rcurves/misc"
)

const (
	HistogramColors ColorMode = iota
	CyclicColors
)

// ColorMode selects how escape times map to the color ramp.
type ColorMode int

func (cm ColorMode) String() string {
	return []string{
		"Histogram", "Cyclic",
	}[cm]
}

// InsideColor renders points that never escaped. It overrides the ramp.
var InsideColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

var (
	white    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	darkGrey = color.RGBA{R: 64, G: 64, B: 64, A: 255}
)

// cyclicPeriod is how many iteration counts one walk through the cyclic
// palette spans.
const cyclicPeriod = 64.0

// FillHistogramColors rebuilds the ramp so color bands spread
// proportionally to how many points actually fall at each escape time,
// which equalizes visual contrast regardless of zoom level. The ramp has
// one entry per possible iteration count; the last entry is the inside
// color.
func FillHistogramColors(colors []color.RGBA, histogram []int, outColor color.RGBA, almostInColor color.RGBA) {
	maxIterations := len(colors) - 1
	if len(histogram) != maxIterations {
		panic(fmt.Sprintf("histogram has %d entries for a ramp of %d", len(histogram), len(colors)))
	}

	histogramTotal := 0
	for _, count := range histogram {
		histogramTotal += count
	}
	if histogramTotal == 0 {
		// Every sampled point is inside the set: no escape mass to spread.
		for i := 0; i < maxIterations; i++ {
			colors[i] = outColor
		}
		colors[maxIterations] = InsideColor
		return
	}

	ratio := math.Pi * float64(maxIterations) / 100
	runningTotal := 0.0
	for i := 0; i < maxIterations; i++ {
		colors[i] = misc.LinearInterpolationRGB(
			almostInColor,
			outColor,
			math.Abs(math.Sin(ratio*runningTotal/float64(histogramTotal))),
		)
		runningTotal += float64(histogram[i])
	}
	colors[maxIterations] = InsideColor
}

// FillCyclicColors rebuilds the ramp by walking a fixed small palette
// cyclically, with a sinusoidal easing of the sub-interval fraction to
// compress emphasis away from the extreme stops.
func FillCyclicColors(colors []color.RGBA, outColor color.RGBA, almostInColor color.RGBA) {
	stops := [...]color.RGBA{outColor, white, almostInColor, darkGrey, outColor}
	maxIterations := len(colors) - 1

	for i := 0; i < maxIterations; i++ {
		position := math.Mod(float64(i)/cyclicPeriod, 1) * float64(len(stops)-1)
		stop := int(position)
		fraction := position - float64(stop)
		eased := (1 - math.Cos(math.Pi*fraction)) / 2
		colors[i] = misc.LinearInterpolationRGB(stops[stop], stops[stop+1], eased)
	}
	colors[maxIterations] = InsideColor
}

// PixelColor interpolates between the two ramp entries bracketing the
// continuous escape value. Counts at or past the budget are the inside
// color, always.
func PixelColor(colors []color.RGBA, count float64) color.RGBA {
	maxIterations := len(colors) - 1
	floor := int(count)
	if floor >= maxIterations {
		return InsideColor
	}

	color2Index := floor + 1
	if color2Index > maxIterations-1 {
		color2Index = maxIterations - 1
	}
	return misc.LinearInterpolationRGB(colors[floor], colors[color2Index], count-float64(floor))
}

// FillPixels colors the whole buffer from cached escape values. The rgba
// buffer must hold 4 bytes per count.
func FillPixels(pixels []uint8, counts []float64, colors []color.RGBA) {
	if len(pixels) != 4*len(counts) {
		panic(fmt.Sprintf("pixel buffer has %d bytes for %d escape values", len(pixels), len(counts)))
	}

	parallelChunks(len(counts), func(start int, end int) {
		for i := start; i < end; i++ {
			c := PixelColor(colors, counts[i])
			pixels[4*i] = c.R
			pixels[4*i+1] = c.G
			pixels[4*i+2] = c.B
			pixels[4*i+3] = 255
		}
	})
}

// HistogramFromCounts rebuilds an escape time histogram from continuous
// escape values, for renders where the per-point results were computed
// elsewhere and only the counts buffer traveled.
func HistogramFromCounts(counts []float64, maxIterations int) []int {
	histogram := make([]int, maxIterations)
	for _, count := range counts {
		floor := int(count)
		if floor < maxIterations {
			histogram[floor]++
		}
	}
	return histogram
}
