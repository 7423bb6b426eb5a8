package main

import (
	"flag"
	"sync"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/jletroui/rcurves/curve"
	"github.com/jletroui/rcurves/mandelbrot"
	"github.com/jletroui/rcurves/misc"
	"github.com/jletroui/rcurves/render"
)

var (
	centerX, centerY, span            float64
	height, maxIterations, width      int
	workerCount                       int
	settingsFile                      string
	cyclic                            bool
	isRender, isCoordinator, isWorker bool
)

func parseArguments() {
	flag.BoolVar(&isRender, "render", false, "Render a single frame locally")
	flag.BoolVar(&isCoordinator, "coordinator", false, "Run the render coordinator")
	flag.BoolVar(&isWorker, "worker", false, "Run render workers")
	flag.StringVar(&settingsFile, "settings", "settings.json", "Path to the json settings file")
	flag.IntVar(&workerCount, "workerCount", 1, "Number of workers to run in this process")
	flag.Float64Var(&centerX, "centerX", -0.75, "Plane x coordinate of the frame center")
	flag.Float64Var(&centerY, "centerY", 0, "Plane y coordinate of the frame center")
	flag.Float64Var(&span, "span", 2.5, "Horizontal span of the frame on the plane")
	flag.IntVar(&width, "width", 1920, "Frame width in pixels")
	flag.IntVar(&height, "height", 1080, "Frame height in pixels")
	flag.IntVar(&maxIterations, "maxIterations", 100, "Iteration budget per point")
	flag.BoolVar(&cyclic, "cyclic", false, "Use the cyclic palette instead of histogram coloring")
	flag.Parse()
}

func main() {
	parseArguments()

	if isRender {
		renderFrame()
	}

	if isCoordinator {
		startCoordinator()
	}

	if isWorker {
		startWorkers()
	}
}

// renderFrame computes one frame in process and saves it under the name
// the interactive controller would give a screenshot.
func renderFrame() {
	logger := bslogger.NewLogger("Render", bslogger.Normal, nil)

	set := mandelbrot.NewSet()
	set.JumpTo(mandelbrot.RemarkablePoint{
		Name:          "cli",
		Center:        mandelbrot.NewPoint(centerX, centerY),
		Span:          span,
		MaxIterations: maxIterations,
	})
	if cyclic {
		set.SetColorMode(mandelbrot.CyclicColors)
	}

	size := curve.Vec2{X: float32(width), Y: float32(height)}
	drawables, err := set.ComputeDrawables(size.Scale(0.5), size)
	misc.CheckError(err, logger, misc.Fatal)

	for _, drawable := range drawables {
		image, ok := drawable.(curve.ImageDrawable)
		if !ok {
			continue
		}
		fileName := set.ScreenshotFileName() + ".png"
		err = misc.SavePNG(fileName, misc.RGBAFromPixels(image.Pixels, image.Width, image.Height))
		misc.CheckError(err, logger, misc.Fatal)
		logger.Infof("Saved frame to %s", fileName)
		return
	}
	logger.Fatal("The frame produced no image")
}

func startCoordinator() {
	coordinator := render.NewCoordinator(settingsFile)
	coordinator.IngestTasks()
}

func startWorkers() {
	var wg sync.WaitGroup

	// Start up requested amount of workers
	for i := 0; i < workerCount; i++ {
		worker := render.NewWorker(settingsFile, i, &wg)
		wg.Add(1)
		go worker.ProcessTasks()
	}

	// Wait for all workers to be done with their work
	wg.Wait()
}
