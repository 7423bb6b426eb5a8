package render

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/jletroui/rcurves/colorpicker"
	"github.com/jletroui/rcurves/mandelbrot"
	"github.com/jletroui/rcurves/misc"
	"github.com/jletroui/rcurves/task"
)

// FrameSettings sizes and colors every frame of a run. Workers fetch a
// copy over rpc when they join.
type FrameSettings struct {
	ColorMode      mandelbrot.ColorMode
	Height         uint
	MaxIterations  int
	AlmostInColor  color.RGBA
	OutColor       color.RGBA
	TaskGeneration task.Generation
	Width          uint
}

func (fs *FrameSettings) Verify() error {
	if fs.ColorMode < mandelbrot.HistogramColors || fs.ColorMode > mandelbrot.CyclicColors {
		fs.ColorMode = mandelbrot.HistogramColors
	}
	if fs.Height <= 0 {
		fs.Height = 1080
	}
	if fs.MaxIterations <= 0 {
		fs.MaxIterations = 1000
	}
	if fs.AlmostInColor == (color.RGBA{}) {
		fs.AlmostInColor = colorpicker.NewHSV(205, 0.87, 0.94).Color()
	}
	if fs.OutColor == (color.RGBA{}) {
		fs.OutColor = colorpicker.NewHSV(216, 0.85, 0.34).Color()
	}
	if fs.TaskGeneration < task.Row || fs.TaskGeneration > task.Image {
		fs.TaskGeneration = task.Row
	}
	if fs.Width <= 0 {
		fs.Width = 1920
	}
	return nil
}

// transitionSettings describes one camera move: the plane center slides
// from start to end while the horizontal span steps geometrically from
// SpanStart to SpanEnd.
type transitionSettings struct {
	EndX       float64
	EndY       float64
	FrameCount uint
	SpanEnd    float64
	SpanStart  float64
	SpanStep   float64
	StartX     float64
	StartY     float64
}

func (ts *transitionSettings) Verify() error {
	if ts.StartX < -4 || ts.StartX > 4 {
		ts.StartX = 0
	}
	if ts.StartY < -4 || ts.StartY > 4 {
		ts.StartY = 0
	}
	if ts.EndX < -4 || ts.EndX > 4 {
		ts.EndX = 0
	}
	if ts.EndY < -4 || ts.EndY > 4 {
		ts.EndY = 0
	}
	if ts.SpanStart <= 0 {
		ts.SpanStart = 2.5
	}
	if ts.SpanEnd <= 0 {
		ts.SpanEnd = 2.5
	}
	if ts.SpanStep <= 1 {
		ts.SpanStep = 1.1
	}
	return nil
}

// frameCount is how many geometric span steps this transition takes.
func (ts *transitionSettings) frameCount() uint {
	count := uint(math.Ceil(math.Abs(math.Log(ts.SpanEnd/ts.SpanStart)) / math.Log(ts.SpanStep)))
	if count < 1 {
		count = 1
	}
	return count
}

type coordinatorSettings struct {
	logger bslogger.Logger

	FrameSettings      FrameSettings
	RunName            string
	SavePath           string
	ServerAddress      string
	TransitionSettings []transitionSettings
}

func NewCoordinatorSettings(settingsFile string) coordinatorSettings {
	s := coordinatorSettings{
		logger: bslogger.NewLogger("CoordinatorSettings", bslogger.Normal, nil),
	}
	err, fileBytes := misc.ReadFile(settingsFile)
	misc.CheckError(err, s.logger, misc.Fatal)
	misc.CheckError(json.Unmarshal(fileBytes, &s), s.logger, misc.Fatal)
	misc.CheckError(s.Verify(), s.logger, misc.Fatal)
	s.logger.Debug(s.String())
	return s
}

func (s *coordinatorSettings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("My Address: %s", s.ServerAddress)
	return output
}

func (s *coordinatorSettings) Verify() error {
	misc.CheckError(s.FrameSettings.Verify(), s.logger, misc.Fatal)
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	if s.ServerAddress == "" {
		s.ServerAddress = fmt.Sprintf("%s:%s", misc.GetLocalAddress(), "51000")
	}
	if len(s.TransitionSettings) == 0 {
		s.TransitionSettings = []transitionSettings{
			{
				StartX:    -0.75,
				StartY:    0,
				EndX:      -0.75,
				EndY:      0,
				SpanStart: 2.5,
				SpanEnd:   0.25,
				SpanStep:  1.1,
			},
		}
	}

	// Verify each of the transition settings objects
	for i := 0; i < len(s.TransitionSettings); i++ {
		misc.CheckError(s.TransitionSettings[i].Verify(), s.logger, misc.Warning)
	}

	return nil
}

type workerSettings struct {
	logger bslogger.Logger

	CoordinatorAddress string
}

func NewWorkerSettings(settingsFile string) workerSettings {
	s := workerSettings{
		logger: bslogger.NewLogger("WorkerSettings", bslogger.Normal, nil),
	}
	err, fileBytes := misc.ReadFile(settingsFile)
	misc.CheckError(err, s.logger, misc.Fatal)
	misc.CheckError(json.Unmarshal(fileBytes, &s), s.logger, misc.Fatal)
	misc.CheckError(s.Verify(), s.logger, misc.Fatal)
	s.logger.Debug(s.String())
	return s
}

func (s *workerSettings) String() string {
	output := "\nWorker settings\n"
	output += fmt.Sprintf("Coordinator Address: %s\n", s.CoordinatorAddress)
	return output
}

func (s *workerSettings) Verify() error {
	if s.CoordinatorAddress == "" {
		s.CoordinatorAddress = fmt.Sprintf("%s:%s", misc.GetLocalAddress(), "51000")
	}
	return nil
}
