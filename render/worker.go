package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/jletroui/rcurves/curve"
	"github.com/jletroui/rcurves/mandelbrot"
	"github.com/jletroui/rcurves/misc"
	"github.com/jletroui/rcurves/rpc"
	"github.com/jletroui/rcurves/task"
)

type Worker struct {
	address       string
	client        rpc.TcpClient
	frameSettings FrameSettings
	logger        bslogger.Logger
	name          string
	settings      workerSettings
	wait          *sync.WaitGroup

	Server rpc.TcpServer
}

func NewWorker(settingsFile string, number int, wait *sync.WaitGroup) *Worker {
	settings := NewWorkerSettings(settingsFile)
	name := fmt.Sprintf("Worker%d", number)

	port, err := misc.GetFreePort()
	worker := &Worker{
		logger:   bslogger.NewLogger(name, bslogger.Normal, nil),
		name:     name,
		settings: settings,
		wait:     wait,
	}
	misc.CheckError(err, worker.logger, misc.Fatal)
	worker.address = fmt.Sprintf("%s:%d", misc.GetLocalAddress(), port)

	// Start up the rpc tcp server so the coordinator can reach this worker
	worker.Server = rpc.NewTcpServer(worker, worker.address, name+"Server")
	misc.CheckError(worker.Server.Run(), worker.Server.Logger, misc.Fatal)

	worker.client = rpc.NewTcpClient(settings.CoordinatorAddress, name+"Client")
	misc.CheckError(worker.client.Connect(), worker.logger, misc.Fatal)

	return worker
}

// ProcessTasks checks tasks out of the coordinator until none are left,
// computing the escape value of every covered pixel with the core
// iterator.
func (w *Worker) ProcessTasks() {
	var junk misc.Nothing
	var count int

	// Register worker with coordinator
	err := w.client.Call("Coordinator.RegisterWorker", w.address, &junk)
	if err != nil {
		w.logger.Fatalf("Failed to register with coordinator: %s", err)
	}

	// Fetch frame settings from coordinator
	err = w.client.Call("Coordinator.GetFrameSettings", junk, &w.frameSettings)
	if err != nil {
		w.logger.Fatalf("Failed to get frame settings: %s", err)
	}
	w.logger.Infof("Got frame settings from coordinator: %+v", w.frameSettings)

	w.logger.Info("Now processing tasks")
	startTime := time.Now()
	for {
		var todo task.Task

		// Ask coordinator for a task
		err := w.client.Call("Coordinator.GetTask", w.address, &todo)
		if err != nil {
			break
		}

		misc.CheckError(w.computeTask(&todo), w.logger, misc.Fatal)

		// Return result to coordinator
		err = w.client.Call("Coordinator.ReturnTask", todo, &junk)
		misc.CheckError(err, w.logger, misc.Warning)
		count++
	}
	w.logger.Infof("Done processing %d tasks in %s", count, time.Since(startTime))

	// Inform coordinator we are leaving and shutdown
	w.logger.Info("Shutting down")
	misc.CheckError(w.client.Call("Coordinator.DeRegisterWorker", w.address, &junk), w.logger, misc.Warning)
	misc.CheckError(w.client.Disconnect(), w.logger, misc.Warning)
	misc.CheckError(w.Server.Stop(), w.logger, misc.Warning)
	w.wait.Done()
}

func (w *Worker) computeTask(todo *task.Task) error {
	frame := todo.Frame
	view, err := mandelbrot.NewViewBox(
		curve.Vec2{X: float32(frame.Width) / 2, Y: float32(frame.Height) / 2},
		curve.Vec2{X: float32(frame.Width), Y: float32(frame.Height)},
		mandelbrot.NewPoint(frame.CenterX, frame.CenterY),
		mandelbrot.NewPoint(frame.SpanX, frame.SpanY),
	)
	if err != nil {
		return err
	}

	iterator := mandelbrot.NewIterator(frame.MaxIterations)
	todo.Results = make([]float64, todo.PixelCount(w.frameSettings.TaskGeneration))

	if w.frameSettings.TaskGeneration == task.Image {
		result := iterator.IterateBox(&view, todo.Results, 0)
		todo.ComputedCount = result.ComputedIterationCount
		return nil
	}

	firstIndex := int(todo.Row * frame.Width)
	for i := range todo.Results {
		result := iterator.IterToDivergence(view.PlanePointForPixelIndex(firstIndex + i))
		todo.Results[i] = float64(result.Iterations) + result.Smooth
		todo.ComputedCount += int64(result.Computed)
	}
	return nil
}

func (w *Worker) RollCall(nothing misc.Nothing, present *bool) error {
	*present = true
	return nil
}
