package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/jletroui/rcurves/mandelbrot"
	"github.com/jletroui/rcurves/misc"
	"github.com/jletroui/rcurves/rpc"
	"github.com/jletroui/rcurves/task"
)

// frameTask assembles one frame from returned tasks. Coloring can only
// start once every pixel's escape value is in, since the histogram ramp
// needs the whole frame.
type frameTask struct {
	Counts     []float64
	PixelsLeft uint
}

type Coordinator struct {
	clients             map[string]*rpc.TcpClient
	frames              map[int]frameTask
	frameCompletedCount uint
	frameCount          uint
	logger              bslogger.Logger
	mutex               sync.Mutex
	pixelCount          uint
	settings            coordinatorSettings
	taskCount           uint
	taskGeneratedCount  uint
	taskIngestedCount   uint
	tasksHandedOut      map[string]map[uint]task.Task // keep track of all tasks workers have
	tasksDone           chan task.Task
	tasksTodo           chan task.Task
	workerWait          *sync.WaitGroup

	Server rpc.TcpServer
}

func NewCoordinator(settingsFile string) *Coordinator {
	settings := NewCoordinatorSettings(settingsFile)

	coordinator := &Coordinator{
		clients:        make(map[string]*rpc.TcpClient),
		frames:         make(map[int]frameTask),
		logger:         bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		pixelCount:     settings.FrameSettings.Height * settings.FrameSettings.Width,
		settings:       settings,
		tasksHandedOut: make(map[string]map[uint]task.Task),
		tasksDone:      make(chan task.Task, 1000),
		tasksTodo:      make(chan task.Task, 1000),
		workerWait:     &sync.WaitGroup{},
	}

	// The span steps geometrically, so the frame count of each transition
	// comes from the log of the span ratio.
	for i := 0; i < len(settings.TransitionSettings); i++ {
		frameCount := settings.TransitionSettings[i].frameCount()
		settings.TransitionSettings[i].FrameCount = frameCount
		coordinator.frameCount += frameCount
	}

	// Determine the number of tasks that will be generated so the coordinator knows when to shut down
	switch settings.FrameSettings.TaskGeneration {
	case task.Row:
		coordinator.taskCount = settings.FrameSettings.Height * coordinator.frameCount
	case task.Image:
		coordinator.taskCount = coordinator.frameCount
	default:
		coordinator.logger.Fatalf("Unknown generation type: %d", settings.FrameSettings.TaskGeneration)
	}

	// Start up the rpc tcp server to allow workers to communicate with the coordinator
	coordinator.Server = rpc.NewTcpServer(coordinator, settings.ServerAddress, "CoordinatorServer")
	misc.CheckError(coordinator.Server.Run(), coordinator.Server.Logger, misc.Fatal)

	// Create directory to store files for this run
	if _, err := os.Stat(filepath.Join(settings.SavePath, settings.RunName)); os.IsNotExist(err) {
		err = os.Mkdir(filepath.Join(settings.SavePath, settings.RunName), os.ModePerm)
		if err != nil {
			coordinator.logger.Fatalf("Unable to create folder: %s", err)
		}
	}

	// Copy the settings to the directory so the run can be duplicated in the future
	bytes, err := json.Marshal(settings)
	misc.CheckError(err, coordinator.logger, misc.Fatal)
	bytesWritten, err := misc.WriteFile(filepath.Join(settings.SavePath, settings.RunName, filepath.Base(settingsFile)), bytes)
	if err != nil || bytesWritten == 0 {
		coordinator.logger.Fatalf("Unable to make a backup copy of settingsFile: %s", settingsFile)
	}

	// Create a log file to record the run
	logFile, err := os.Create(filepath.Join(settings.SavePath, settings.RunName, "coordinator.log"))
	misc.CheckError(err, coordinator.logger, misc.Warning)
	coordinator.logger = bslogger.NewLogger("Coordinator", bslogger.Normal, logFile)

	go coordinator.tickers()
	go coordinator.generateTasks()

	return coordinator
}

func (c *Coordinator) tickers() {
	rollCall := time.NewTicker(time.Minute)
	heartBeat := time.NewTicker(30 * time.Second)

	for {
		select {
		case <-rollCall.C:
			c.logger.Debug("Roll call ticker")
			c.rollCallWorkers()

		case <-heartBeat.C:
			c.logger.Debug("Heart beat ticker")
			c.logger.Infof("Tasks [Generated: %d] [Ingested: %d] | Frames [Completed: %d] [WIP: %d] [Todo: %d]", c.taskGeneratedCount, c.taskIngestedCount, c.frameCompletedCount, len(c.frames), c.frameCount-c.frameCompletedCount)
		}
	}
}

// rollCallWorkers checks every registered worker is still reachable and
// removes the ones that are not. The client map is snapshotted under the
// mutex so registrations from rpc handler goroutines cannot land in the
// middle of the iteration; the calls themselves happen outside the lock
// since DeRegisterWorker takes it again.
func (c *Coordinator) rollCallWorkers() {
	c.mutex.Lock()
	clients := make([]*rpc.TcpClient, 0, len(c.clients))
	for _, v := range c.clients {
		clients = append(clients, v)
	}
	c.mutex.Unlock()

	var junk misc.Nothing
	for _, v := range clients {
		var reply bool
		err := v.Call("Worker.RollCall", junk, &reply)
		if err != nil {
			// Cannot communicate with the worker
			c.logger.Warningf("Worker %s missed roll call: %s", v.Name, err)
			misc.CheckError(v.Disconnect(), c.logger, misc.Warning)

			// Remove worker from pool
			var nothing misc.Nothing
			misc.CheckError(c.DeRegisterWorker(v.Name, &nothing), c.logger, misc.Warning)
		}
	}
}

// frameSpec locates one frame of a transition on the plane. The vertical
// span tracks the horizontal one proportionally to the frame aspect so the
// mapping stays isotropic.
func (c *Coordinator) frameSpec(centerX float64, centerY float64, span float64) task.FrameSpec {
	fs := c.settings.FrameSettings
	return task.FrameSpec{
		CenterX:       centerX,
		CenterY:       centerY,
		SpanX:         span,
		SpanY:         span * float64(fs.Height) / float64(fs.Width),
		Width:         fs.Width,
		Height:        fs.Height,
		MaxIterations: fs.MaxIterations,
	}
}

func (c *Coordinator) generateTasks() {
	c.logger.Info("Generating tasks")

	var frameNumber uint = 1
	var startTime = time.Now()

	for transitionStep := 0; transitionStep < len(c.settings.TransitionSettings); transitionStep++ {
		transition := c.settings.TransitionSettings[transitionStep]
		span := transition.SpanStart
		currentX := transition.StartX
		currentY := transition.StartY
		zoomingIn := transition.SpanStart > transition.SpanEnd

		var currentFrame uint
		for currentFrame = 1; currentFrame <= transition.FrameCount; currentFrame++ {

			// Lerp through the coordinates in the transition. Zooming in
			// front loads the travel so the target stays in frame.
			t := float64(currentFrame) / float64(transition.FrameCount)
			if zoomingIn {
				currentX = misc.LerpFloat64(transition.StartX, transition.EndX, misc.EaseOutExpo(t))
				currentY = misc.LerpFloat64(transition.StartY, transition.EndY, misc.EaseOutExpo(t))
			} else {
				currentX = misc.LerpFloat64(transition.StartX, transition.EndX, misc.EaseInExpo(t))
				currentY = misc.LerpFloat64(transition.StartY, transition.EndY, misc.EaseInExpo(t))
			}

			frame := c.frameSpec(currentX, currentY, span)
			switch c.settings.FrameSettings.TaskGeneration {
			case task.Row:
				var row uint
				for row = 0; row < c.settings.FrameSettings.Height; row++ {
					c.tasksTodo <- task.NewTaskForRow(c.taskGeneratedCount, frameNumber, frame, row)
					c.taskGeneratedCount++
				}
			case task.Image:
				c.tasksTodo <- task.NewTaskForImage(c.taskGeneratedCount, frameNumber, frame)
				c.taskGeneratedCount++
			default:
				c.logger.Fatalf("Unknown generation type: %d", c.settings.FrameSettings.TaskGeneration)
			}

			if zoomingIn {
				span /= transition.SpanStep
			} else {
				span *= transition.SpanStep
			}

			frameNumber++
		}
	}

	close(c.tasksTodo)
	c.logger.Debugf("Done generating %d tasks in %s", c.taskGeneratedCount, time.Since(startTime))
}

// IngestTasks drains returned tasks, assembles frames and writes each
// completed frame out as a png. It blocks until the whole run is done and
// every worker has left.
func (c *Coordinator) IngestTasks() {
	c.logger.Info("Ingesting tasks")

	var startTime = time.Now()

	for c.taskIngestedCount < c.taskCount {
		taskReceived := <-c.tasksDone
		c.taskIngestedCount++

		frame, ok := c.frames[int(taskReceived.FrameNumber)]
		if !ok {
			frame = frameTask{
				Counts:     make([]float64, c.pixelCount),
				PixelsLeft: c.pixelCount,
			}
		}

		// Record the escape values on the frame buffer
		offset := 0
		if c.settings.FrameSettings.TaskGeneration == task.Row {
			offset = int(taskReceived.Row * c.settings.FrameSettings.Width)
		}
		copy(frame.Counts[offset:offset+len(taskReceived.Results)], taskReceived.Results)
		frame.PixelsLeft -= uint(len(taskReceived.Results))
		c.frames[int(taskReceived.FrameNumber)] = frame

		c.mutex.Lock()
		delete(c.tasksHandedOut[taskReceived.WorkerAddress], taskReceived.ID)
		c.mutex.Unlock()

		// All escape values are in so the frame can be colored and saved
		if frame.PixelsLeft == 0 {
			path := filepath.Join(c.settings.SavePath, c.settings.RunName, fmt.Sprintf("%d.png", taskReceived.FrameNumber))
			misc.CheckError(c.saveFrame(path, frame.Counts), c.logger, misc.Fatal)
			c.logger.Infof("Saved frame to %s", path)

			// Remove the frame to conserve memory
			delete(c.frames, int(taskReceived.FrameNumber))
			c.frameCompletedCount++
		}
	}

	close(c.tasksDone)
	c.logger.Debugf("Done ingesting %d tasks in %s", c.taskIngestedCount, time.Since(startTime))

	c.mutex.Lock()
	workersLeft := len(c.clients)
	c.mutex.Unlock()
	c.logger.Infof("Waiting for %d workers to disconnect", workersLeft)
	c.workerWait.Wait()
	misc.CheckError(c.Server.Stop(), c.logger, misc.Warning)
}

func (c *Coordinator) saveFrame(path string, counts []float64) error {
	fs := c.settings.FrameSettings
	colors := make([]color.RGBA, fs.MaxIterations+1)

	switch fs.ColorMode {
	case mandelbrot.HistogramColors:
		histogram := mandelbrot.HistogramFromCounts(counts, fs.MaxIterations)
		mandelbrot.FillHistogramColors(colors, histogram, fs.OutColor, fs.AlmostInColor)
	case mandelbrot.CyclicColors:
		mandelbrot.FillCyclicColors(colors, fs.OutColor, fs.AlmostInColor)
	default:
		return fmt.Errorf("unknown color mode: %d", fs.ColorMode)
	}

	pixels := make([]uint8, 4*len(counts))
	mandelbrot.FillPixels(pixels, counts, colors)
	return misc.SavePNG(path, misc.RGBAFromPixels(pixels, int(fs.Width), int(fs.Height)))
}

func (c *Coordinator) RegisterWorker(workerServerAddress string, reply *misc.Nothing) error {
	// Create a client to communicate with this worker
	client := rpc.NewTcpClient(workerServerAddress, workerServerAddress)
	misc.CheckError(client.Connect(), c.logger, misc.Warning)

	c.mutex.Lock()
	c.clients[workerServerAddress] = &client
	// Track all tasks this worker checks out
	c.tasksHandedOut[workerServerAddress] = make(map[uint]task.Task)
	c.mutex.Unlock()

	c.logger.Infof("Worker joined: %s", workerServerAddress)
	c.workerWait.Add(1)

	return nil
}

func (c *Coordinator) DeRegisterWorker(workerServerAddress string, reply *misc.Nothing) error {
	c.mutex.Lock()
	client, registered := c.clients[workerServerAddress]
	tasks := c.tasksHandedOut[workerServerAddress]
	delete(c.tasksHandedOut, workerServerAddress)
	delete(c.clients, workerServerAddress)
	c.mutex.Unlock()

	if !registered {
		return fmt.Errorf("worker %s is not registered", workerServerAddress)
	}

	// Put tasks this worker has not returned yet back into the tasksTodo pool
	go func(tasks map[uint]task.Task) {
		for _, v := range tasks {
			c.tasksTodo <- v
		}
	}(tasks)

	// Disconnect from worker
	misc.CheckError(client.Disconnect(), c.logger, misc.Warning)

	c.logger.Infof("Worker left: %s", workerServerAddress)
	c.workerWait.Done()

	return nil
}

func (c *Coordinator) RollCall(nothing misc.Nothing, present *bool) error {
	*present = true
	return nil
}

func (c *Coordinator) GetTask(workerAddress string, reply *task.Task) error {
	todo, more := <-c.tasksTodo
	if !more {
		c.logger.Info("Telling worker that all tasks are handed out")
		return errors.New("all tasks handed out")
	}
	c.mutex.Lock()
	todo.WorkerAddress = workerAddress
	c.tasksHandedOut[workerAddress][todo.ID] = todo
	c.mutex.Unlock()
	*reply = todo
	return nil
}

func (c *Coordinator) ReturnTask(done task.Task, nothing *misc.Nothing) error {
	c.tasksDone <- done
	return nil
}

func (c *Coordinator) GetFrameSettings(nothing misc.Nothing, settings *FrameSettings) error {
	*settings = c.settings.FrameSettings
	return nil
}
