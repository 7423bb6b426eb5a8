package task

import "fmt"

const (
	Row Generation = iota
	Image
)

// Generation selects how much of a frame a single task covers.
type Generation int

func (g Generation) String() string {
	return []string{
		"Row", "Image",
	}[g]
}

// Task is one unit of work handed to a worker over rpc. The worker fills
// Results with one iteration count per pixel of the covered area. Counts
// travel back instead of colors because histogram coloring needs the whole
// frame before any pixel can be colored.
type Task struct {
	ID            uint
	FrameNumber   uint
	Row           uint
	Frame         FrameSpec
	Results       []float64
	ComputedCount int64
	WorkerAddress string
}

func NewTaskForRow(id uint, frameNumber uint, frame FrameSpec, row uint) Task {
	return Task{
		ID:          id,
		FrameNumber: frameNumber,
		Row:         row,
		Frame:       frame,
	}
}

func NewTaskForImage(id uint, frameNumber uint, frame FrameSpec) Task {
	return Task{
		ID:          id,
		FrameNumber: frameNumber,
		Frame:       frame,
	}
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("Frame Number: %d ", t.FrameNumber)
	output += fmt.Sprintf("Row: %d ", t.Row)
	output += fmt.Sprintf("Result Count: %d}", len(t.Results))
	return output
}

// PixelCount is the number of results this task is expected to carry back.
func (t *Task) PixelCount(generation Generation) int {
	if generation == Row {
		return int(t.Frame.Width)
	}
	return int(t.Frame.Width * t.Frame.Height)
}
