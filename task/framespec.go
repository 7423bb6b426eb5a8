package task

import "fmt"

// FrameSpec locates one frame on the complex plane and sizes it in pixels.
// It is everything a worker needs to build its own view of the frame.
type FrameSpec struct {
	CenterX       float64
	CenterY       float64
	SpanX         float64
	SpanY         float64
	Width         uint
	Height        uint
	MaxIterations int
}

func (f *FrameSpec) String() string {
	output := "{FrameSpec "
	output += fmt.Sprintf("CenterX: %f ", f.CenterX)
	output += fmt.Sprintf("CenterY: %f ", f.CenterY)
	output += fmt.Sprintf("SpanX: %f ", f.SpanX)
	output += fmt.Sprintf("SpanY: %f ", f.SpanY)
	output += fmt.Sprintf("Width: %d ", f.Width)
	output += fmt.Sprintf("Height: %d ", f.Height)
	output += fmt.Sprintf("MaxIterations: %d}", f.MaxIterations)
	return output
}
