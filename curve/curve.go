package curve

import "fmt"

// InteractiveCurve is implemented by every visual generator in this
// repository. The host calls ComputeDrawables once per frame with the
// viewport center and size in pixels, and forwards classified input
// events through the Adjust methods between frames. The String method
// feeds the title bar.
type InteractiveCurve interface {
	fmt.Stringer

	ComputeDrawables(dest Vec2, size Vec2) ([]Drawable, error)

	AdjustForButton(btn Button)
	AdjustForAxis(axis Axis, value float32)
	AdjustForMouseWheel(x float32, y float32, wheelYDir float32)
	AdjustForMouseDrag(x float32, y float32, dragStart Vec2)
	AdjustForMouseButtonUp(btn MouseButton, x float32, y float32, dragStart Vec2)
	AdjustForKeyUp(key Key)

	// ScreenshotFileName encodes the current parameters so a capture can
	// be reproduced later. No extension, no directory.
	ScreenshotFileName() string

	Name() string
}

// DefaultHandlers provides no-op input handlers so a curve only has to
// implement the events it reacts to.
type DefaultHandlers struct{}

func (DefaultHandlers) AdjustForButton(btn Button)                      {}
func (DefaultHandlers) AdjustForAxis(axis Axis, value float32)          {}
func (DefaultHandlers) AdjustForMouseWheel(x, y, wheelYDir float32)     {}
func (DefaultHandlers) AdjustForMouseDrag(x, y float32, dragStart Vec2) {}
func (DefaultHandlers) AdjustForMouseButtonUp(btn MouseButton, x, y float32, dragStart Vec2) {
}
func (DefaultHandlers) AdjustForKeyUp(key Key) {}
