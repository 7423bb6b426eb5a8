package curve

// Input events reach the curves pre-classified by the host: a gamepad
// button, a gamepad axis value, a mouse gesture or a key. The curves never
// see raw device events.

const (
	ButtonDPadLeft Button = iota
	ButtonDPadRight
	ButtonDPadUp
	ButtonDPadDown
	ButtonNorth
	ButtonSouth
	ButtonEast
	ButtonWest
	ButtonLeftTrigger
	ButtonRightTrigger
	ButtonSelect
)

type Button int

func (b Button) String() string {
	return []string{
		"DPadLeft", "DPadRight", "DPadUp", "DPadDown",
		"North", "South", "East", "West",
		"LeftTrigger", "RightTrigger", "Select",
	}[b]
}

const (
	AxisLeftStickX Axis = iota
	AxisLeftStickY
	AxisRightStickX
	AxisRightStickY
)

type Axis int

func (a Axis) String() string {
	return []string{
		"LeftStickX", "LeftStickY", "RightStickX", "RightStickY",
	}[a]
}

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

type MouseButton int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

type Key int
