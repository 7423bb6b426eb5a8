package curve

const pinEpsilon = 0.01

// AxisPinner freezes axis-driven parameters while a trigger is held, so
// releasing the sticks does not snap the parameters back to center. While
// pinned, incoming values are swallowed until every tracked axis has
// returned to its rest position.
type AxisPinner struct {
	values  map[Axis]float32
	pinning bool
}

func NewAxisPinner() AxisPinner {
	return AxisPinner{values: make(map[Axis]float32)}
}

func (p *AxisPinner) Pin() {
	p.pinning = true
}

// Track records the axis value and reports whether the event should be
// applied to the curve parameters.
func (p *AxisPinner) Track(axis Axis, value float32) bool {
	p.values[axis] = value

	if !p.pinning {
		return true
	}

	for _, v := range p.values {
		if v > pinEpsilon || v < -pinEpsilon {
			return false
		}
	}
	p.pinning = false
	// The event that released the pin is itself swallowed.
	return false
}
