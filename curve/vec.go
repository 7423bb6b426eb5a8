package curve

// Vec2 is a screen-space point or extent in pixels.
type Vec2 struct {
	X float32
	Y float32
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vec2) Scale(factor float32) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

// ScaleBy multiplies component wise.
func (v Vec2) ScaleBy(other Vec2) Vec2 {
	return Vec2{X: v.X * other.X, Y: v.Y * other.Y}
}

func (v Vec2) MinElement() float32 {
	if v.X < v.Y {
		return v.X
	}
	return v.Y
}
