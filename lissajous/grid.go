package lissajous

import "github.com/jletroui/rcurves/curve"

// gridIndex is a uniform bucket grid for radius queries. With the cell
// size equal to the query radius, all candidates for a query live in the
// 3x3 cell neighborhood.
type gridIndex struct {
	cells    map[cellKey][]curve.Vec2
	cellSize float32
}

type cellKey struct {
	x int32
	y int32
}

func newGridIndex(points []curve.Vec2, radius float32) *gridIndex {
	index := &gridIndex{
		cells:    make(map[cellKey][]curve.Vec2),
		cellSize: radius,
	}
	for _, point := range points {
		key := index.keyFor(point)
		index.cells[key] = append(index.cells[key], point)
	}
	return index
}

func (g *gridIndex) keyFor(point curve.Vec2) cellKey {
	return cellKey{
		x: int32(point.X / g.cellSize),
		y: int32(point.Y / g.cellSize),
	}
}

// neighbors returns all indexed points within the query radius of the
// given point, the point itself excluded.
func (g *gridIndex) neighbors(point curve.Vec2) []curve.Vec2 {
	center := g.keyFor(point)
	radius2 := g.cellSize * g.cellSize

	var found []curve.Vec2
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			key := cellKey{x: center.x + dx, y: center.y + dy}
			for _, candidate := range g.cells[key] {
				if candidate == point {
					continue
				}
				distX := candidate.X - point.X
				distY := candidate.Y - point.Y
				if distX*distX+distY*distY < radius2 {
					found = append(found, candidate)
				}
			}
		}
	}
	return found
}
