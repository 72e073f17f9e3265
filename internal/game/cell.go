package game

// Cell is a grid coordinate. The grid is toroidal, so stepping off one
// edge re-enters on the opposite side.
type Cell struct {
	X, Y int
}

// Step returns the neighbouring cell in the given direction, wrapped at
// the grid edges.
func (c Cell) Step(d Direction) Cell {
	nextX := c.X + d.Dx
	nextY := c.Y + d.Dy

	if nextX < 0 {
		nextX = GridSize - 1
	} else if nextX >= GridSize {
		nextX = 0
	}
	if nextY < 0 {
		nextY = GridSize - 1
	} else if nextY >= GridSize {
		nextY = 0
	}

	return Cell{X: nextX, Y: nextY}
}
