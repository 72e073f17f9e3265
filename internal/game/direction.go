package game

// Direction is a unit vector on the grid. Y grows downward, matching
// terminal rows.
type Direction struct {
	Dx, Dy int
}

var (
	Up    = Direction{Dx: 0, Dy: -1}
	Down  = Direction{Dx: 0, Dy: 1}
	Left  = Direction{Dx: -1, Dy: 0}
	Right = Direction{Dx: 1, Dy: 0}
)

// IsUnit reports whether d is one of the four legal movement vectors.
// Anything else coming from an input adapter is dropped.
func (d Direction) IsUnit() bool {
	return d == Up || d == Down || d == Left || d == Right
}

// Opposite returns the reversed vector.
func (d Direction) Opposite() Direction {
	return Direction{Dx: -d.Dx, Dy: -d.Dy}
}
