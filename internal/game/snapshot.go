package game

// Snapshot is a read-only copy of the visible session state. Renderers
// draw from it alone, so redraws are idempotent and safe at any time:
// mid-game, after game over, or on an external theme/locale change.
type Snapshot struct {
	Snake     []Cell
	Direction Direction
	Food      Cell
	Running   bool
	Score     int
	Best      int
}

func (s *Session) Snapshot() Snapshot {
	snake := make([]Cell, len(s.snake))
	copy(snake, s.snake)

	return Snapshot{
		Snake:     snake,
		Direction: s.direction,
		Food:      s.food,
		Running:   s.running,
		Score:     s.score,
		Best:      s.best,
	}
}

// Head returns the snake's head cell, or false for a session that was
// never started.
func (snap Snapshot) Head() (Cell, bool) {
	if len(snap.Snake) == 0 {
		return Cell{}, false
	}
	return snap.Snake[0], true
}
