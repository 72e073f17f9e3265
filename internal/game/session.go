package game

import (
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// ScoreStore is the key-value persistence a Session records best scores
// into. Load returns 0 when nothing is stored or storage is unavailable.
type ScoreStore interface {
	Load(player string) int
	Save(player string, score int) error
}

// Session owns one snake game. All operations run on the caller's
// goroutine; an external driver decides the tick cadence. There is no
// internal timer and no locking.
type Session struct {
	snake     []Cell
	direction Direction
	pending   Direction
	food      Cell
	running   bool
	score     int
	best      int

	player    string
	rng       *rand.Rand
	store     ScoreStore
	observers []chan<- tea.Msg
}

// NewSession creates a stopped session. The best score for player is read
// once here; a nil store means scores are kept for the session only.
func NewSession(player string, seed int64, store ScoreStore) *Session {
	if player == "" {
		player = DefaultPlayer
	}

	s := &Session{
		player: player,
		rng:    rand.New(rand.NewSource(seed)),
		store:  store,
	}
	if store != nil {
		s.best = store.Load(player)
	}
	return s
}

// Start resets the session to the initial pose and marks it running. The
// best score survives restarts; everything else is rebuilt. The driver is
// expected to drop any previous tick stream before re-arming one, so a
// session never sees two concurrent tick sources.
func (s *Session) Start() {
	s.snake = s.snake[:0]
	for i := 0; i < InitialLength; i++ {
		s.snake = append(s.snake, Cell{X: initialHeadX - i, Y: initialHeadY})
	}
	s.direction = Right
	s.pending = Right
	s.score = 0
	s.running = true
	s.spawnFood()

	s.publish(RedrawMsg{})
}

// SetDirection buffers d to take effect on the next tick. Non-unit
// vectors and reversals of the committed direction are ignored. Bursty
// input between ticks collapses to the last legal vector received.
func (s *Session) SetDirection(d Direction) {
	if !s.running || !d.IsUnit() {
		return
	}
	if d == s.direction.Opposite() {
		return
	}
	s.pending = d
}

// Tick advances the game by one step. It is a no-op once the session is
// terminal, so a driver that keeps firing after game over is harmless.
func (s *Session) Tick() {
	if !s.running {
		return
	}

	s.direction = s.pending
	newHead := s.snake[0].Step(s.direction)

	// The tail cell still counts: it is vacated only after the collision
	// check, so moving into it is death.
	for _, c := range s.snake {
		if c == newHead {
			s.gameOver()
			return
		}
	}

	s.snake = append([]Cell{newHead}, s.snake...)

	if newHead == s.food {
		s.score++
		if s.score > s.best {
			s.best = s.score
			s.persistBest()
		}
		if !s.spawnFood() {
			// Snake covers the whole grid, nowhere left to go.
			s.gameOver()
			return
		}
	} else {
		s.snake = s.snake[:len(s.snake)-1]
	}

	s.publish(RedrawMsg{})
}

func (s *Session) gameOver() {
	s.running = false
	s.publish(GameOverMsg{Score: s.score, Best: s.best})
}

func (s *Session) persistBest() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.player, s.best); err != nil {
		log.Warn("Best score not persisted", "player", s.player, "score", s.best, "error", err)
	}
}

// spawnFood places food on a uniformly random free cell. Random draws are
// capped, then a scan takes the first free cell, so respawn terminates no
// matter how long the snake gets. Returns false when the grid is full.
func (s *Session) spawnFood() bool {
	for i := 0; i < maxFoodDraws; i++ {
		c := Cell{X: s.rng.Intn(GridSize), Y: s.rng.Intn(GridSize)}
		if !s.occupied(c) {
			s.food = c
			return true
		}
	}
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			c := Cell{X: x, Y: y}
			if !s.occupied(c) {
				s.food = c
				return true
			}
		}
	}
	return false
}

func (s *Session) occupied(c Cell) bool {
	for _, sc := range s.snake {
		if sc == c {
			return true
		}
	}
	return false
}
