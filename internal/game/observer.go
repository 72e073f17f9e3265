package game

import (
	tea "github.com/charmbracelet/bubbletea"
)

// RedrawMsg tells a subscribed renderer the session state changed and a
// fresh Snapshot should be drawn.
type RedrawMsg struct{}

// GameOverMsg is published once when a session hits self-collision.
type GameOverMsg struct {
	Score int
	Best  int
}

// Subscribe registers a renderer channel. Publishes never block: a
// subscriber that falls behind misses intermediate redraws, which is
// harmless since every redraw reads the full current state.
func (s *Session) Subscribe(ch chan<- tea.Msg) {
	s.observers = append(s.observers, ch)
}

func (s *Session) publish(msg tea.Msg) {
	for _, ch := range s.observers {
		select {
		case ch <- msg:
		default:
		}
	}
}
