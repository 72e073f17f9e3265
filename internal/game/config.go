package game

import "time"

const (
	// GameTickDuration is the cadence the UI drives Tick at. The session
	// itself only knows "advance by one step".
	GameTickDuration = 125 * time.Millisecond

	GridSize      = 18
	InitialLength = 3

	initialHeadX = 4
	initialHeadY = GridSize / 2

	// Food respawn draws random cells until a free one comes up. The cap
	// keeps respawn bounded when the snake covers most of the grid.
	maxFoodDraws = GridSize * GridSize
)

// DefaultPlayer is the best-score key used when no name was entered.
const DefaultPlayer = "anonymous"
