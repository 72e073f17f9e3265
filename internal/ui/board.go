package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/avask/serpent/internal/game"
	"github.com/avask/serpent/internal/lang"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Internal states for the board screen ---

type BoardState int

const (
	StatePlaying BoardState = iota
	StateGameOver
	StateLeaderboard
)

// ShowLeaderboardMsg switches the board straight to the leaderboard view
// (sent by the controller when entering from the intro screen).
type ShowLeaderboardMsg struct{}

// TickMsg drives one simulation step.
type TickMsg time.Time

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	snakeBodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	snakeHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("48")).Bold(true)
	foodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	voidStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))

	headRunes = map[game.Direction]string{
		game.Up:    "▲",
		game.Down:  "▼",
		game.Left:  "◀",
		game.Right: "▶",
	}
)

// --- BoardModel definition ---

type BoardModel struct {
	session *game.Session
	store   *game.BestScoreStore
	strings *lang.Table

	ScreenWidth  int
	ScreenHeight int

	state         BoardState
	gameOverState GameOverState
	updates       chan tea.Msg
	scores        []game.PlayerScore
}

func NewBoardModel(session *game.Session, store *game.BestScoreStore, strings *lang.Table, screenWidth int, screenHeight int) BoardModel {
	m := BoardModel{
		session:      session,
		store:        store,
		strings:      strings,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		state:        StatePlaying,
		updates:      make(chan tea.Msg, 8),
		gameOverState: GameOverState{
			Strings:        strings,
			ScreenWidth:    screenWidth,
			ScreenHeight:   screenHeight,
			SelectedButton: 0,
		},
	}
	if session != nil {
		session.Subscribe(m.updates)
	}
	return m
}

func (m BoardModel) Init() tea.Cmd {
	if m.session == nil {
		return nil
	}
	// The session never owns a timer: starting it here and re-arming a
	// single tick command per step keeps exactly one tick stream alive.
	m.session.Start()
	return tea.Batch(tickCmd(), m.listenForRedraws())
}

func tickCmd() tea.Cmd {
	return tea.Tick(game.GameTickDuration, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m BoardModel) listenForRedraws() tea.Cmd {
	return func() tea.Msg {
		return <-m.updates
	}
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowLeaderboardMsg:
		m.state = StateLeaderboard
		m.loadScores()
		return m, nil

	case LocaleChangedMsg:
		m.strings = msg.Strings
		m.gameOverState.Strings = msg.Strings
		return m, nil

	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.gameOverState.ScreenWidth = msg.Width
		m.gameOverState.ScreenHeight = msg.Height
		return m, nil

	case TickMsg:
		if m.session == nil || m.state != StatePlaying {
			return m, nil
		}
		m.session.Tick()
		if m.session.Snapshot().Running {
			return m, tickCmd()
		}
		// Terminal tick: the GameOverMsg is already in the update
		// channel, and no further tick command is armed.
		return m, nil

	case game.RedrawMsg:
		return m, m.listenForRedraws()

	case game.GameOverMsg:
		m.state = StateGameOver
		m.gameOverState.Score = msg.Score
		m.gameOverState.Best = msg.Best
		m.gameOverState.SelectedButton = 0
		return m, m.listenForRedraws()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == StateGameOver || m.state == StateLeaderboard {
		switch msg.String() {
		case "esc":
			if m.state == StateLeaderboard && m.session != nil {
				m.state = StateGameOver
				return m, nil
			}
			return m, func() tea.Msg { return BackToMenuMsg{} }
		case "left", "h":
			if m.state == StateGameOver {
				m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
			}
		case "right", "l":
			if m.state == StateGameOver {
				m.gameOverState.SelectedButton = min(1, m.gameOverState.SelectedButton+1)
			}
		case "r":
			if m.state == StateGameOver {
				return m.restart()
			}
		case "enter":
			switch m.state {
			case StateGameOver:
				// 0: Play Again, 1: Leaderboard
				if m.gameOverState.SelectedButton == 0 {
					return m.restart()
				}
				m.state = StateLeaderboard
				m.loadScores()
			case StateLeaderboard:
				if m.session != nil {
					m.state = StateGameOver
					return m, nil
				}
				return m, func() tea.Msg { return BackToMenuMsg{} }
			}
		}
		return m, nil
	}

	if m.session == nil {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return BackToMenuMsg{} }
	case "q":
		return m, tea.Quit
	case "w", "up":
		m.session.SetDirection(game.Up)
	case "s", "down":
		m.session.SetDirection(game.Down)
	case "a", "left":
		m.session.SetDirection(game.Left)
	case "d", "right":
		m.session.SetDirection(game.Right)
	}
	return m, nil
}

func (m BoardModel) restart() (tea.Model, tea.Cmd) {
	m.state = StatePlaying
	m.session.Start()
	return m, tickCmd()
}

func (m *BoardModel) loadScores() {
	if m.store == nil {
		return
	}
	scores, err := m.store.TopScores(10)
	if err != nil {
		log.Warn("Leaderboard unavailable", "error", err)
		return
	}
	m.scores = scores
}

func (m BoardModel) View() string {
	if m.state == StateLeaderboard {
		return m.gameOverState.RenderLeaderboardScreen(m.scores)
	}
	if m.state == StateGameOver {
		return m.gameOverState.RenderGameOverScreen()
	}
	if m.session == nil {
		return ""
	}

	snap := m.session.Snapshot()

	boardContent := renderGrid(snap)
	statusContent := m.renderStatusPanel(snap)

	joined := lipgloss.JoinHorizontal(lipgloss.Top,
		boardStyle.Render(boardContent),
		statusPanelStyle.Render(statusContent),
	)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight,
		lipgloss.Center, lipgloss.Center, joined)
}

// renderGrid draws the toroidal grid from a snapshot only, so it can be
// called at any time without touching game state.
func renderGrid(snap game.Snapshot) string {
	occupied := make(map[game.Cell]int, len(snap.Snake))
	for i, c := range snap.Snake {
		occupied[c] = i
	}
	head, hasHead := snap.Head()

	var sb strings.Builder
	for y := 0; y < game.GridSize; y++ {
		for x := 0; x < game.GridSize; x++ {
			c := game.Cell{X: x, Y: y}
			switch {
			case hasHead && c == head:
				sb.WriteString(snakeHeadStyle.Render(headRunes[snap.Direction] + " "))
			case hasSnakeAt(occupied, c):
				sb.WriteString(snakeBodyStyle.Render("██"))
			case c == snap.Food:
				sb.WriteString(foodStyle.Render("◆ "))
			default:
				sb.WriteString(voidStyle.Render("· "))
			}
		}
		if y < game.GridSize-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func hasSnakeAt(occupied map[game.Cell]int, c game.Cell) bool {
	_, ok := occupied[c]
	return ok
}

func (m BoardModel) renderStatusPanel(snap game.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("--- "+m.strings.Get("score", "Score")+" ---") + "\n")
	sb.WriteString(fmt.Sprintf("%s: %d\n", m.strings.Get("score", "Score"), snap.Score))
	sb.WriteString(fmt.Sprintf("%s: %d\n", m.strings.Get("best", "Best"), snap.Best))
	sb.WriteString(fmt.Sprintf("%s: %d\n", "Length", len(snap.Snake)))

	sb.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	sb.WriteString(m.strings.Get("controls", "WASD / Arrows: Move") + "\n")
	sb.WriteString(m.strings.Get("quit_hint", "Q / Ctrl+C: Quit") + "\n")
	sb.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("Ctrl+T: Language ("+m.strings.Locale()+")"))

	return sb.String()
}
