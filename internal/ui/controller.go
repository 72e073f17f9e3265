package ui

import (
	"time"

	"github.com/avask/serpent/internal/game"
	"github.com/avask/serpent/internal/lang"
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	BoardScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Play, 1 for Leaderboard
type SetupSubmitMsg struct {
	Name string
}

// BackToMenuMsg returns the user to the intro screen.
type BackToMenuMsg struct{}

// LocaleChangedMsg carries the freshly loaded string table to whichever
// screen is active so it redraws with the new labels.
type LocaleChangedMsg struct {
	Strings *lang.Table
}

type ControllerModel struct {
	CurrentScreen Screen
	Store         *game.BestScoreStore
	Strings       *lang.Table

	IntroModel tea.Model
	SetupModel tea.Model
	BoardModel tea.Model

	ScreenWidth  int
	ScreenHeight int

	localeIndex int
	locales     []string
}

func NewControllerModel(store *game.BestScoreStore, strings *lang.Table, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		Store:         store,
		Strings:       strings,
		CurrentScreen: IntroScreen,

		IntroModel: NewIntroModel(strings, screenWidth, screenHeight),
		SetupModel: NewSetupModel(strings, screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		locales:      lang.Locales(),
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case BoardScreen:
		if m.BoardModel != nil {
			return m.BoardModel.View()
		}
		return "Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			// Cycle the UI language; the active screen redraws from the
			// new table, game state untouched.
			m.localeIndex = (m.localeIndex + 1) % len(m.locales)
			m.Strings = lang.Load(m.locales[m.localeIndex])
			table := m.Strings
			return m, func() tea.Msg { return LocaleChangedMsg{Strings: table} }
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		// Fall through to delegation so the active screen resizes too.

	case IntroSubmitMsg:
		if msg == 0 {
			m.CurrentScreen = SetupScreen
			m.SetupModel = NewSetupModel(m.Strings, m.ScreenWidth, m.ScreenHeight)
			return m, m.SetupModel.Init()
		}
		// View the leaderboard without starting a game.
		m.CurrentScreen = BoardScreen
		m.BoardModel = NewBoardModel(nil, m.Store, m.Strings, m.ScreenWidth, m.ScreenHeight)
		return m, tea.Sequence(m.BoardModel.Init(), func() tea.Msg { return ShowLeaderboardMsg{} })

	case SetupSubmitMsg:
		m.CurrentScreen = BoardScreen
		// A typed nil pointer must not leak into the interface value.
		var store game.ScoreStore
		if m.Store != nil {
			store = m.Store
		}
		session := game.NewSession(msg.Name, time.Now().UnixNano(), store)
		board := NewBoardModel(session, m.Store, m.Strings, m.ScreenWidth, m.ScreenHeight)
		m.BoardModel = board
		return m, board.Init()

	case BackToMenuMsg:
		m.CurrentScreen = IntroScreen
		m.BoardModel = nil
		m.IntroModel = NewIntroModel(m.Strings, m.ScreenWidth, m.ScreenHeight)
		return m, m.IntroModel.Init()
	}

	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
		cmds = append(cmds, cmd)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
		cmds = append(cmds, cmd)
	case BoardScreen:
		if m.BoardModel != nil {
			m.BoardModel, cmd = m.BoardModel.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}
