package ui

import (
	"strings"

	"github.com/avask/serpent/internal/lang"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	strings  *lang.Table
	selected int // 0: Play, 1: Leaderboard
	width    int
	height   int
}

func NewIntroModel(table *lang.Table, w, h int) IntroModel {
	return IntroModel{strings: table, selected: 0, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LocaleChangedMsg:
		m.strings = msg.Strings
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			if m.selected == 0 {
				m.selected = 1
			} else {
				m.selected = 0
			}
		case "q":
			return m, tea.Quit
		case "enter":
			return m, func() tea.Msg { return IntroSubmitMsg(m.selected) }
		}
	}
	return m, nil
}

var serpentAscii = `
    ____  ____  ____  ____  ____  _  _  ____
   / ___)(  __)(  _ \(  _ \(  __)( \( )(_  _)
   \___ \ ) _)  )   / ) __/ ) _)  )  (   )(
   (____/(____)(_)\_)(_)   (____)(_)\_) (__)
              __
           __/ o\_______
          (__.--.--.--._)======--
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("87"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	introSelectedStyle = introButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))
)

func (m IntroModel) View() string {
	playButton := introButtonStyle.Render("PLAY")
	leaderboardButton := introButtonStyle.Render(strings.ToUpper(m.strings.Get("leaderboard", "Leaderboard")))

	if m.selected == 0 {
		playButton = introSelectedStyle.Render("PLAY")
	} else {
		leaderboardButton = introSelectedStyle.Render(strings.ToUpper(m.strings.Get("leaderboard", "Leaderboard")))
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, playButton, leaderboardButton)
	hint := lipgloss.NewStyle().Faint(true).Render("Ctrl+T: Language (" + m.strings.Locale() + ")  Q: Quit")

	content := lipgloss.JoinVertical(lipgloss.Center,
		asciiStyle.Render(serpentAscii),
		buttons,
		hint,
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center, content)
}
