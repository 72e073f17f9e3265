package ui

import (
	"strings"

	"github.com/avask/serpent/internal/lang"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

// SetupModel asks for the player name the best score is stored under.
type SetupModel struct {
	strings    *lang.Table
	nameInput  textinput.Model
	focusIndex int // 0: Name, 1: Submit
	width      int
	height     int
}

func NewSetupModel(table *lang.Table, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		strings:   table,
		nameInput: ti,
		width:     w,
		height:    h,
	}
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LocaleChangedMsg:
		m.strings = msg.Strings
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return BackToMenuMsg{} }
		case "tab", "shift+tab", "up", "down":
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.nameInput.Blur()
			} else {
				m.focusIndex = 0
				m.nameInput.Focus()
			}
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.nameInput.Value())
			return m, func() tea.Msg { return SetupSubmitMsg{Name: name} }
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m SetupModel) View() string {
	var sb strings.Builder

	sb.WriteString(focusedStyle.Bold(true).Render("Who is playing?") + "\n\n")
	sb.WriteString(m.nameInput.View() + "\n\n")

	if m.focusIndex == 1 {
		sb.WriteString(submitButtonStyle.Render("START"))
	} else {
		sb.WriteString(blurredButtonStyle.Render("START"))
	}

	sb.WriteString("\n\n" + blurredStyle.Render("Enter: start  ESC: back"))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center, sb.String())
}
