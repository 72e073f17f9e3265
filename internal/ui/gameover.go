package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avask/serpent/internal/game"
	"github.com/avask/serpent/internal/lang"
	"github.com/charmbracelet/lipgloss"
)

// GameOverState holds the data and local state for rendering the game
// over and leaderboard screens.
type GameOverState struct {
	Strings        *lang.Table
	Score          int
	Best           int
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// RenderGameOverScreen draws the death message and buttons. The label
// comes from the string table with a literal fallback.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(2, 5).
		Align(lipgloss.Center)

	title := messageStyle.Render(g.Strings.Get("game_over", "G A M E   O V E R"))

	stats := fmt.Sprintf("\n%s: %d\n%s: %d\n\n",
		g.Strings.Get("score", "Score"), g.Score,
		g.Strings.Get("best", "Best"), g.Best)

	playButton := gameOverButtonStyle.Render("PLAY AGAIN (R)")
	leaderboardButton := gameOverButtonStyle.Render(strings.ToUpper(g.Strings.Get("leaderboard", "Leaderboard")))

	if g.SelectedButton == 0 {
		playButton = selectedButtonStyle.Render("PLAY AGAIN (R)")
	} else {
		leaderboardButton = selectedButtonStyle.Render(strings.ToUpper(g.Strings.Get("leaderboard", "Leaderboard")))
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, playButton, leaderboardButton)
	hint := lipgloss.NewStyle().Faint(true).Render(g.Strings.Get("restart_hint", "Press R to play again, ESC for menu"))

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, buttons, hint)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// RenderLeaderboardScreen draws the stored best scores as a table.
func (g *GameOverState) RenderLeaderboardScreen(scores []game.PlayerScore) string {
	var tableContent strings.Builder

	nameWidth := 18
	scoreWidth := 8

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(3).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(scoreWidth).Render(g.Strings.Get("best", "Best")),
	)
	tableContent.WriteString(header + "\n")

	for i, score := range scores {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(3).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Width(nameWidth).Render(score.Player),
			leaderboardRowStyle.Width(scoreWidth).Render(strconv.Itoa(score.Score)),
		)
		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}
	if len(scores) == 0 {
		tableContent.WriteString(leaderboardRowStyle.Render("No scores yet") + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render(strings.ToUpper(g.Strings.Get("leaderboard", "Leaderboard")))
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to go back.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		instruction,
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
