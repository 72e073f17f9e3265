package main

import (
	"fmt"
	"os"

	"github.com/avask/serpent/internal/game"
	"github.com/avask/serpent/internal/lang"
	"github.com/avask/serpent/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const defaultDBPath = "serpent_scores.db"

func main() {
	dbPath := os.Getenv("SERPENT_DB_PATH")
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := game.OpenBestScoreStore(dbPath)
	if err != nil {
		// The game plays fine without persistence, best score just
		// starts from zero each run.
		log.Warn("Score store unavailable", "path", dbPath, "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	locale := os.Getenv("SERPENT_LOCALE")
	if locale == "" {
		locale = lang.DefaultLocale
	}

	controller := ui.NewControllerModel(store, lang.Load(locale), 80, 24)
	p := tea.NewProgram(controller, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
