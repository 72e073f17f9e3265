package game

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const bestScoreTable = "best_scores"

// BestScoreStore keeps one best score per player in sqlite. Storage
// trouble never stops a game: Load degrades to zero and Save failures
// are reported to the caller for logging only.
type BestScoreStore struct {
	db *sql.DB
}

func OpenBestScoreStore(path string) (*BestScoreStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open score database %s: %w", path, err)
	}

	store := &BestScoreStore{db: db}
	if err := store.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (store *BestScoreStore) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + bestScoreTable + ` (
		player TEXT PRIMARY KEY,
		score INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := store.db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	return nil
}

// Load returns the stored best score for player, or 0 when none exists
// or the read fails.
func (store *BestScoreStore) Load(player string) int {
	const selectSQL = `SELECT score FROM ` + bestScoreTable + ` WHERE player = ?;`

	var score int
	err := store.db.QueryRow(selectSQL, player).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0
	}
	if err != nil {
		log.Warn("Best score read failed, starting from zero", "player", player, "error", err)
		return 0
	}
	return score
}

// Save upserts the best score for player.
func (store *BestScoreStore) Save(player string, score int) error {
	const upsertSQL = `
	INSERT INTO ` + bestScoreTable + ` (player, score, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(player) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at;`

	_, err := store.db.Exec(upsertSQL, player, score)
	if err != nil {
		return fmt.Errorf("failed to upsert best score for %s: %w", player, err)
	}
	return nil
}

// TopScores retrieves the highest stored scores for the leaderboard view.
func (store *BestScoreStore) TopScores(limit int) ([]PlayerScore, error) {
	const selectSQL = `
	SELECT player, score FROM ` + bestScoreTable + `
	ORDER BY score DESC, updated_at ASC
	LIMIT ?;`

	rows, err := store.db.Query(selectSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query best scores: %w", err)
	}
	defer rows.Close()

	var scores []PlayerScore
	for rows.Next() {
		var ps PlayerScore
		if err := rows.Scan(&ps.Player, &ps.Score); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scores = append(scores, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return scores, nil
}

func (store *BestScoreStore) Close() error {
	return store.db.Close()
}

type PlayerScore struct {
	Player string
	Score  int
}
