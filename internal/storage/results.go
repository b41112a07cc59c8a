package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ResultKind classifies a race result row.
type ResultKind string

const (
	ResultWin     ResultKind = "win"     // finish line crossed
	ResultTrial   ResultKind = "trial"   // every collectible gathered, score is seconds left
	ResultTimeout ResultKind = "timeout" // trial clock ran out
)

// RaceResult is the outcome of one level.
type RaceResult struct {
	ID        string
	GameID    string
	LevelID   string
	Kind      ResultKind
	Player    int // 1-based seat of the winner, 0 when nobody won
	Score     int
	CreatedAt time.Time
}

// SaveRaceResult records a level outcome and returns its ID.
// A new UUID is assigned when the result has none.
func (s *Store) SaveRaceResult(r RaceResult) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO race_results (id, game_id, level_id, kind, player, score)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.LevelID, string(r.Kind), r.Player, r.Score,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save race result: %w", err)
	}
	return r.ID, nil
}

// RaceResultByID retrieves a result by its ID.
// Returns nil without error if it does not exist.
func (s *Store) RaceResultByID(id string) (*RaceResult, error) {
	var r RaceResult
	var kind string
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, game_id, level_id, kind, player, score, created_at
		 FROM race_results WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.GameID, &r.LevelID, &kind, &r.Player, &r.Score, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query race result: %w", err)
	}
	r.Kind = ResultKind(kind)
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// RecentRaceResults retrieves the most recent results of a game, newest first.
func (s *Store) RecentRaceResults(gameID string, limit int) ([]RaceResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level_id, kind, player, score, created_at
		 FROM race_results
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query race results: %w", err)
	}
	defer rows.Close()

	var results []RaceResult
	for rows.Next() {
		var r RaceResult
		var kind string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.LevelID, &kind, &r.Player, &r.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Kind = ResultKind(kind)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// WinsByPlayer counts level wins per seat for a game.
func (s *Store) WinsByPlayer(gameID string) (map[int]int, error) {
	rows, err := s.db.Query(
		`SELECT player, COUNT(*) FROM race_results
		 WHERE game_id = ? AND kind = ?
		 GROUP BY player`,
		gameID, string(ResultWin),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count wins: %w", err)
	}
	defer rows.Close()

	wins := make(map[int]int)
	for rows.Next() {
		var player, n int
		if err := rows.Scan(&player, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		wins[player] = n
	}
	return wins, rows.Err()
}
