// Package storage provides SQLite-based persistence for run history, the
// coin wallet, and purchased upgrades.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Sentinel errors for wallet and shop operations.
var (
	ErrInsufficientFunds = errors.New("storage: insufficient funds")
	ErrMaxLevel          = errors.New("storage: upgrade already at max level")
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry represents one finished run.
type RunEntry struct {
	ID           int64
	GameID       string
	Score        int
	Coins        int     // Coins picked up during the run
	Payout       int     // Coins credited to the wallet (after multipliers)
	DurationSecs int     // Run length in whole seconds
	TopSpeed     float64 // Highest scroll speed reached, px/s
	CreatedAt    time.Time
}

// RunStats contains aggregated statistics for one game mode.
type RunStats struct {
	GameID      string
	RunsCount   int
	BestScore   int
	AvgScore    float64
	TotalPayout int64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			payout INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			top_speed REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS wallet (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			balance INTEGER NOT NULL DEFAULT 0
		);
		INSERT OR IGNORE INTO wallet (id, balance) VALUES (1, 0);

		CREATE TABLE IF NOT EXISTS upgrades (
			id TEXT PRIMARY KEY,
			level INTEGER NOT NULL DEFAULT 0
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun saves a finished run and credits its payout to the wallet in
// one transaction. Returns the ID of the inserted run.
func (s *Store) RecordRun(entry RunEntry) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO runs (game_id, score, coins, payout, duration_secs, top_speed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.GameID, entry.Score, entry.Coins, entry.Payout, entry.DurationSecs, entry.TopSpeed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if entry.Payout != 0 {
		if _, err := tx.Exec(
			"UPDATE wallet SET balance = balance + ? WHERE id = 1",
			entry.Payout,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot credit wallet: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs for the given game, ordered by score
// descending.
func (s *Store) TopRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, game_id, score, coins, payout, duration_secs, top_speed, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// RecentRuns retrieves the latest N runs for the given game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, game_id, score, coins, payout, duration_secs, top_speed, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Coins, &e.Payout,
			&e.DurationSecs, &e.TopSpeed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestScore returns the highest score for the given game.
// Returns 0 if no runs exist.
func (s *Store) BestScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given game. The wallet keeps whatever
// those runs paid out.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a specific game.
func (s *Store) Stats(gameID string) (*RunStats, error) {
	stats := &RunStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(payout), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RunsCount, &stats.BestScore, &stats.AvgScore, &stats.TotalPayout)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// AllStats retrieves statistics for every game that has recorded runs.
func (s *Store) AllStats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(payout), MAX(created_at)
		 FROM runs
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RunStats)
	for rows.Next() {
		var st RunStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.RunsCount, &st.BestScore, &st.AvgScore,
			&st.TotalPayout, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Balance returns the current wallet balance.
func (s *Store) Balance() (int, error) {
	var balance int
	err := s.db.QueryRow("SELECT balance FROM wallet WHERE id = 1").Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query balance: %w", err)
	}
	return balance, nil
}

// SpendBalance atomically deducts amount from the wallet.
// Returns ErrInsufficientFunds when the balance cannot cover it.
func (s *Store) SpendBalance(amount int) error {
	if amount < 0 {
		return fmt.Errorf("storage: negative spend amount %d", amount)
	}

	result, err := s.db.Exec(
		"UPDATE wallet SET balance = balance - ? WHERE id = 1 AND balance >= ?",
		amount, amount,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot spend balance: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot check spend result: %w", err)
	}
	if n == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// UpgradeLevels returns the purchased level of every upgrade, keyed by
// upgrade ID. Upgrades never bought are absent.
func (s *Store) UpgradeLevels() (map[string]int, error) {
	rows, err := s.db.Query("SELECT id, level FROM upgrades")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query upgrades: %w", err)
	}
	defer rows.Close()

	levels := make(map[string]int)
	for rows.Next() {
		var id string
		var level int
		if err := rows.Scan(&id, &level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan upgrade row: %w", err)
		}
		levels[id] = level
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return levels, nil
}

// UpgradeLevel returns the purchased level of one upgrade, 0 if never bought.
func (s *Store) UpgradeLevel(upgradeID string) (int, error) {
	var level int
	err := s.db.QueryRow(
		"SELECT level FROM upgrades WHERE id = ?",
		upgradeID,
	).Scan(&level)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query upgrade level: %w", err)
	}

	return level, nil
}

// PurchaseUpgrade spends cost coins and raises the upgrade one level, all
// in one transaction. Returns the new level, or ErrInsufficientFunds /
// ErrMaxLevel without changing anything.
func (s *Store) PurchaseUpgrade(upgradeID string, cost, maxLevel int) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var level int
	err = tx.QueryRow(
		"SELECT level FROM upgrades WHERE id = ?",
		upgradeID,
	).Scan(&level)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("storage: cannot query upgrade level: %w", err)
	}
	if level >= maxLevel {
		return level, ErrMaxLevel
	}

	result, err := tx.Exec(
		"UPDATE wallet SET balance = balance - ? WHERE id = 1 AND balance >= ?",
		cost, cost,
	)
	if err != nil {
		return level, fmt.Errorf("storage: cannot spend balance: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return level, fmt.Errorf("storage: cannot check spend result: %w", err)
	}
	if n == 0 {
		return level, ErrInsufficientFunds
	}

	if _, err := tx.Exec(
		`INSERT INTO upgrades (id, level) VALUES (?, 1)
		 ON CONFLICT(id) DO UPDATE SET level = level + 1`,
		upgradeID,
	); err != nil {
		return level, fmt.Errorf("storage: cannot raise upgrade level: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return level, fmt.Errorf("storage: cannot commit purchase: %w", err)
	}

	return level + 1, nil
}

// parseTime converts a scanned created_at column to time.Time. The driver
// may hand back either a time.Time or the raw string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
