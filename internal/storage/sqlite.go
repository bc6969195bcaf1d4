// Package storage provides the player registry and score ledger.
// Store keeps it in SQLite through the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store is a Ledger backed by a local SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ Ledger = (*Store)(nil)

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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions share one Store; a single connection serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			address TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			best_score INTEGER NOT NULL DEFAULT 0,
			best_game_id INTEGER NOT NULL DEFAULT 0,
			total_games INTEGER NOT NULL DEFAULT 0,
			registered_at INTEGER NOT NULL,
			last_played INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_players_rank ON players(best_score DESC, best_game_id ASC);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			address TEXT NOT NULL REFERENCES players(address),
			score INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_games_address ON games(address);
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

// Register adds a player under addr. The name is trimmed before storing.
func (s *Store) Register(ctx context.Context, addr, name string) error {
	name, err := ValidateName(name)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO players (address, name, registered_at) VALUES (?, ?, ?)
		 ON CONFLICT(address) DO NOTHING`,
		addr, name, s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot register player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot register player: %w", err)
	}
	if n == 0 {
		return ErrAlreadyRegistered
	}
	return nil
}

// SubmitScore records a finished game for a registered player and returns
// its game id. The player's best score only ever goes up.
func (s *Store) SubmitScore(ctx context.Context, addr string, score uint64) (uint64, error) {
	if score == 0 {
		return 0, ErrInvalidScore
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var best int64
	err = tx.QueryRowContext(ctx, "SELECT best_score FROM players WHERE address = ?", addr).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotRegistered
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query player: %w", err)
	}

	now := s.now().UnixMilli()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO games (address, score, created_at) VALUES (?, ?, ?)",
		addr, int64(score), now,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}
	gameID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if int64(score) > best {
		_, err = tx.ExecContext(ctx,
			`UPDATE players SET best_score = ?, best_game_id = ?, total_games = total_games + 1, last_played = ?
			 WHERE address = ?`,
			int64(score), gameID, now, addr,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			"UPDATE players SET total_games = total_games + 1, last_played = ? WHERE address = ?",
			now, addr,
		)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot update player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return uint64(gameID), nil
}

// IsRegistered reports whether addr has registered.
func (s *Store) IsRegistered(ctx context.Context, addr string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players WHERE address = ?", addr).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query player: %w", err)
	}
	return n > 0, nil
}

// PlayerInfo returns the player's record, or nil if addr is unknown.
func (s *Store) PlayerInfo(ctx context.Context, addr string) (*PlayerInfo, error) {
	var info PlayerInfo
	var best, games, regMs int64
	err := s.db.QueryRowContext(ctx,
		"SELECT address, name, best_score, total_games, registered_at FROM players WHERE address = ?",
		addr,
	).Scan(&info.Address, &info.Name, &best, &games, &regMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player: %w", err)
	}

	info.BestScore = uint64(best)
	info.TotalGames = uint64(games)
	info.RegisteredAt = time.UnixMilli(regMs)
	return &info, nil
}

// PlayerBestScore returns the player's best score, 0 if unknown.
func (s *Store) PlayerBestScore(ctx context.Context, addr string) (uint64, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT best_score FROM players WHERE address = ?", addr).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return uint64(best.Int64), nil
}

// TotalGames returns the number of games submitted by all players.
func (s *Store) TotalGames(ctx context.Context) (uint64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM games").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count games: %w", err)
	}
	return uint64(n), nil
}

// LeaderboardEntry returns the player at the 1-based rank, or nil past the
// end. Players are ranked by best score; on a tie the one who reached it
// first ranks higher. Players without a game are not ranked.
func (s *Store) LeaderboardEntry(ctx context.Context, rank int) (*LeaderboardEntry, error) {
	if rank < 1 {
		return nil, nil
	}

	var e LeaderboardEntry
	var best, games, lastMs int64
	err := s.db.QueryRowContext(ctx,
		`SELECT address, name, best_score, total_games, last_played
		 FROM players
		 WHERE total_games > 0
		 ORDER BY best_score DESC, best_game_id ASC
		 LIMIT 1 OFFSET ?`,
		rank-1,
	).Scan(&e.Address, &e.Name, &best, &games, &lastMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}

	e.Rank = rank
	e.BestScore = uint64(best)
	e.TotalGames = uint64(games)
	e.LastPlayed = time.UnixMilli(lastMs)
	return &e, nil
}

// GameDetails returns a submitted game, or nil if the id is unknown.
func (s *Store) GameDetails(ctx context.Context, gameID uint64) (*GameRecord, error) {
	var g GameRecord
	var id, score, createdMs int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, address, score, created_at FROM games WHERE id = ?",
		int64(gameID),
	).Scan(&id, &g.Player, &score, &createdMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}

	g.GameID = uint64(id)
	g.Score = uint64(score)
	g.Timestamp = time.UnixMilli(createdMs)
	return &g, nil
}

// Summary contains aggregated statistics over all games.
type Summary struct {
	Players    int
	Games      int
	HighScore  uint64
	AvgScore   float64
	LastPlayed time.Time // Zero if no game was played
}

// Summary aggregates the whole ledger.
func (s *Store) Summary(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&sum.Players); err != nil {
		return nil, fmt.Errorf("storage: cannot count players: %w", err)
	}

	var high, lastMs int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(MAX(created_at), 0)
		 FROM games`,
	).Scan(&sum.Games, &high, &sum.AvgScore, &lastMs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	sum.HighScore = uint64(high)
	if lastMs > 0 {
		sum.LastPlayed = time.UnixMilli(lastMs)
	}
	return sum, nil
}

// PlayerGames returns a player's most recent games, newest first.
func (s *Store) PlayerGames(ctx context.Context, addr string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, address, score, created_at
		 FROM games
		 WHERE address = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		addr, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var id, score, createdMs int64
		if err := rows.Scan(&id, &g.Player, &score, &createdMs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.GameID = uint64(id)
		g.Score = uint64(score)
		g.Timestamp = time.UnixMilli(createdMs)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}
