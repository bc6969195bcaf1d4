package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Ledger errors. They mirror the error codes of the on-chain contract so
// callers can handle any Ledger implementation the same way.
var (
	ErrNotRegistered     = errors.New("player not registered")
	ErrAlreadyRegistered = errors.New("player already registered")
	ErrInvalidName       = errors.New("invalid player name")
	ErrInvalidScore      = errors.New("invalid score")
)

// Name limits, after trimming surrounding whitespace.
const (
	MinNameLength = 3
	MaxNameLength = 50
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

// PlayerInfo is a registered player's record.
type PlayerInfo struct {
	Address      string
	Name         string
	BestScore    uint64
	TotalGames   uint64
	RegisteredAt time.Time
}

// LeaderboardEntry is one ranked player.
type LeaderboardEntry struct {
	Rank       int
	Address    string
	Name       string
	BestScore  uint64
	TotalGames uint64
	LastPlayed time.Time
}

// GameRecord is a single submitted score.
type GameRecord struct {
	GameID    uint64
	Player    string
	Score     uint64
	Timestamp time.Time
}

// Ledger is the player registry and score ledger. Lookups of unknown
// players, ranks or games return a nil record and no error.
type Ledger interface {
	Register(ctx context.Context, addr, name string) error
	SubmitScore(ctx context.Context, addr string, score uint64) (uint64, error)
	IsRegistered(ctx context.Context, addr string) (bool, error)
	PlayerInfo(ctx context.Context, addr string) (*PlayerInfo, error)
	PlayerBestScore(ctx context.Context, addr string) (uint64, error)
	TotalGames(ctx context.Context) (uint64, error)
	LeaderboardEntry(ctx context.Context, rank int) (*LeaderboardEntry, error)
	GameDetails(ctx context.Context, gameID uint64) (*GameRecord, error)
}

// ValidateName trims name and checks its length and characters.
// It returns the trimmed name.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := len([]rune(name)); n < MinNameLength || n > MaxNameLength {
		return "", fmt.Errorf("%w: must be %d-%d characters", ErrInvalidName, MinNameLength, MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf("%w: only letters, numbers, spaces, hyphens and underscores are allowed", ErrInvalidName)
	}
	return name, nil
}

// Leaderboard fetches ranks 1..count, stopping at the first missing rank.
func Leaderboard(ctx context.Context, l Ledger, count int) ([]LeaderboardEntry, error) {
	entries := make([]LeaderboardEntry, 0, max(count, 0))
	for rank := 1; rank <= count; rank++ {
		e, err := l.LeaderboardEntry(ctx, rank)
		if err != nil {
			return nil, err
		}
		if e == nil {
			break
		}
		entries = append(entries, *e)
	}
	return entries, nil
}
