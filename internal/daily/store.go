package daily

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Result is one finished daily round.
type Result struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	WordIndex int       `json:"wordIndex"`
	Guesses   int       `json:"guesses"`
	Won       bool      `json:"won"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats summarises all recorded rounds.
type Stats struct {
	GamesPlayed   int         `json:"gamesPlayed"`
	Wins          int         `json:"wins"`
	CurrentStreak int         `json:"currentStreak"`
	MaxStreak     int         `json:"maxStreak"`
	Distribution  map[int]int `json:"guessDistribution"` // guesses -> wins
}

// WinRate returns wins as a percentage of games played.
func (s Stats) WinRate() int {
	if s.GamesPlayed == 0 {
		return 0
	}
	return s.Wins * 100 / s.GamesPlayed
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether a result exists for date.
func (s *Store) AlreadyPlayed(ctx context.Context, date string) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE date=?`, date,
	).Scan(&cnt); err != nil {
		return false, fmt.Errorf("count results for %s: %w", date, err)
	}
	return cnt > 0, nil
}

// InsertResult records r. A second result for the same date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(id, date, word_index, guesses, won)
VALUES(?,?,?,?,?)`, r.ID, r.Date, r.WordIndex, r.Guesses, r.Won,
	)
	if err != nil {
		return fmt.Errorf("insert result for %s: %w", r.Date, err)
	}
	return nil
}

// History returns up to limit results, newest date first.
func (s *Store) History(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, word_index, guesses, won, created_at
FROM daily_results
ORDER BY date DESC
LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		var created string
		if err := rows.Scan(&r.ID, &r.Date, &r.WordIndex, &r.Guesses, &r.Won, &created); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats aggregates every recorded round. A streak is a run of wins on
// consecutive calendar days; a loss or a skipped day ends it.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{Distribution: map[int]int{}}
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, guesses, won FROM daily_results ORDER BY date ASC`)
	if err != nil {
		return st, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var prev time.Time
	for rows.Next() {
		var (
			date    string
			guesses int
			won     bool
		)
		if err := rows.Scan(&date, &guesses, &won); err != nil {
			return st, fmt.Errorf("scan stats: %w", err)
		}
		day, err := time.Parse(DateLayout, date)
		if err != nil {
			return st, fmt.Errorf("parse result date %q: %w", date, err)
		}
		if !prev.IsZero() && !day.Equal(prev.AddDate(0, 0, 1)) {
			st.CurrentStreak = 0
		}
		prev = day

		st.GamesPlayed++
		if !won {
			st.CurrentStreak = 0
			continue
		}
		st.Wins++
		st.CurrentStreak++
		st.MaxStreak = max(st.MaxStreak, st.CurrentStreak)
		st.Distribution[guesses]++
	}
	return st, rows.Err()
}
