package daily

import (
	"time"
)

// DateLayout is the calendar-date format used for keys and saved games.
const DateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD for t in t's own location.
// Callers pass local time so the puzzle rolls over at the player's midnight.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the date key for clock(), defaulting to time.Now.
func Today(clock func() time.Time) string {
	if clock == nil {
		clock = time.Now
	}
	return DateKey(clock())
}

// WordIndex returns a deterministic index for a date key: the sum of its
// character codes modulo n.
func WordIndex(dateKey string, n int) int {
	if n <= 0 {
		return 0
	}
	sum := 0
	for i := 0; i < len(dateKey); i++ {
		sum += int(dateKey[i])
	}
	return sum % n
}
