// internal/game/types.go
//
// Core type definitions for the daily puzzle.
// Defines:
//   - LetterStatus: per-letter verdict of a submitted attempt.
//   - Attempt: one row of the board.
//   - Session: the mutable state of today's round.
//   - KeyIntent: the normalised input the session accepts.

package game

import "github.com/robalobadob/wordle/apps/go-daily/internal/words"

const (
	WordLength = words.WordLength // letters per attempt
	MaxTries   = 6                // attempts per day
)

// Messages shown when a round ends.
const (
	MessageWon     = "Congratulations, You won, Comeback tomorrow for a new wordle 😉"
	MessageLostFmt = "Game Over! The wordle of the day is %s"
)

// LetterStatus is the verdict for one letter of a submitted attempt.
//   - "correct":   letter is in the target at this position.
//   - "misplaced": letter is somewhere else in the target.
//   - "incorrect": letter is not in the target.
type LetterStatus string

const (
	StatusCorrect   LetterStatus = "correct"
	StatusMisplaced LetterStatus = "misplaced"
	StatusIncorrect LetterStatus = "incorrect"
)

// State is the coarse lifecycle of a session.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Attempt is one row of the board. Once Submitted it is never edited again.
type Attempt struct {
	Value     string // 0..WordLength lowercase letters
	Submitted bool
}

// Session holds today's round.
//
// Invariants after every operation:
//   - 0 <= Active <= MaxTries and len(Attempts) == MaxTries.
//   - Attempts before Active are submitted, attempts after it are not; the
//     attempt at Active is submitted only when it won the round.
//   - Over iff the round was won or Active == MaxTries.
type Session struct {
	Target       string    // plaintext answer, never persisted as-is
	Hint         string    // catalog hint for Target
	Attempts     []Attempt // fixed capacity MaxTries
	Active       int       // index of the attempt being edited
	Over         bool      // won or out of attempts
	Won          bool      // the attempt at Active matched Target
	HintRevealed bool      // the player asked for the hint
	Date         string    // YYYY-MM-DD the session belongs to
	Message      string    // end-of-round text
}

// IntentKind tags a KeyIntent.
type IntentKind int

const (
	IntentCharacter IntentKind = iota + 1
	IntentSubmit
	IntentDelete
)

// KeyIntent is a normalised key press: a letter, submit or delete.
type KeyIntent struct {
	Kind IntentKind
	Char rune // set for IntentCharacter only
}

// Modifiers describes keys held while another key was pressed.
type Modifiers struct {
	Ctrl bool
	Meta bool
	Alt  bool
}
