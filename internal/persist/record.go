package persist

import "github.com/robalobadob/wordle/apps/go-daily/internal/game"

// Record is the stored shape of a session, one JSON value under one key.
// WordleData.Wordle always holds the obfuscated target.
type Record struct {
	WordleData     WordleData `json:"wordleData"`
	Guesses        []Guess    `json:"guesses"`
	CurrentGuess   int        `json:"currentGuess"`
	IsGameover     bool       `json:"isGameover"`
	ShowHint       bool       `json:"showHint"`
	LastPlayedDate string     `json:"lastPlayedDate"`
	Message        string     `json:"message"`
}

type WordleData struct {
	Wordle string `json:"wordle"`
	Hint   string `json:"hint"`
}

type Guess struct {
	IsValidated bool   `json:"isValidated"`
	Value       string `json:"value"`
}

// toRecord converts a session; encodedTarget replaces the plaintext word.
func toRecord(s *game.Session, encodedTarget string) Record {
	guesses := make([]Guess, len(s.Attempts))
	for i, a := range s.Attempts {
		guesses[i] = Guess{IsValidated: a.Submitted, Value: a.Value}
	}
	return Record{
		WordleData:     WordleData{Wordle: encodedTarget, Hint: s.Hint},
		Guesses:        guesses,
		CurrentGuess:   s.Active,
		IsGameover:     s.Over,
		ShowHint:       s.HintRevealed,
		LastPlayedDate: s.Date,
		Message:        s.Message,
	}
}

// session rebuilds session fields; plainTarget is the decoded word.
func (r Record) session(plainTarget string) game.Session {
	attempts := make([]game.Attempt, len(r.Guesses))
	for i, g := range r.Guesses {
		attempts[i] = game.Attempt{Value: g.Value, Submitted: g.IsValidated}
	}
	return game.Session{
		Target:       plainTarget,
		Hint:         r.WordleData.Hint,
		Attempts:     attempts,
		Active:       r.CurrentGuess,
		Over:         r.IsGameover,
		HintRevealed: r.ShowHint,
		Date:         r.LastPlayedDate,
		Message:      r.Message,
	}
}
