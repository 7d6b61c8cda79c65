package game

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Evaluate returns one status per letter of attempt:
//   - correct   when the target has the same letter at that position,
//   - misplaced when the target contains the letter anywhere else,
//   - incorrect otherwise.
//
// Positions are judged independently: a letter guessed twice but present
// once in the target is credited at both positions.
func Evaluate(attempt, target string) []LetterStatus {
	tr := []rune(strings.ToLower(target))
	ar := []rune(strings.ToLower(attempt))
	out := make([]LetterStatus, len(ar))
	for i, r := range ar {
		switch {
		case i < len(tr) && r == tr[i]:
			out[i] = StatusCorrect
		case slices.Contains(tr, r):
			out[i] = StatusMisplaced
		default:
			out[i] = StatusIncorrect
		}
	}
	return out
}

// Keyboard aggregates letter verdicts across submitted attempts for
// on-screen key highlighting. Each list is sorted and free of duplicates.
// A letter may appear in both Correct and Misplaced; Status resolves that.
type Keyboard struct {
	Correct   []string `json:"correctLetters"`
	Misplaced []string `json:"misplacedLetters"`
	Incorrect []string `json:"incorrectLetters"`
}

// BuildKeyboard evaluates every letter of every submitted attempt.
func BuildKeyboard(attempts []Attempt, target string) Keyboard {
	var correct, misplaced, incorrect []string
	for _, a := range attempts {
		if !a.Submitted {
			continue
		}
		for i, st := range Evaluate(a.Value, target) {
			letter := string([]rune(a.Value)[i])
			switch st {
			case StatusCorrect:
				correct = append(correct, letter)
			case StatusMisplaced:
				misplaced = append(misplaced, letter)
			default:
				incorrect = append(incorrect, letter)
			}
		}
	}
	return Keyboard{
		Correct:   sortedUniq(correct),
		Misplaced: sortedUniq(misplaced),
		Incorrect: sortedUniq(incorrect),
	}
}

// Status returns the highest-priority verdict seen for letter
// (correct > misplaced > incorrect) and whether it was seen at all.
func (k Keyboard) Status(letter rune) (LetterStatus, bool) {
	l := strings.ToLower(string(letter))
	switch {
	case slices.Contains(k.Correct, l):
		return StatusCorrect, true
	case slices.Contains(k.Misplaced, l):
		return StatusMisplaced, true
	case slices.Contains(k.Incorrect, l):
		return StatusIncorrect, true
	}
	return "", false
}

func sortedUniq(in []string) []string {
	out := lo.Uniq(in)
	slices.Sort(out)
	return out
}
