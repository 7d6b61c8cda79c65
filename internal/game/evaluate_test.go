package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	C, M, I := StatusCorrect, StatusMisplaced, StatusIncorrect
	tests := []struct {
		attempt, target string
		want            []LetterStatus
	}{
		{"match", "match", []LetterStatus{C, C, C, C, C}},
		// w,o absent; r misplaced; o absent; n absent; g present at index 2 of "right"
		{"wrong", "right", []LetterStatus{I, M, I, I, M}},
		{"plant", "crane", []LetterStatus{I, I, C, C, I}},
		{"MATCH", "match", []LetterStatus{C, C, C, C, C}},
		// both e's are credited even though the target has one
		{"eerie", "crane", []LetterStatus{M, M, M, I, C}},
		{"speed", "abide", []LetterStatus{I, I, M, M, M}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Evaluate(tt.attempt, tt.target), "%s vs %s", tt.attempt, tt.target)
	}
}

func TestEvaluateShortAttempt(t *testing.T) {
	assert.Equal(t, []LetterStatus{StatusCorrect, StatusMisplaced}, Evaluate("ca", "crane"))
	assert.Empty(t, Evaluate("", "crane"))
}

func TestBuildKeyboard(t *testing.T) {
	attempts := []Attempt{
		{Value: "plant", Submitted: true},
		{Value: "rance", Submitted: true},
		{Value: "zzz"}, // not submitted, ignored
	}
	k := BuildKeyboard(attempts, "crane")

	assert.Equal(t, []string{"a", "e", "n"}, k.Correct)
	assert.Equal(t, []string{"a", "c", "n", "r"}, k.Misplaced)
	assert.Equal(t, []string{"l", "p", "t"}, k.Incorrect)

	st, ok := k.Status('a')
	assert.True(t, ok)
	assert.Equal(t, StatusCorrect, st, "correct wins over misplaced")

	st, ok = k.Status('R')
	assert.True(t, ok)
	assert.Equal(t, StatusMisplaced, st)

	st, ok = k.Status('p')
	assert.True(t, ok)
	assert.Equal(t, StatusIncorrect, st)

	_, ok = k.Status('z')
	assert.False(t, ok)
}

func TestBuildKeyboardEmpty(t *testing.T) {
	k := BuildKeyboard(make([]Attempt, MaxTries), "crane")
	assert.Empty(t, k.Correct)
	assert.Empty(t, k.Misplaced)
	assert.Empty(t, k.Incorrect)
}
