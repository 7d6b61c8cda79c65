package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewProjectsBoard(t *testing.T) {
	s := newTestSession()
	typeWord(t, s, "plant")
	require.True(t, s.Submit())
	typeWord(t, s, "cr")

	v := s.View()
	assert.Equal(t, StatePlaying, v.State)
	assert.Equal(t, 1, v.Active)
	assert.Equal(t, MaxTries-1, v.TriesLeft)
	require.Len(t, v.Rows, MaxTries)

	first := v.Rows[0]
	assert.True(t, first.Submitted)
	assert.Equal(t, Cell{Letter: "a", Status: StatusCorrect}, first.Cells[2])
	assert.Equal(t, Cell{Letter: "p", Status: StatusIncorrect}, first.Cells[0])

	second := v.Rows[1]
	assert.False(t, second.Submitted)
	assert.Equal(t, Cell{Letter: "c"}, second.Cells[0], "no status before submit")
	assert.Equal(t, Cell{}, second.Cells[4])

	assert.Equal(t, []string{"l", "p", "t"}, v.Keyboard.Incorrect)
}

func TestViewHintGatedOnOver(t *testing.T) {
	s := newTestSession()
	assert.Empty(t, s.View().Hint)

	s.RevealHint()
	assert.Equal(t, "a bird", s.View().Hint)

	typeWord(t, s, "crane")
	require.True(t, s.Submit())
	v := s.View()
	assert.True(t, s.HintRevealed, "flag itself is kept")
	assert.Empty(t, v.Hint, "hint hidden once over")
	assert.True(t, v.Won)
	assert.Equal(t, MessageWon, v.Message)
}
