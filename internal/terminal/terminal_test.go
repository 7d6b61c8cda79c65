package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/robalobadob/wordle/apps/go-daily/internal/daily"
	"github.com/robalobadob/wordle/apps/go-daily/internal/game"
	"github.com/robalobadob/wordle/apps/go-daily/internal/persist"
	"github.com/robalobadob/wordle/apps/go-daily/internal/play"
	"github.com/robalobadob/wordle/apps/go-daily/internal/store"
	"github.com/robalobadob/wordle/apps/go-daily/internal/words"
)

func decodeAll(in string) []Action {
	var d decoder
	var out []Action
	for i := 0; i < len(in); i++ {
		if a, ok := d.feed(in[i]); ok {
			out = append(out, a)
		}
	}
	return out
}

func TestDecoder(t *testing.T) {
	got := decodeAll("aB\r\x7f\x08?1 \n")
	assert.Equal(t, []Action{
		keyAction(game.Character('a')),
		keyAction(game.Character('b')),
		keyAction(game.SubmitKey),
		keyAction(game.DeleteKey),
		keyAction(game.DeleteKey),
		{Kind: ActHint},
		keyAction(game.SubmitKey),
	}, got)
}

func TestDecoderSwallowsEscapeSequences(t *testing.T) {
	// arrow up, F1 (SS3), Alt+x, then a plain letter
	got := decodeAll("\x1b[A\x1bOP\x1bxq")
	assert.Equal(t, []Action{keyAction(game.Character('q'))}, got)

	got = decodeAll("\x1b[1;5C" + "z")
	assert.Equal(t, []Action{keyAction(game.Character('z'))}, got)
}

func TestDecoderQuit(t *testing.T) {
	for _, in := range []string{"\x03", "\x04", "\x1b\x1b"} {
		assert.Equal(t, []Action{{Kind: ActQuit}}, decodeAll(in), "%q", in)
	}
}

func TestParseLine(t *testing.T) {
	assert.Equal(t, []Action{{Kind: ActHint}}, parseLine(" :hint "))
	assert.Equal(t, []Action{{Kind: ActStats}}, parseLine(":STATS"))
	assert.Equal(t, []Action{{Kind: ActQuit}}, parseLine(":q"))
	assert.Nil(t, parseLine("   "))

	wipe := make([]Action, 0, game.WordLength)
	for i := 0; i < game.WordLength; i++ {
		wipe = append(wipe, keyAction(game.DeleteKey))
	}
	assert.Equal(t, append(wipe,
		keyAction(game.Character('c')),
		keyAction(game.Character('r')),
		keyAction(game.Character('a')),
		keyAction(game.SubmitKey),
	), parseLine("C r4a"))
}

func sampleView() game.View {
	s := game.NewSession(words.WordEntry{Word: "crane", Hint: "a bird"}, "2025-01-15")
	for _, c := range "react" {
		s.AppendChar(c)
	}
	s.Submit()
	s.AppendChar('p')
	s.RevealHint()
	return s.View()
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleView(), nil, Plain))
	out := buf.String()

	assert.NotContains(t, out, "\x1b[", "no ANSI codes when plain")
	assert.Contains(t, out, "WORDLE  2025-01-15")
	// r,e,a,c misplaced/correct mix for "react" vs "crane"
	assert.Contains(t, out, "(R) (E) [A] (C)  T ")
	assert.Contains(t, out, " p ")
	assert.Contains(t, out, "Hint: a bird")
	assert.Contains(t, out, "Tries left: 5")
	assert.Contains(t, out, "How to play")
	assert.Contains(t, out, ":hint")
}

func TestRenderColorUsesRawNewlines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleView(), nil, Raw))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, ansiClear))
	assert.Contains(t, out, ansiGreen+" A "+ansiReset)
	assert.Contains(t, out, ansiYellow+" R "+ansiReset)
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n")
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderStats(&buf, daily.Stats{
		GamesPlayed: 2, Wins: 1, CurrentStreak: 1, MaxStreak: 1, Distribution: map[int]int{3: 1},
	}, Plain))
	assert.Contains(t, buf.String(), "Played 2   Win %50   Streak 1   Best 1")
	assert.Contains(t, buf.String(), "3: # 1")
}

type statsStub struct{ s daily.Stats }

func (s statsStub) Stats(context.Context) (daily.Stats, error) { return s.s, nil }

func newController(t *testing.T) *play.Controller {
	t.Helper()
	cat, err := words.New([]words.WordEntry{{Word: "crane", Hint: "a bird"}})
	require.NoError(t, err)
	clock := func() time.Time { return time.Date(2025, 1, 15, 9, 0, 0, 0, time.Local) }
	ctrl := play.New(cat, persist.New(store.NewMemoryStore(), persist.WithClock(clock)), nil, clock)
	require.NoError(t, ctrl.Start(context.Background()))
	return ctrl
}

func TestRunLineMode(t *testing.T) {
	ctrl := newController(t)
	var out bytes.Buffer
	in := strings.NewReader("plant\n:hint\ncrane\n:stats\nzzzzz\n")
	ui := New(ctrl, statsStub{daily.Stats{GamesPlayed: 1, Wins: 1}}, in, &out)

	require.NoError(t, ui.Run(context.Background()))
	v := ctrl.View()
	assert.True(t, v.Won)
	assert.Len(t, ctrl.View().Rows[2].Cells[0].Letter, 0, "input after the win is ignored")
	assert.Contains(t, out.String(), "Hint: a bird")
	assert.Contains(t, out.String(), game.MessageWon)
	assert.Contains(t, out.String(), "Played 1")
}

func TestRunLineModeShortLineDoesNotLeak(t *testing.T) {
	ctrl := newController(t)
	var out bytes.Buffer
	ui := New(ctrl, nil, strings.NewReader("cra\ncrane\n"), &out)
	require.NoError(t, ui.Run(context.Background()))

	v := ctrl.View()
	assert.True(t, v.Won, "the typed answer wins")
	assert.Equal(t, game.MaxTries-1, v.TriesLeft, "the short line cost no try")
	row := v.Rows[0]
	assert.True(t, row.Submitted)
	letters := ""
	for _, c := range row.Cells {
		letters += c.Letter
	}
	assert.Equal(t, "crane", letters)
}

func TestRunLineModeQuit(t *testing.T) {
	ctrl := newController(t)
	var out bytes.Buffer
	ui := New(ctrl, nil, strings.NewReader(":quit\ncrane\n"), &out)
	require.NoError(t, ui.Run(context.Background()))
	assert.False(t, ctrl.View().Over)
}

// ttyReader pretends to be a terminal file.
type ttyReader struct{ *strings.Reader }

func (ttyReader) Fd() uintptr { return 42 }

func TestRunRawMode(t *testing.T) {
	var rawFd, restoredFd int
	isTerminal = func(int) bool { return true }
	makeRaw = func(fd int) (*term.State, error) { rawFd = fd; return &term.State{}, nil }
	restore = func(fd int, _ *term.State) error { restoredFd = fd; return nil }
	t.Cleanup(func() { isTerminal, makeRaw, restore = term.IsTerminal, term.MakeRaw, term.Restore })

	ctrl := newController(t)
	var out bytes.Buffer
	ui := New(ctrl, nil, ttyReader{strings.NewReader("cranx\x7fe\r\x03")}, &out)
	require.NoError(t, ui.Run(context.Background()))

	assert.Equal(t, 42, rawFd)
	assert.Equal(t, 42, restoredFd)
	assert.True(t, ctrl.View().Won)
	assert.Contains(t, out.String(), ansiClear)
}
