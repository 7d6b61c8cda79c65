package terminal

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/robalobadob/wordle/apps/go-daily/internal/daily"
	"github.com/robalobadob/wordle/apps/go-daily/internal/game"
)

// HowToPlay is shown under the board.
const HowToPlay = `How to play: guess the word in 6 tries.
Each guess must be 5 letters. After each guess the tiles show how close you were:
  green / [A]   the letter is in the word and in the right spot
  yellow / (A)  the letter is in the word but in the wrong spot
  grey / A      the letter is not in the word`

var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

const (
	ansiReset  = "\x1b[0m"
	ansiClear  = "\x1b[H\x1b[2J"
	ansiGreen  = "\x1b[1;30;42m"
	ansiYellow = "\x1b[1;30;43m"
	ansiGrey   = "\x1b[1;37;100m"
	ansiBlank  = "\x1b[1;37;40m"
)

// Style controls output for a TTY (colour, raw-mode newlines) or a pipe.
type Style struct {
	Color bool
	NL    string
}

// Plain is the style for non-interactive output.
var Plain = Style{NL: "\n"}

// Raw is the style for a terminal in raw mode.
var Raw = Style{Color: true, NL: "\r\n"}

func (st Style) tile(letter string, status game.LetterStatus, submitted bool) string {
	if st.Color {
		code := ansiBlank
		switch status {
		case game.StatusCorrect:
			code = ansiGreen
		case game.StatusMisplaced:
			code = ansiYellow
		case game.StatusIncorrect:
			code = ansiGrey
		}
		if letter == "" {
			letter = " "
		}
		return code + " " + strings.ToUpper(letter) + " " + ansiReset
	}
	if letter == "" {
		return " _ "
	}
	if !submitted {
		return " " + letter + " "
	}
	up := strings.ToUpper(letter)
	switch status {
	case game.StatusCorrect:
		return "[" + up + "]"
	case game.StatusMisplaced:
		return "(" + up + ")"
	default:
		return " " + up + " "
	}
}

// Render writes the board, keyboard, hint, message and optional stats.
func Render(w io.Writer, v game.View, stats *daily.Stats, st Style) error {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString(st.NL)
	}
	if st.Color {
		b.WriteString(ansiClear)
	}

	line("  WORDLE  %s", v.Date)
	line("")
	for _, row := range v.Rows {
		b.WriteString("  ")
		for _, c := range row.Cells {
			b.WriteString(st.tile(c.Letter, c.Status, row.Submitted))
			b.WriteByte(' ')
		}
		b.WriteString(st.NL)
	}
	line("")

	for i, keys := range keyboardRows {
		b.WriteString(strings.Repeat(" ", 2+i*2))
		for _, k := range keys {
			status, seen := v.Keyboard.Status(k)
			if !seen {
				status = ""
			}
			b.WriteString(st.tile(string(k), status, seen))
		}
		b.WriteString(st.NL)
	}
	line("")

	if v.Hint != "" {
		line("  Hint: %s", v.Hint)
	}
	if v.Message != "" {
		line("  %s", v.Message)
	}
	if !v.Over {
		line("  Tries left: %d", v.TriesLeft)
	}
	if stats != nil {
		writeStats(&b, *stats, st)
	}
	line("")
	for _, l := range strings.Split(HowToPlay, "\n") {
		line("%s", l)
	}
	if st.Color {
		line("  ? hint   Enter submit   Backspace delete   Ctrl-C quit")
	} else {
		line("  type a word and press Enter   :hint   :stats   :quit")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeStats(b *strings.Builder, s daily.Stats, st Style) {
	fmt.Fprintf(b, "  Played %d   Win %%%d   Streak %d   Best %d%s",
		s.GamesPlayed, s.WinRate(), s.CurrentStreak, s.MaxStreak, st.NL)
	guesses := make([]int, 0, len(s.Distribution))
	for g := range s.Distribution {
		guesses = append(guesses, g)
	}
	slices.Sort(guesses)
	for _, g := range guesses {
		fmt.Fprintf(b, "    %d: %s %d%s", g, strings.Repeat("#", s.Distribution[g]), s.Distribution[g], st.NL)
	}
}

// RenderStats writes the statistics block alone.
func RenderStats(w io.Writer, s daily.Stats, st Style) error {
	var b strings.Builder
	writeStats(&b, s, st)
	_, err := io.WriteString(w, b.String())
	return err
}
