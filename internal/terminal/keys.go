package terminal

import (
	"strings"
	"unicode"

	"github.com/robalobadob/wordle/apps/go-daily/internal/game"
)

// ActionKind classifies terminal input.
type ActionKind int

const (
	ActKey   ActionKind = iota + 1 // a game key intent
	ActHint                        // reveal the hint
	ActStats                       // print statistics
	ActQuit                        // leave the program
)

// Action is one decoded user action.
type Action struct {
	Kind ActionKind
	Key  game.KeyIntent
}

func keyAction(in game.KeyIntent) Action { return Action{Kind: ActKey, Key: in} }

const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	backspace = 0x08
	esc       = 0x1b
	del       = 0x7f
)

// decoder turns raw-mode bytes into actions. Escape sequences (arrows,
// function keys) and Alt chords are swallowed; Esc pressed twice quits.
type decoder struct {
	state int // 0 ground, 1 after Esc, 2 inside CSI/SS3
}

const (
	stGround = iota
	stEsc
	stSeq
)

// feed consumes one byte. ok is false when the byte produced no action.
func (d *decoder) feed(b byte) (Action, bool) {
	switch d.state {
	case stEsc:
		switch b {
		case esc:
			d.state = stGround
			return Action{Kind: ActQuit}, true
		case '[', 'O':
			d.state = stSeq
		default:
			d.state = stGround // Alt+key
		}
		return Action{}, false
	case stSeq:
		if b >= 0x40 && b <= 0x7e {
			d.state = stGround
		}
		return Action{}, false
	}

	switch b {
	case esc:
		d.state = stEsc
		return Action{}, false
	case ctrlC, ctrlD:
		return Action{Kind: ActQuit}, true
	case '\r', '\n':
		return keyAction(game.SubmitKey), true
	case del, backspace:
		return keyAction(game.DeleteKey), true
	case '?':
		return Action{Kind: ActHint}, true
	}
	if in, ok := game.ParseKey(string(rune(b)), game.Modifiers{}); ok {
		return keyAction(in), true
	}
	return Action{}, false
}

// parseLine maps one line of line-mode input to actions. A line is either a
// ":" command or a whole guess: the active attempt is cleared first, then
// the letters are typed and Enter is pressed. A short line therefore never
// leaks letters into the next one.
func parseLine(line string) []Action {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case ":hint", ":h", "?":
		return []Action{{Kind: ActHint}}
	case ":stats", ":s":
		return []Action{{Kind: ActStats}}
	case ":quit", ":q", ":exit":
		return []Action{{Kind: ActQuit}}
	case "":
		return nil
	}

	out := make([]Action, 0, 2*game.WordLength+1)
	for i := 0; i < game.WordLength; i++ {
		out = append(out, keyAction(game.DeleteKey))
	}
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		if in, ok := game.ParseKey(string(r), game.Modifiers{}); ok {
			out = append(out, keyAction(in))
		}
	}
	return append(out, keyAction(game.SubmitKey))
}
