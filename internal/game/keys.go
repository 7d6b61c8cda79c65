package game

import "unicode/utf8"

// Key names shared by presentation adapters.
const (
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
)

// Character builds a letter intent.
func Character(c rune) KeyIntent { return KeyIntent{Kind: IntentCharacter, Char: c} }

var (
	SubmitKey = KeyIntent{Kind: IntentSubmit}
	DeleteKey = KeyIntent{Kind: IntentDelete}
)

// ParseKey normalises a key name from any input source. Chorded keys are
// dropped entirely; A–Z folds to lowercase; Enter and Backspace map to
// submit and delete. Everything else is rejected.
func ParseKey(key string, mods Modifiers) (KeyIntent, bool) {
	if mods.Ctrl || mods.Meta || mods.Alt {
		return KeyIntent{}, false
	}
	switch key {
	case KeyEnter:
		return SubmitKey, true
	case KeyBackspace:
		return DeleteKey, true
	}
	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || size != len(key) {
		return KeyIntent{}, false
	}
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 'a' || r > 'z' {
		return KeyIntent{}, false
	}
	return Character(r), true
}
