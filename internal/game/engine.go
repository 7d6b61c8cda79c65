// internal/game/engine.go
//
// State machine for a single daily session.
// Responsibilities:
//   - Create a session for a catalog entry and date.
//   - Edit the active attempt (append/remove letters) and submit it.
//   - Track transitions: playing → won/lost. Nothing leaves won/lost.
//   - Rebuild a session from saved fields, rejecting anything that breaks
//     the Session invariants.
//
// Every operation returns whether it changed the session, so the owner can
// persist only accepted input.

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/go-daily/internal/words"
)

// ErrInvalidSession is returned by Restore for inconsistent saved state.
var ErrInvalidSession = errors.New("invalid session")

// NewSession starts a fresh round for entry on date.
func NewSession(entry words.WordEntry, date string) *Session {
	return &Session{
		Target:   strings.ToLower(entry.Word),
		Hint:     entry.Hint,
		Attempts: lo.Times(MaxTries, func(_ int) Attempt { return Attempt{} }),
		Date:     date,
	}
}

// State reports the coarse lifecycle state.
func (s *Session) State() State {
	if s.Over {
		if s.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// active returns the attempt being edited, or nil once the board is full
// or the round is over.
func (s *Session) active() *Attempt {
	if s.Over || s.Active < 0 || s.Active >= len(s.Attempts) {
		return nil
	}
	return &s.Attempts[s.Active]
}

// AppendChar adds c to the active attempt. Only a–z is accepted and only
// while the attempt is shorter than WordLength.
func (s *Session) AppendChar(c rune) bool {
	a := s.active()
	if a == nil || c < 'a' || c > 'z' || len(a.Value) >= WordLength {
		return false
	}
	a.Value += string(c)
	return true
}

// RemoveChar drops the last letter of the active attempt.
func (s *Session) RemoveChar() bool {
	a := s.active()
	if a == nil || a.Value == "" {
		return false
	}
	a.Value = a.Value[:len(a.Value)-1]
	return true
}

// Submit validates the active attempt once it holds WordLength letters.
//
//   - Match: the round is won; Active keeps pointing at the winning row.
//   - Miss:  Active advances; reaching MaxTries loses the round and reveals
//     the target in Message.
func (s *Session) Submit() bool {
	a := s.active()
	if a == nil || len(a.Value) != WordLength {
		return false
	}
	a.Submitted = true

	if strings.EqualFold(a.Value, s.Target) {
		s.Over, s.Won = true, true
		s.Message = MessageWon
		return true
	}

	s.Active++
	if s.Active >= MaxTries {
		s.Over = true
		s.Message = fmt.Sprintf(MessageLostFmt, s.Target)
		return true
	}
	s.Message = ""
	return true
}

// RevealHint marks the hint as requested. No effect once over or already shown.
func (s *Session) RevealHint() bool {
	if s.Over || s.HintRevealed {
		return false
	}
	s.HintRevealed = true
	return true
}

// Apply dispatches a normalised key intent.
func (s *Session) Apply(in KeyIntent) bool {
	switch in.Kind {
	case IntentCharacter:
		return s.AppendChar(in.Char)
	case IntentDelete:
		return s.RemoveChar()
	case IntentSubmit:
		return s.Submit()
	default:
		return false
	}
}

// Submitted returns the attempts validated so far, in order.
func (s *Session) Submitted() []Attempt {
	return lo.Filter(s.Attempts, func(a Attempt, _ int) bool { return a.Submitted })
}

// Restore checks saved session fields against the Session invariants and
// derives Won. The target must already be decoded to plaintext.
func Restore(s Session) (*Session, error) {
	s.Target = strings.ToLower(s.Target)
	if len(s.Target) != WordLength || !words.IsAlpha(s.Target) {
		return nil, fmt.Errorf("%w: target length or alphabet", ErrInvalidSession)
	}
	if len(s.Attempts) != MaxTries {
		return nil, fmt.Errorf("%w: %d attempts", ErrInvalidSession, len(s.Attempts))
	}
	if s.Active < 0 || s.Active > MaxTries {
		return nil, fmt.Errorf("%w: active index %d", ErrInvalidSession, s.Active)
	}

	s.Attempts = append([]Attempt(nil), s.Attempts...)
	s.Won = false
	for i, a := range s.Attempts {
		if len(a.Value) > WordLength || !words.IsAlpha(a.Value) {
			return nil, fmt.Errorf("%w: attempt %d value", ErrInvalidSession, i)
		}
		switch {
		case i < s.Active:
			if !a.Submitted || len(a.Value) != WordLength || a.Value == s.Target {
				return nil, fmt.Errorf("%w: attempt %d should be a submitted miss", ErrInvalidSession, i)
			}
		case i == s.Active && a.Submitted:
			if a.Value != s.Target {
				return nil, fmt.Errorf("%w: attempt %d submitted at active index", ErrInvalidSession, i)
			}
			s.Won = true
		case a.Submitted:
			return nil, fmt.Errorf("%w: attempt %d submitted ahead of active index", ErrInvalidSession, i)
		}
	}

	if s.Over != (s.Won || s.Active == MaxTries) {
		return nil, fmt.Errorf("%w: over flag inconsistent", ErrInvalidSession)
	}
	return &s, nil
}
