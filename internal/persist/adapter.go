// Package persist saves and restores the daily session through a
// key-value store. The target word is obfuscated before every write and
// decoded after every read; the plaintext never reaches storage.
//
// A record that is missing, unparseable, inconsistent or from another day
// is treated as absent, and the caller starts a fresh session.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-daily/internal/daily"
	"github.com/robalobadob/wordle/apps/go-daily/internal/game"
	"github.com/robalobadob/wordle/apps/go-daily/internal/obfuscate"
	"github.com/robalobadob/wordle/apps/go-daily/internal/store"
)

// DefaultKey is the storage key of the saved game.
const DefaultKey = "wordle_game_state"

// Adapter loads and saves one session under a fixed key.
type Adapter struct {
	store store.Store
	key   string
	codec obfuscate.Codec
	clock func() time.Time
}

// Option customises an Adapter.
type Option func(*Adapter)

// WithKey overrides DefaultKey.
func WithKey(key string) Option { return func(a *Adapter) { a.key = key } }

// WithCodec overrides obfuscate.Default.
func WithCodec(c obfuscate.Codec) Option { return func(a *Adapter) { a.codec = c } }

// WithClock overrides time.Now for the date check.
func WithClock(clock func() time.Time) Option { return func(a *Adapter) { a.clock = clock } }

// New builds an Adapter over st.
func New(st store.Store, opts ...Option) *Adapter {
	a := &Adapter{store: st, key: DefaultKey, codec: obfuscate.Default, clock: time.Now}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Load returns today's saved session, or false when there is none to
// resume. Stale and malformed records are removed on the way.
func (a *Adapter) Load(ctx context.Context) (*game.Session, bool) {
	raw, err := a.store.Get(ctx, a.key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", a.key).Msg("read saved game")
		return nil, false
	}

	today := daily.Today(a.clock)
	s, err := a.decode(raw, today)
	if err != nil {
		log.Info().Err(err).Str("key", a.key).Str("today", today).Msg("discarding saved game")
		if derr := a.store.Delete(ctx, a.key); derr != nil {
			log.Warn().Err(derr).Str("key", a.key).Msg("delete saved game")
		}
		return nil, false
	}
	return s, true
}

// errStale marks a record saved on another day.
var errStale = errors.New("saved game is from another day")

func (a *Adapter) decode(raw []byte, today string) (*game.Session, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec.LastPlayedDate != today {
		return nil, fmt.Errorf("%w: %q", errStale, rec.LastPlayedDate)
	}
	return game.Restore(rec.session(a.codec.Decode(rec.WordleData.Wordle)))
}

// Save writes s with its target obfuscated.
func (a *Adapter) Save(ctx context.Context, s *game.Session) error {
	raw, err := json.Marshal(toRecord(s, a.codec.Encode(s.Target)))
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := a.store.Set(ctx, a.key, raw); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// Clear removes the saved session.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.store.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("clear saved game: %w", err)
	}
	return nil
}
