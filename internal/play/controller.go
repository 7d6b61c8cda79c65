// Package play owns today's session. It is the only place where the
// session is mutated: it resumes or creates the round, applies input,
// rolls over at the player's midnight, persists every accepted change and
// records finished rounds.
//
// A Controller is not safe for concurrent use; adapters that serve several
// goroutines must serialise calls.
package play

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-daily/internal/daily"
	"github.com/robalobadob/wordle/apps/go-daily/internal/game"
	"github.com/robalobadob/wordle/apps/go-daily/internal/words"
)

// Persister is the load/save contract of the persistence adapter.
type Persister interface {
	Load(ctx context.Context) (*game.Session, bool)
	Save(ctx context.Context, s *game.Session) error
	Clear(ctx context.Context) error
}

// Recorder stores finished rounds. May be nil.
type Recorder interface {
	InsertResult(ctx context.Context, r daily.Result) error
}

// Controller drives the daily session.
type Controller struct {
	catalog *words.Catalog
	saved   Persister
	results Recorder
	clock   func() time.Time

	session *game.Session
}

// New wires a controller. results may be nil; clock defaults to time.Now.
func New(catalog *words.Catalog, saved Persister, results Recorder, clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}
	return &Controller{catalog: catalog, saved: saved, results: results, clock: clock}
}

// Start resumes today's saved session or begins a new one.
func (c *Controller) Start(ctx context.Context) error {
	if s, ok := c.saved.Load(ctx); ok {
		c.session = s
		log.Info().Str("date", s.Date).Int("attempt", s.Active).Str("state", string(s.State())).Msg("resumed saved game")
		return nil
	}
	return c.fresh(ctx)
}

// fresh replaces the session with today's puzzle and saves it.
func (c *Controller) fresh(ctx context.Context) error {
	date := daily.Today(c.clock)
	idx := daily.WordIndex(date, c.catalog.Len())
	c.session = game.NewSession(c.catalog.Lookup(idx), date)
	log.Info().Str("date", date).Int("index", idx).Msg("new daily game")
	return c.save(ctx)
}

// rollover starts a new session the first time the date is seen to change.
func (c *Controller) rollover(ctx context.Context) error {
	if c.session == nil {
		return c.Start(ctx)
	}
	if today := daily.Today(c.clock); today != c.session.Date {
		log.Info().Str("from", c.session.Date).Str("to", today).Msg("day rolled over")
		return c.fresh(ctx)
	}
	return nil
}

// Dispatch applies one key intent. Rejected input changes nothing and
// writes nothing.
func (c *Controller) Dispatch(ctx context.Context, in game.KeyIntent) (bool, error) {
	return c.mutate(ctx, func(s *game.Session) bool { return s.Apply(in) })
}

// RevealHint shows the hint while the round is still open.
func (c *Controller) RevealHint(ctx context.Context) (bool, error) {
	return c.mutate(ctx, (*game.Session).RevealHint)
}

func (c *Controller) mutate(ctx context.Context, op func(*game.Session) bool) (bool, error) {
	if err := c.rollover(ctx); err != nil {
		return false, err
	}
	wasOver := c.session.Over
	if !op(c.session) {
		return false, nil
	}
	err := c.save(ctx)
	// A finished round is recorded even if the save failed; the session
	// accepts no further input that could trigger it again.
	if !wasOver && c.session.Over {
		c.record(ctx)
	}
	return true, err
}

func (c *Controller) save(ctx context.Context) error {
	if err := c.saved.Save(ctx, c.session); err != nil {
		log.Error().Err(err).Str("date", c.session.Date).Msg("save game")
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// record stores the finished round; failures are logged, not returned.
func (c *Controller) record(ctx context.Context) {
	s := c.session
	log.Info().Str("date", s.Date).Str("state", string(s.State())).Int("guesses", len(s.Submitted())).Msg("round finished")
	if c.results == nil {
		return
	}
	err := c.results.InsertResult(ctx, daily.Result{
		Date:      s.Date,
		WordIndex: daily.WordIndex(s.Date, c.catalog.Len()),
		Guesses:   len(s.Submitted()),
		Won:       s.Won,
	})
	if err != nil {
		log.Warn().Err(err).Str("date", s.Date).Msg("record result")
	}
}

// Refresh checks for a date rollover without applying input.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.rollover(ctx)
}

// Reset discards the saved game and starts today's puzzle over.
func (c *Controller) Reset(ctx context.Context) error {
	if err := c.saved.Clear(ctx); err != nil {
		return err
	}
	return c.fresh(ctx)
}

// View returns the read-only projection of the current session.
func (c *Controller) View() game.View {
	if c.session == nil {
		return game.View{}
	}
	return c.session.View()
}
