// Package terminal is the interactive front end. On a TTY it switches to
// raw mode and reacts to single key presses; otherwise it reads whole lines,
// which keeps it scriptable.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/robalobadob/wordle/apps/go-daily/internal/daily"
	"github.com/robalobadob/wordle/apps/go-daily/internal/game"
)

// Test seams for the terminal calls.
var (
	isTerminal = term.IsTerminal
	makeRaw    = term.MakeRaw
	restore    = term.Restore
)

// Game is the part of the play controller the UI drives.
type Game interface {
	Dispatch(ctx context.Context, in game.KeyIntent) (bool, error)
	RevealHint(ctx context.Context) (bool, error)
	Refresh(ctx context.Context) error
	View() game.View
}

// StatsSource supplies statistics. Optional.
type StatsSource interface {
	Stats(ctx context.Context) (daily.Stats, error)
}

type fder interface{ Fd() uintptr }

// UI runs the read-dispatch-render loop.
type UI struct {
	game  Game
	stats StatsSource
	in    io.Reader
	out   io.Writer
	fd    int
	raw   bool
	style Style
	tick  time.Duration
}

// New builds a UI over in/out. Raw mode is used when in is a terminal.
func New(g Game, stats StatsSource, in io.Reader, out io.Writer) *UI {
	u := &UI{game: g, stats: stats, in: in, out: out, fd: -1, style: Plain, tick: time.Minute}
	if f, ok := in.(fder); ok && isTerminal(int(f.Fd())) {
		u.fd, u.raw, u.style = int(f.Fd()), true, Raw
	}
	return u
}

type batch struct {
	actions []Action
	err     error
}

// Run blocks until the player quits, input ends or ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	if u.raw {
		old, err := makeRaw(u.fd)
		if err != nil {
			return fmt.Errorf("enter raw mode: %w", err)
		}
		defer func() { _ = restore(u.fd, old) }()
	}

	done := make(chan struct{})
	defer close(done)
	events := make(chan batch)
	go u.read(events, done)

	if err := u.redraw(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(u.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			before := u.game.View().Date
			if err := u.game.Refresh(ctx); err != nil {
				return err
			}
			if u.game.View().Date != before {
				if err := u.redraw(ctx); err != nil {
					return err
				}
			}
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.err != nil {
				return fmt.Errorf("read input: %w", ev.err)
			}
			quit, err := u.handle(ctx, ev.actions)
			if err != nil || quit {
				return err
			}
		}
	}
}

// read feeds decoded input to events until EOF or done.
func (u *UI) read(events chan<- batch, done <-chan struct{}) {
	defer close(events)
	send := func(b batch) bool {
		select {
		case events <- b:
			return true
		case <-done:
			return false
		}
	}

	if !u.raw {
		sc := bufio.NewScanner(u.in)
		for sc.Scan() {
			if acts := parseLine(sc.Text()); len(acts) > 0 && !send(batch{actions: acts}) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			send(batch{err: err})
		}
		return
	}

	var d decoder
	r := bufio.NewReader(u.in)
	for {
		b, err := r.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				send(batch{err: err})
			}
			return
		}
		if act, ok := d.feed(b); ok && !send(batch{actions: []Action{act}}) {
			return
		}
	}
}

// handle applies a batch and redraws once if anything happened.
func (u *UI) handle(ctx context.Context, actions []Action) (quit bool, err error) {
	dirty := false
	for _, a := range actions {
		switch a.Kind {
		case ActQuit:
			return true, nil
		case ActKey:
			changed, err := u.game.Dispatch(ctx, a.Key)
			if err != nil {
				return false, err
			}
			dirty = dirty || changed
		case ActHint:
			changed, err := u.game.RevealHint(ctx)
			if err != nil {
				return false, err
			}
			dirty = dirty || changed
		case ActStats:
			if err := u.printStats(ctx); err != nil {
				return false, err
			}
		}
	}
	// Line mode always answers a line so the player sees the outcome.
	if dirty || !u.raw {
		return false, u.redraw(ctx)
	}
	return false, nil
}

func (u *UI) redraw(ctx context.Context) error {
	v := u.game.View()
	var stats *daily.Stats
	if v.Over && u.stats != nil {
		if s, err := u.stats.Stats(ctx); err != nil {
			log.Warn().Err(err).Msg("load stats")
		} else {
			stats = &s
		}
	}
	return Render(u.out, v, stats, u.style)
}

func (u *UI) printStats(ctx context.Context) error {
	if u.stats == nil {
		_, err := io.WriteString(u.out, "  statistics unavailable"+u.style.NL)
		return err
	}
	s, err := u.stats.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	return RenderStats(u.out, s, u.style)
}
