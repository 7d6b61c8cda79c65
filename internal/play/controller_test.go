package play

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-daily/internal/daily"
	"github.com/robalobadob/wordle/apps/go-daily/internal/game"
	"github.com/robalobadob/wordle/apps/go-daily/internal/persist"
	"github.com/robalobadob/wordle/apps/go-daily/internal/store"
	"github.com/robalobadob/wordle/apps/go-daily/internal/words"
)

// countingStore counts writes to the wrapped store.
type countingStore struct {
	store.Store
	sets    int
	failSet error
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.sets++
	if c.failSet != nil {
		return c.failSet
	}
	return c.Store.Set(ctx, key, value)
}

type recorder struct{ results []daily.Result }

func (r *recorder) InsertResult(_ context.Context, res daily.Result) error {
	r.results = append(r.results, res)
	return nil
}

type harness struct {
	ctrl    *Controller
	kv      *countingStore
	rec     *recorder
	now     time.Time
	catalog *words.Catalog
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cat, err := words.New([]words.WordEntry{
		{Word: "crane", Hint: "a bird"},
		{Word: "plant", Hint: "green"},
		{Word: "ocean", Hint: "wet"},
	})
	require.NoError(t, err)

	h := &harness{
		kv:      &countingStore{Store: store.NewMemoryStore()},
		rec:     &recorder{},
		now:     time.Date(2025, 1, 15, 9, 0, 0, 0, time.Local),
		catalog: cat,
	}
	clock := func() time.Time { return h.now }
	h.ctrl = New(cat, persist.New(h.kv, persist.WithClock(clock)), h.rec, clock)
	require.NoError(t, h.ctrl.Start(context.Background()))
	return h
}

func (h *harness) target() string {
	date := daily.DateKey(h.now)
	return h.catalog.Lookup(daily.WordIndex(date, h.catalog.Len())).Word
}

func (h *harness) typeAndSubmit(t *testing.T, w string) {
	t.Helper()
	ctx := context.Background()
	for _, c := range w {
		changed, err := h.ctrl.Dispatch(ctx, game.Character(c))
		require.NoError(t, err)
		require.True(t, changed)
	}
	changed, err := h.ctrl.Dispatch(ctx, game.SubmitKey)
	require.NoError(t, err)
	require.True(t, changed)
}

// wrongWord returns a catalog word that is not today's target.
func (h *harness) wrongWord() string {
	for _, e := range h.catalog.Entries() {
		if e.Word != h.target() {
			return e.Word
		}
	}
	return ""
}

func TestStartCreatesAndSavesTodaysGame(t *testing.T) {
	h := newHarness(t)
	v := h.ctrl.View()
	assert.Equal(t, "2025-01-15", v.Date)
	assert.Equal(t, game.StatePlaying, v.State)
	assert.Equal(t, 1, h.kv.sets)
}

func TestStartResumesSavedGame(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	_, err := h.ctrl.Dispatch(ctx, game.Character('q'))
	require.NoError(t, err)

	clock := func() time.Time { return h.now }
	again := New(h.catalog, persist.New(h.kv, persist.WithClock(clock)), nil, clock)
	require.NoError(t, again.Start(ctx))
	assert.Equal(t, "q", again.View().Rows[0].Cells[0].Letter)
}

func TestRejectedInputWritesNothing(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	before := h.kv.sets

	changed, err := h.ctrl.Dispatch(ctx, game.SubmitKey) // empty attempt
	require.NoError(t, err)
	assert.False(t, changed)
	changed, err = h.ctrl.Dispatch(ctx, game.DeleteKey)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, h.kv.sets)

	changed, err = h.ctrl.Dispatch(ctx, game.Character('a'))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, before+1, h.kv.sets, "one write per accepted input")
}

func TestWinRecordsResultOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.typeAndSubmit(t, h.wrongWord())
	h.typeAndSubmit(t, h.target())

	v := h.ctrl.View()
	assert.True(t, v.Won)
	require.Len(t, h.rec.results, 1)
	assert.Equal(t, daily.Result{
		Date:      "2025-01-15",
		WordIndex: daily.WordIndex("2025-01-15", h.catalog.Len()),
		Guesses:   2,
		Won:       true,
	}, h.rec.results[0])

	changed, err := h.ctrl.Dispatch(ctx, game.Character('a'))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, h.rec.results, 1)
}

func TestResultRecordedWhenFinalSaveFails(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	for _, c := range h.target() {
		_, err := h.ctrl.Dispatch(ctx, game.Character(c))
		require.NoError(t, err)
	}

	h.kv.failSet = errors.New("disk full")
	changed, err := h.ctrl.Dispatch(ctx, game.SubmitKey)
	assert.True(t, changed)
	assert.ErrorContains(t, err, "disk full")

	assert.True(t, h.ctrl.View().Won)
	require.Len(t, h.rec.results, 1)
	assert.True(t, h.rec.results[0].Won)
	assert.Equal(t, 1, h.rec.results[0].Guesses)
}

func TestLossRevealsTarget(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < game.MaxTries; i++ {
		h.typeAndSubmit(t, h.wrongWord())
	}
	v := h.ctrl.View()
	assert.Equal(t, game.StateLost, v.State)
	assert.Contains(t, v.Message, h.target())
	require.Len(t, h.rec.results, 1)
	assert.False(t, h.rec.results[0].Won)
	assert.Equal(t, game.MaxTries, h.rec.results[0].Guesses)
}

func TestRolloverReplacesSession(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	_, err := h.ctrl.Dispatch(ctx, game.Character('z'))
	require.NoError(t, err)

	h.now = h.now.AddDate(0, 0, 1)
	changed, err := h.ctrl.Dispatch(ctx, game.Character('a'))
	require.NoError(t, err)
	assert.True(t, changed)

	v := h.ctrl.View()
	assert.Equal(t, "2025-01-16", v.Date)
	assert.Equal(t, "a", v.Rows[0].Cells[0].Letter, "old letters dropped with the old session")
}

func TestRefreshRollsOverWithoutInput(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.now = h.now.AddDate(0, 0, 2)
	require.NoError(t, h.ctrl.Refresh(ctx))
	assert.Equal(t, "2025-01-17", h.ctrl.View().Date)
}

func TestRevealHint(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	changed, err := h.ctrl.RevealHint(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotEmpty(t, h.ctrl.View().Hint)

	sets := h.kv.sets
	changed, err = h.ctrl.RevealHint(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, sets, h.kv.sets)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.typeAndSubmit(t, h.target())
	require.True(t, h.ctrl.View().Over)

	require.NoError(t, h.ctrl.Reset(ctx))
	v := h.ctrl.View()
	assert.False(t, v.Over)
	assert.Equal(t, game.MaxTries, v.TriesLeft)
}

func TestViewBeforeStart(t *testing.T) {
	c := New(nil, nil, nil, nil)
	assert.Equal(t, game.View{}, c.View())
}
