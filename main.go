package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-daily/internal/config"
	"github.com/robalobadob/wordle/apps/go-daily/internal/daily"
	"github.com/robalobadob/wordle/apps/go-daily/internal/db"
	"github.com/robalobadob/wordle/apps/go-daily/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-daily/internal/obfuscate"
	"github.com/robalobadob/wordle/apps/go-daily/internal/persist"
	"github.com/robalobadob/wordle/apps/go-daily/internal/play"
	"github.com/robalobadob/wordle/apps/go-daily/internal/store"
	"github.com/robalobadob/wordle/apps/go-daily/internal/terminal"
	"github.com/robalobadob/wordle/apps/go-daily/internal/words"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	closeLog := setupLogging(cfg)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = run(ctx, cfg)
	stop()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, "wordle:", err)
		os.Exit(1)
	}
}

// setupLogging routes zerolog. The terminal owns stdout in play mode, so
// logs go to a file there.
func setupLogging(cfg config.Config) (closeFn func()) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Mode == config.ModeServe {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err == nil {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			log.Logger = zerolog.New(f).With().Timestamp().Logger()
			return func() { _ = f.Close() }
		}
	}
	log.Logger = zerolog.Nop()
	return func() {}
}

func run(ctx context.Context, cfg config.Config) error {
	catalog, err := words.Load(cfg.WordsFile)
	if err != nil {
		return fmt.Errorf("load word catalog: %w", err)
	}

	var (
		kv      store.Store
		results *daily.Store
	)
	switch cfg.Storage {
	case config.StorageMemory:
		kv = store.NewMemoryStore()
	default:
		sqlDB, err := db.OpenMigrated(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer sqlDB.Close()
		kv = store.NewSQLiteStore(sqlDB)
		results = daily.NewStore(sqlDB)
	}

	// Keep nil interfaces nil when history is unavailable.
	var (
		rec   play.Recorder
		stats terminal.StatsSource
		hist  httpserver.Results
	)
	if results != nil {
		rec, stats, hist = results, results, results
	}

	if cfg.Stats {
		if results == nil {
			return errors.New("statistics need sqlite storage")
		}
		s, err := results.Stats(ctx)
		if err != nil {
			return err
		}
		return terminal.RenderStats(os.Stdout, s, terminal.Plain)
	}

	saved := persist.New(kv,
		persist.WithKey(cfg.StorageKey),
		persist.WithCodec(obfuscate.New(cfg.Secret)),
	)
	ctrl := play.New(catalog, saved, rec, nil)

	if cfg.Reset {
		err = ctrl.Reset(ctx)
	} else {
		err = ctrl.Start(ctx)
	}
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	if results != nil {
		played, err := results.AlreadyPlayed(ctx, ctrl.View().Date)
		if err == nil && played && !ctrl.View().Over {
			log.Warn().Str("date", ctrl.View().Date).Msg("result already recorded for today; a replay will not be counted")
		}
	}

	log.Info().Str("mode", cfg.Mode).Str("storage", cfg.Storage).Int("words", catalog.Len()).Msg("starting wordle")
	switch cfg.Mode {
	case config.ModeServe:
		srv := httpserver.New(ctrl, hist, httpserver.Options{
			Origin:    cfg.Origin,
			RateRPS:   cfg.RateRPS,
			RateBurst: cfg.RateBurst,
		})
		log.Info().Str("port", cfg.Port).Msg("listening")
		return srv.Start(ctx, ":"+cfg.Port)
	default:
		return terminal.New(ctrl, stats, os.Stdin, os.Stdout).Run(ctx)
	}
}
