// Package config resolves runtime settings: built-in defaults, then
// environment variables (a .env file is loaded first when present), then
// command-line flags. Later sources win.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/robalobadob/wordle/apps/go-daily/internal/obfuscate"
	"github.com/robalobadob/wordle/apps/go-daily/internal/persist"
)

// Modes.
const (
	ModePlay  = "play"
	ModeServe = "serve"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds runtime settings.
type Config struct {
	Mode       string // play | serve
	DBPath     string // SQLite file for the saved game and history
	Storage    string // sqlite | memory
	StorageKey string // key of the saved game
	Secret     string // obfuscation secret for the stored word
	WordsFile  string // optional catalog override
	Port       string
	Origin     string // CORS origin in serve mode
	RateRPS    int
	RateBurst  int
	LogLevel   string
	LogFile    string // play mode log destination
	Reset      bool   // discard today's saved game on start
	Stats      bool   // print statistics and exit
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Mode:       ModePlay,
		DBPath:     "./data/wordle.db",
		Storage:    StorageSQLite,
		StorageKey: persist.DefaultKey,
		Secret:     obfuscate.DefaultSecret,
		Port:       "5175",
		Origin:     "http://localhost:5173",
		RateRPS:    10,
		RateBurst:  20,
		LogLevel:   "info",
		LogFile:    "./data/wordle.log",
	}
}

// Load reads .env (if any), the environment, then args (without the
// program name).
func Load(args []string) (Config, error) {
	_ = godotenv.Load()
	cfg := Defaults()
	cfg.applyEnv(os.Getenv)
	if err := cfg.parseFlags(args, os.Stderr); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) {
	str := func(k string, dst *string) {
		if v := getenv(k); v != "" {
			*dst = v
		}
	}
	num := func(k string, dst *int) {
		if v := getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	str("WORDLE_MODE", &c.Mode)
	str("WORDLE_DB", &c.DBPath)
	str("WORDLE_STORAGE", &c.Storage)
	str("WORDLE_KEY", &c.StorageKey)
	str("WORDLE_SECRET", &c.Secret)
	str("WORDS_FILE", &c.WordsFile)
	str("PORT", &c.Port)
	str("CLIENT_ORIGIN", &c.Origin)
	num("RATE_LIMIT_RPS", &c.RateRPS)
	num("RATE_LIMIT_BURST", &c.RateBurst)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)
}

func (c *Config) parseFlags(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("wordle", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&c.Mode, "mode", c.Mode, "play (terminal) or serve (HTTP)")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite database file")
	fs.StringVar(&c.Storage, "storage", c.Storage, "saved game backend: sqlite or memory")
	fs.StringVar(&c.StorageKey, "key", c.StorageKey, "storage key of the saved game")
	fs.StringVar(&c.WordsFile, "words", c.WordsFile, "word catalog JSON (default: embedded)")
	fs.StringVar(&c.Port, "port", c.Port, "HTTP port in serve mode")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "zerolog level")
	fs.BoolVar(&c.Reset, "reset", c.Reset, "discard today's saved game")
	fs.BoolVar(&c.Stats, "stats", c.Stats, "print statistics and exit")
	return fs.Parse(args)
}

// Validate rejects settings the program cannot run with.
func (c Config) Validate() error {
	switch c.Mode {
	case ModePlay, ModeServe:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	switch c.Storage {
	case StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("config: empty storage key")
	}
	if c.RateRPS <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("config: rate limit must be positive")
	}
	return nil
}
