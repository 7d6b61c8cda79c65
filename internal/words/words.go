// internal/words/words.go
//
// Word catalog for the daily puzzle.
//
// Responsibilities:
//   - Load the {word, hint} catalog from a JSON file or the embedded default.
//   - Normalise entries (lowercase, trimmed, exactly WordLength letters a–z).
//   - Provide index lookup for the daily selector and hint lookup by word.
//
// Catalog file format (same shape as the embedded assets/wordles.json):
//
//	{"wordles": [{"wordle": "crane", "hint": "A tall bird"}, ...]}
//
// Environment variables:
//   WORDS_FILE=/path/to/wordles.json   (optional, overrides the embedded list)
//
// The catalog is read-only once built.

package words

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/go-daily/assets"
)

// WordLength is the fixed length of every catalog word.
const WordLength = 5

// ErrEmptyCatalog is returned when no valid entries survive normalisation.
var ErrEmptyCatalog = errors.New("words: catalog is empty")

// WordEntry is a single catalog item.
type WordEntry struct {
	Word string `json:"wordle"`
	Hint string `json:"hint"`
}

// catalogFile mirrors the on-disk JSON document.
type catalogFile struct {
	Wordles []WordEntry `json:"wordles"`
}

// Catalog is an immutable, non-empty list of entries.
type Catalog struct {
	entries []WordEntry
	hints   map[string]string
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		raw, err := assets.Catalog()
		if err != nil {
			defaultErr = fmt.Errorf("read embedded catalog: %w", err)
			return
		}
		defaultCat, defaultErr = Parse(raw)
	})
	return defaultCat, defaultErr
}

// Load reads a catalog from path, or falls back to Default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a catalog document and normalises its entries.
func Parse(raw []byte) (*Catalog, error) {
	var doc catalogFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Wordles)
}

// New builds a catalog from entries. Invalid words are skipped and
// duplicates collapse onto their first occurrence.
func New(entries []WordEntry) (*Catalog, error) {
	normalised := lo.FilterMap(entries, func(e WordEntry, _ int) (WordEntry, bool) {
		w := strings.ToLower(strings.TrimSpace(e.Word))
		if len(w) != WordLength || !IsAlpha(w) {
			return WordEntry{}, false
		}
		return WordEntry{Word: w, Hint: strings.TrimSpace(e.Hint)}, true
	})
	normalised = lo.UniqBy(normalised, func(e WordEntry) string { return e.Word })
	if len(normalised) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &Catalog{
		entries: normalised,
		hints: lo.Associate(normalised, func(e WordEntry) (string, string) {
			return e.Word, e.Hint
		}),
	}, nil
}

// Len reports the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Lookup returns the entry at index, reduced modulo Len.
func (c *Catalog) Lookup(index int) WordEntry {
	n := len(c.entries)
	i := index % n
	if i < 0 {
		i += n
	}
	return c.entries[i]
}

// Entries returns a copy of the catalog entries.
func (c *Catalog) Entries() []WordEntry {
	return append([]WordEntry(nil), c.entries...)
}

// Contains reports whether w is a catalog word.
func (c *Catalog) Contains(w string) bool {
	_, ok := c.hints[strings.ToLower(w)]
	return ok
}

// Hint returns the hint for w, or "" if w is not in the catalog.
func (c *Catalog) Hint(w string) string {
	return c.hints[strings.ToLower(w)]
}

// IsAlpha reports whether s is all lowercase ASCII letters.
func IsAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
