// Package normalize converts Korean typographic symbols and full-width forms
// into text that is safe to embed in generated documents.
package normalize

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// ErrUnstableMapping is returned when a replacement, alone or next to other
// text, can spell a mapped key, so a second pass would change the text again.
var ErrUnstableMapping = errors.New("replacement can form a mapped key")

// baseEntries is the built-in substitution table.
var baseEntries = map[string]string{
	// company forms
	"㈜": "(주)",
	"㈏": "(가)",
	"㈐": "(나)",
	"㈑": "(다)",
	"㈒": "(라)",

	// circled numbers
	"①": "(1)", "②": "(2)", "③": "(3)", "④": "(4)", "⑤": "(5)",
	"⑥": "(6)", "⑦": "(7)", "⑧": "(8)", "⑨": "(9)", "⑩": "(10)",
	"⑪": "(11)", "⑫": "(12)", "⑬": "(13)", "⑭": "(14)", "⑮": "(15)",

	// trademark glyphs
	"™": "TM",
	"®": "(R)",
	"©": "(C)",

	// currency
	"₩": "원",
	"¥": "엔",
	"€": "유로",
	"£": "파운드",

	// full-width and typographic punctuation
	"：": ":",
	"；": ";",
	"！": "!",
	"？": "?",
	"～": "~",
	"－": "-",
	"․": "·",
	"‥": "..",
	"…": "...",
	"″": "\"",
	"′": "'",
	"※": "*",
	"○": "O",
}

// CharMap is an immutable substitution table. The zero value is empty.
type CharMap struct {
	entries map[string]string
	// maxKeyRunes is the rune length of the longest key.
	maxKeyRunes int
}

// NewCharMap builds a CharMap from base entries overlaid with overlay.
// Overlay entries replace base entries with the same key. Identity entries
// are dropped since they never change the text.
func NewCharMap(base, overlay map[string]string) (*CharMap, error) {
	m := &CharMap{entries: make(map[string]string, len(base)+len(overlay))}
	for _, src := range []map[string]string{base, overlay} {
		for k, v := range src {
			if k == "" {
				return nil, fmt.Errorf("empty key in character map")
			}
			if k == v {
				delete(m.entries, k)
				continue
			}
			m.entries[k] = v
		}
	}
	for k := range m.entries {
		if n := utf8.RuneCountInString(k); n > m.maxKeyRunes {
			m.maxKeyRunes = n
		}
	}
	if err := m.check(); err != nil {
		return nil, err
	}
	return m, nil
}

// check rejects every entry whose replacement could produce a key in the
// converted text: by containing it, by being part of it, by sharing a prefix
// or suffix with it, or by deleting text between the halves of a longer key.
func (m *CharMap) check() error {
	for _, k := range m.Keys() {
		for _, v := range m.entries {
			if overlaps(k, v) || (v == "" && utf8.RuneCountInString(k) > 1) {
				return fmt.Errorf("%w: %q and %q", ErrUnstableMapping, k, v)
			}
		}
	}
	return nil
}

// overlaps reports whether v and k agree on a non-empty run at some
// alignment that reaches an edge of each.
func overlaps(k, v string) bool {
	kr, vr := []rune(k), []rune(v)
	for d := 1 - len(vr); d < len(kr); d++ {
		lo, hi := max(0, -d), min(len(vr), len(kr)-d)
		if lo >= hi {
			continue
		}
		match := true
		for i := lo; i < hi; i++ {
			if vr[i] != kr[i+d] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Lookup returns the replacement for key.
func (m *CharMap) Lookup(key string) (string, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (m *CharMap) Len() int { return len(m.entries) }

// Keys returns the keys in sorted order.
func (m *CharMap) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns a copy of the table.
func (m *CharMap) Entries() map[string]string {
	out := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

var defaultMap = mustCharMap(baseEntries, nil)

func mustCharMap(base, overlay map[string]string) *CharMap {
	m, err := NewCharMap(base, overlay)
	if err != nil {
		panic(err)
	}
	return m
}

// DefaultCharMap returns the built-in table. It is shared and read-only.
func DefaultCharMap() *CharMap { return defaultMap }
