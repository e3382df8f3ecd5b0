package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// fullWidthOffset is the distance between a full-width Latin letter or digit
// and its ASCII counterpart.
const fullWidthOffset = 0xFEE0

// Normalizer applies a CharMap to text. It holds no mutable state and may be
// shared between goroutines.
type Normalizer struct {
	chars *CharMap
}

// NewNormalizer returns a Normalizer over the built-in table overlaid with
// overlay. A nil overlay reuses the shared default table.
func NewNormalizer(overlay map[string]string) (*Normalizer, error) {
	if len(overlay) == 0 {
		return &Normalizer{chars: defaultMap}, nil
	}
	m, err := NewCharMap(baseEntries, overlay)
	if err != nil {
		return nil, err
	}
	return &Normalizer{chars: m}, nil
}

// WithCharMap returns a Normalizer over an explicitly constructed table.
func WithCharMap(m *CharMap) *Normalizer {
	return &Normalizer{chars: m}
}

// Default is the Normalizer over the built-in table.
var Default = &Normalizer{chars: defaultMap}

// CharMap returns the table the normalizer applies.
func (n *Normalizer) CharMap() *CharMap { return n.chars }

// ConvertSpecialChars replaces every occurrence of a mapped key and returns
// the new text and the number of occurrences replaced. Keys are matched
// longest first in a single left-to-right pass.
func (n *Normalizer) ConvertSpecialChars(text string) (string, int) {
	if text == "" || n.chars.Len() == 0 {
		return text, 0
	}
	var (
		b     strings.Builder
		count int
	)
	b.Grow(len(text))
	for i := 0; i < len(text); {
		key, repl, ok := n.match(text[i:])
		if ok {
			b.WriteString(repl)
			count++
			i += len(key)
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[i : i+size])
		i += size
	}
	if count == 0 {
		return text, 0
	}
	return b.String(), count
}

// match finds the longest key that prefixes s.
func (n *Normalizer) match(s string) (key, repl string, ok bool) {
	ends := make([]int, 0, n.chars.maxKeyRunes)
	for i, r := 0, 0; i < len(s) && r < n.chars.maxKeyRunes; r++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		ends = append(ends, i)
	}
	for j := len(ends) - 1; j >= 0; j-- {
		if v, found := n.chars.entries[s[:ends[j]]]; found {
			return s[:ends[j]], v, true
		}
	}
	return "", "", false
}

// ToHalfWidth converts full-width Latin letters and digits to ASCII. Other
// characters are left untouched.
func ToHalfWidth(text string) string {
	out, _, err := transform.String(halfWidth(), text)
	if err != nil {
		return text
	}
	return out
}

// StripControl removes C0 and C1 control characters.
func StripControl(text string) string {
	out, _, err := transform.String(stripControl(), text)
	if err != nil {
		return text
	}
	return out
}

// ToDOCXSafe makes text safe to embed in a generated document: special
// characters are substituted, full-width letters and digits narrowed, control
// characters removed and surrounding whitespace trimmed.
func (n *Normalizer) ToDOCXSafe(text string) string {
	converted, _ := n.ConvertSpecialChars(text)
	out, _, err := transform.String(transform.Chain(halfWidth(), stripControl()), converted)
	if err != nil {
		out = StripControl(ToHalfWidth(converted))
	}
	return strings.TrimSpace(out)
}

// ConvertSpecialChars applies the built-in table.
func ConvertSpecialChars(text string) (string, int) {
	return Default.ConvertSpecialChars(text)
}

// ToDOCXSafe applies the built-in table and the DOCX clean-up steps.
func ToDOCXSafe(text string) string {
	return Default.ToDOCXSafe(text)
}

func halfWidth() transform.Transformer {
	return runes.Map(func(r rune) rune {
		if isFullWidthAlnum(r) {
			return r - fullWidthOffset
		}
		return r
	})
}

func stripControl() transform.Transformer {
	return runes.Remove(runes.Predicate(isControl))
}

func isFullWidthAlnum(r rune) bool {
	return (r >= '０' && r <= '９') || (r >= 'Ａ' && r <= 'Ｚ') || (r >= 'ａ' && r <= 'ｚ')
}

func isControl(r rune) bool {
	return r <= 0x1F || (r >= 0x7F && r <= 0x9F)
}
