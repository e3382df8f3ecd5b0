package encoding

import (
	"regexp"
	"strings"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/normalize"
)

// ConversionResult is the outcome of a conversion. A degraded conversion is
// reported through Success and Errors; Text always holds the best effort.
type ConversionResult struct {
	Success               bool     `json:"success"`
	Text                  string   `json:"text"`
	Bytes                 []byte   `json:"-"`
	OriginalEncoding      Encoding `json:"original_encoding"`
	TargetEncoding        Encoding `json:"target_encoding"`
	SpecialCharsConverted int      `json:"special_chars_converted"`
	Errors                []string `json:"errors,omitempty"`
}

// Converter converts text between encodings, substituting special characters
// on the way.
type Converter struct {
	normalizer *normalize.Normalizer
}

// NewConverter returns a Converter. A nil normalizer disables special
// character substitution.
func NewConverter(n *normalize.Normalizer) *Converter {
	return &Converter{normalizer: n}
}

// Convert decodes input as from, substitutes special characters, encodes the
// text as to and decodes it again. If the round trip produced replacement or
// substitute characters the result is marked unsuccessful.
func (c *Converter) Convert(input []byte, from, to Encoding) ConversionResult {
	res := ConversionResult{OriginalEncoding: from, TargetEncoding: to}

	text := Decode(input, from)
	if from == UTF8 {
		text = strings.TrimPrefix(text, "\uFEFF")
	}
	if c.normalizer != nil {
		text, res.SpecialCharsConverted = c.normalizer.ConvertSpecialChars(text)
	}

	res.Bytes = Encode(text, to)
	res.Text = Decode(res.Bytes, to)
	res.Success = !HasReplacement(res.Text)
	if !res.Success {
		res.Errors = []string{"some characters could not be represented in " + string(to)}
	}
	return res
}

// ConvertString converts Unicode text into to.
func (c *Converter) ConvertString(text string, to Encoding) ConversionResult {
	return c.Convert([]byte(text), UTF8, to)
}

// AutoConvert detects the encoding of input and converts it to to. When
// detection is not confident it falls back to UTF-8.
func (c *Converter) AutoConvert(input []byte, to Encoding) ConversionResult {
	d := Detect(input)
	from := d.Encoding
	if !d.Valid {
		from = UTF8
	}
	return c.Convert(input, from, to)
}

var (
	questionRunRe = regexp.MustCompile(`\?{2,}`)
	nonASCIIRe    = regexp.MustCompile(`[^\x00-\x7F]`)
	questionsRe   = regexp.MustCompile(`\?+`)
)

// RepairBrokenChars marks unrecoverable characters with "□". A context hint
// mentioning a company ("회사") or a number ("숫자") replaces the marks with
// the most likely original.
func RepairBrokenChars(text, context string) string {
	repaired := questionRunRe.ReplaceAllString(text, "□")
	repaired = strings.ReplaceAll(repaired, "�", "□")

	switch {
	case strings.Contains(context, "회사"):
		repaired = strings.ReplaceAll(repaired, "□", "(주)")
	case strings.Contains(context, "숫자"):
		repaired = strings.ReplaceAll(repaired, "□", "(1)")
	}
	return repaired
}

// ToSafeASCII replaces every non-ASCII run with "[?]".
func ToSafeASCII(text string) string {
	return questionsRe.ReplaceAllString(nonASCIIRe.ReplaceAllString(text, "?"), "[?]")
}
