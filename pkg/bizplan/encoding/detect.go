package encoding

import (
	"sort"

	"github.com/gogs/chardet"
)

// ConfidenceThreshold is the round-trip confidence a candidate must exceed to
// be accepted.
const ConfidenceThreshold = 0.9

// DetectionResult is the outcome of encoding detection.
type DetectionResult struct {
	Encoding   Encoding `json:"encoding"`
	Confidence float64  `json:"confidence"`
	Valid      bool     `json:"valid"`
	// Guess is the statistical detector's charset name, informational only.
	Guess string `json:"guess,omitempty"`
}

// Detect picks the encoding of buf. A UTF-8 byte-order mark wins outright.
// Otherwise every supported encoding is tried in order and scored by the
// share of bytes that survive a decode/encode round trip unchanged; the first
// candidate above ConfidenceThreshold without replacement characters is
// returned. If none qualifies the best-scoring candidate is returned with
// Valid set to false.
func Detect(buf []byte) DetectionResult {
	if HasBOM(buf) {
		return DetectionResult{Encoding: UTF8, Confidence: 1, Valid: true}
	}
	if len(buf) == 0 {
		return DetectionResult{Encoding: UTF8, Confidence: 1, Valid: true}
	}

	results := make([]DetectionResult, 0, len(Supported))
	for _, e := range Supported {
		r := try(buf, e)
		if r.Valid {
			r.Guess = guess(buf)
			return r
		}
		results = append(results, r)
	}

	// stable keeps detection order on ties
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	best := results[0]
	best.Guess = guess(buf)
	return best
}

// try scores one candidate encoding.
func try(buf []byte, e Encoding) DetectionResult {
	text := Decode(buf, e)
	var matches int
	if e == EUCKR {
		matches = strictEUCKRMatches(buf, Encode(text, e))
	} else {
		matches = compare(buf, Encode(text, e))
	}
	confidence := float64(matches) / float64(len(buf))
	return DetectionResult{
		Encoding:   e,
		Confidence: confidence,
		Valid:      confidence > ConfidenceThreshold && !HasReplacement(text),
	}
}

// compare counts positions at which a and b hold the same byte.
func compare(a, b []byte) int {
	n := min(len(a), len(b))
	matches := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	return matches
}

// strictEUCKRMatches is compare restricted to the KS X 1001 code space:
// double-byte sequences from the CP949 extension (lead or trail byte below
// 0xA1) do not count as matches.
func strictEUCKRMatches(orig, reencoded []byte) int {
	n := min(len(orig), len(reencoded))
	matches := 0
	for i := 0; i < n; i++ {
		b := orig[i]
		if b < 0x80 {
			if b == reencoded[i] {
				matches++
			}
			continue
		}
		if i+1 >= n {
			break
		}
		lead, trail := b, orig[i+1]
		ok := lead >= 0xA1 && lead <= 0xFE && trail >= 0xA1 && trail <= 0xFE
		if ok && lead == reencoded[i] && trail == reencoded[i+1] {
			matches += 2
		}
		i++
	}
	return matches
}

// guess asks the statistical detector for a charset name.
func guess(buf []byte) string {
	r, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil || r == nil {
		return ""
	}
	return r.Charset
}
