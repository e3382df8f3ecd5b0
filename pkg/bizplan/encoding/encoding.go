// Package encoding converts text between UTF-8 and the legacy Korean
// encodings (EUC-KR, CP949) and detects the encoding of raw bytes.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
)

// Encoding identifies a supported text encoding.
type Encoding string

const (
	UTF8  Encoding = "utf8"
	EUCKR Encoding = "euc-kr"
	CP949 Encoding = "cp949"
)

// Supported lists the encodings in detection order.
var Supported = []Encoding{UTF8, EUCKR, CP949}

// ErrUnsupportedEncoding is returned for labels that do not resolve to a
// supported encoding.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// UTF8BOM is the UTF-8 byte-order mark.
var UTF8BOM = []byte{0xEF, 0xBB, 0xBF}

// substitute is written by the encoder for characters the target cannot
// represent.
const substitute = '\x1a'

// Lookup resolves an encoding label. Besides the canonical identifiers it
// accepts the WHATWG aliases, so "ks_c_5601-1987" or "windows-949" resolve to
// the Korean codec.
func Lookup(label string) (Encoding, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	switch l {
	case "utf8", "utf-8", "":
		return UTF8, nil
	case "euc-kr", "euckr":
		return EUCKR, nil
	case "cp949", "cp-949", "uhc":
		return CP949, nil
	}
	enc, name := charset.Lookup(l)
	if enc == nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedEncoding, label)
	}
	switch name {
	case "utf-8":
		return UTF8, nil
	case "euc-kr":
		return CP949, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedEncoding, label)
}

func codec(e Encoding) xenc.Encoding {
	switch e {
	case EUCKR, CP949:
		// x/text implements the Unified Hangul Code superset for both.
		return korean.EUCKR
	default:
		return nil
	}
}

// Decode converts bytes in e to a string. Undecodable input becomes U+FFFD.
func Decode(b []byte, e Encoding) string {
	c := codec(e)
	if c == nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	out, err := c.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(out), string(utf8.RuneError))
	}
	return string(out)
}

// Encode converts s to bytes in e. Characters e cannot represent are written
// as the ASCII substitute character.
func Encode(s string, e Encoding) []byte {
	c := codec(e)
	if c == nil {
		return []byte(s)
	}
	out, err := xenc.ReplaceUnsupported(c.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// HasReplacement reports whether s contains decoding or encoding artifacts.
func HasReplacement(s string) bool {
	return strings.ContainsRune(s, utf8.RuneError) || strings.ContainsRune(s, substitute)
}

// HasBOM reports whether b starts with a UTF-8 byte-order mark.
func HasBOM(b []byte) bool {
	return bytes.HasPrefix(b, UTF8BOM)
}

// TrimBOM removes a leading UTF-8 byte-order mark.
func TrimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, UTF8BOM)
}
