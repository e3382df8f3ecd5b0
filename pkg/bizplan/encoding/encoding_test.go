package encoding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/normalize"
)

func eucKR(t *testing.T, s string) []byte {
	t.Helper()
	b, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestLookup(t *testing.T) {
	tests := []struct {
		label string
		want  Encoding
	}{
		{"utf8", UTF8},
		{"UTF-8", UTF8},
		{"euc-kr", EUCKR},
		{"cp949", CP949},
		{"ks_c_5601-1987", CP949},
		{"windows-949", CP949},
	}
	for _, tt := range tests {
		got, err := Lookup(tt.label)
		require.NoError(t, err, tt.label)
		assert.Equal(t, tt.want, got, tt.label)
	}

	_, err := Lookup("shift_jis")
	assert.True(t, errors.Is(err, ErrUnsupportedEncoding))
}

func TestDetect(t *testing.T) {
	t.Run("bom", func(t *testing.T) {
		r := Detect(append([]byte{0xEF, 0xBB, 0xBF}, []byte("사업계획서")...))
		assert.Equal(t, UTF8, r.Encoding)
		assert.Equal(t, 1.0, r.Confidence)
		assert.True(t, r.Valid)
	})

	t.Run("utf8", func(t *testing.T) {
		r := Detect([]byte("주식회사 테크스타트 사업계획서"))
		assert.Equal(t, UTF8, r.Encoding)
		assert.True(t, r.Valid)
		assert.Equal(t, 1.0, r.Confidence)
	})

	t.Run("euc-kr", func(t *testing.T) {
		r := Detect(eucKR(t, "주식회사 테크스타트 사업계획서"))
		assert.Equal(t, EUCKR, r.Encoding)
		assert.True(t, r.Valid)
		assert.Greater(t, r.Confidence, ConfidenceThreshold)
	})

	t.Run("garbage is reported invalid", func(t *testing.T) {
		r := Detect([]byte{0xFF, 0xFE, 0x80, 0x81, 0xFF, 0x80})
		assert.False(t, r.Valid)
	})

	t.Run("empty", func(t *testing.T) {
		r := Detect(nil)
		assert.Equal(t, UTF8, r.Encoding)
		assert.True(t, r.Valid)
	})
}

func TestConvert(t *testing.T) {
	c := NewConverter(normalize.Default)

	t.Run("utf8 to euc-kr", func(t *testing.T) {
		res := c.Convert([]byte("㈜테크스타트"), UTF8, EUCKR)
		assert.True(t, res.Success)
		assert.Equal(t, "(주)테크스타트", res.Text)
		assert.Equal(t, eucKR(t, "(주)테크스타트"), res.Bytes)
		assert.Equal(t, 1, res.SpecialCharsConverted)
		assert.Empty(t, res.Errors)
	})

	t.Run("euc-kr to utf8", func(t *testing.T) {
		res := c.Convert(eucKR(t, "김철수"), EUCKR, UTF8)
		assert.True(t, res.Success)
		assert.Equal(t, "김철수", res.Text)
		assert.Equal(t, []byte("김철수"), res.Bytes)
	})

	t.Run("unrepresentable characters degrade without failing", func(t *testing.T) {
		res := c.Convert([]byte("emoji 😀 한글"), UTF8, EUCKR)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Errors)
		assert.Contains(t, res.Text, "한글")
	})

	t.Run("invalid source bytes degrade", func(t *testing.T) {
		res := c.Convert([]byte{0xFF, 'a'}, UTF8, UTF8)
		assert.False(t, res.Success)
		assert.Equal(t, "�a", res.Text)
	})

	t.Run("auto", func(t *testing.T) {
		res := c.AutoConvert(eucKR(t, "대표자"), UTF8)
		assert.True(t, res.Success)
		assert.Equal(t, "대표자", res.Text)
		assert.Equal(t, EUCKR, res.OriginalEncoding)
	})
}

func TestRepairBrokenChars(t *testing.T) {
	assert.Equal(t, "□테크", RepairBrokenChars("??테크", ""))
	assert.Equal(t, "(주)테크", RepairBrokenChars("�테크", "회사명"))
	assert.Equal(t, "항목 (1)", RepairBrokenChars("항목 ???", "숫자 목록"))
	assert.Equal(t, "a?b", RepairBrokenChars("a?b", ""))
}

func TestToSafeASCII(t *testing.T) {
	assert.Equal(t, "CEO [?] Kim", ToSafeASCII("CEO 김철수 Kim"))
	assert.Equal(t, "plain", ToSafeASCII("plain"))
}
