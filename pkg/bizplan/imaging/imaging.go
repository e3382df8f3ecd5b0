// Package imaging prepares pictures for embedding in generated documents:
// format sniffing, fit-inside resizing and size-bounded re-encoding.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is an image container format as reported by the decoders.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WEBP Format = "webp"
)

var (
	// ErrUnsupportedFormat is returned for data no registered decoder accepts.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrImageNotFound is returned when an image path does not exist.
	ErrImageNotFound = errors.New("image not found")
)

var extensions = map[string]Format{
	".jpg":  JPEG,
	".jpeg": JPEG,
	".png":  PNG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".webp": WEBP,
}

// IsSupported reports whether the file extension names a readable format.
func IsSupported(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Metadata describes an encoded image.
type Metadata struct {
	Format   Format `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	HasAlpha bool   `json:"has_alpha"`
	Size     int64  `json:"size"`
}

// Analyze decodes data and reports its format, dimensions and transparency.
func Analyze(data []byte) (Metadata, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	b := img.Bounds()
	return Metadata{
		Format:   Format(format),
		Width:    b.Dx(),
		Height:   b.Dy(),
		HasAlpha: !opaque(img),
		Size:     int64(len(data)),
	}, nil
}

// AnalyzeFile is Analyze over the contents of path.
func AnalyzeFile(path string) (Metadata, error) {
	data, err := readImage(path)
	if err != nil {
		return Metadata{}, err
	}
	return Analyze(data)
}

func readImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, path)
	}
	return data, err
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}

// FitSize scales w×h to fit inside maxW×maxH keeping the aspect ratio.
// Images already inside the box are returned unchanged. A non-positive
// bound leaves that dimension unconstrained.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && float64(h)*scale > float64(maxH) {
		scale = float64(maxH) / float64(h)
	}
	if scale >= 1 {
		return w, h
	}
	fw := int(math.Round(float64(w) * scale))
	fh := int(math.Round(float64(h) * scale))
	return max(fw, 1), max(fh, 1)
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with a binary unit and at most two
// decimals, e.g. "1.5 KB".
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	i = min(i, len(sizeUnits)-1)
	v := float64(n) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
