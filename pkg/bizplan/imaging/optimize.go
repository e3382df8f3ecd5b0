package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Document defaults: fit inside 800×600, JPEG quality 85, at most 2 MB.
const (
	DefaultMaxWidth  = 800
	DefaultMaxHeight = 600
	DefaultQuality   = 85
	DefaultMaxBytes  = 2 << 20

	minQuality  = 20
	qualityStep = 10
)

// Options controls Optimize.
type Options struct {
	// MaxWidth and MaxHeight bound the output; images are never enlarged.
	MaxWidth  int
	MaxHeight int
	// Quality is the JPEG quality, 1-100.
	Quality int
	// Format is the output format. Only JPEG and PNG are produced; empty
	// keeps PNG sources as PNG and re-encodes everything else as JPEG.
	Format Format
	// MaxBytes triggers the JPEG quality step-down when exceeded. Zero
	// disables the check.
	MaxBytes int64
}

// DocumentOptions returns the settings used for pictures placed in documents.
func DocumentOptions() Options {
	return Options{
		MaxWidth:  DefaultMaxWidth,
		MaxHeight: DefaultMaxHeight,
		Quality:   DefaultQuality,
		MaxBytes:  DefaultMaxBytes,
	}
}

// Result is the outcome of optimizing one image.
type Result struct {
	Path       string   `json:"path,omitempty"`
	Data       []byte   `json:"-"`
	Metadata   Metadata `json:"metadata"`
	SizeBefore int64    `json:"size_before"`
	SizeAfter  int64    `json:"size_after"`
	// Quality is the JPEG quality finally used; zero for PNG output.
	Quality  int      `json:"quality,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// CompressionRatio is the percentage saved relative to the source size.
func (r *Result) CompressionRatio() int {
	if r.SizeBefore == 0 {
		return 0
	}
	return int(float64(r.SizeBefore-r.SizeAfter) / float64(r.SizeBefore) * 100)
}

// Optimize decodes data, shrinks it to fit the bounds and re-encodes it.
func Optimize(data []byte, opts Options) (*Result, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	out := opts.Format
	if out == "" {
		out = JPEG
		if Format(format) == PNG {
			out = PNG
		}
	}
	if out != JPEG && out != PNG {
		return nil, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, out)
	}

	img := resize(src, opts.MaxWidth, opts.MaxHeight)
	res := &Result{SizeBefore: int64(len(data))}

	var buf []byte
	switch out {
	case PNG:
		buf, err = encodePNG(img)
	default:
		quality := opts.Quality
		if quality <= 0 || quality > 100 {
			quality = DefaultQuality
		}
		flat := flatten(img)
		buf, err = encodeJPEG(flat, quality)
		for err == nil && opts.MaxBytes > 0 && int64(len(buf)) > opts.MaxBytes && quality > minQuality {
			quality -= qualityStep
			buf, err = encodeJPEG(flat, quality)
		}
		res.Quality = quality
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", out, err)
	}

	if opts.MaxBytes > 0 && int64(len(buf)) > opts.MaxBytes {
		res.Warnings = append(res.Warnings, fmt.Sprintf("optimized image exceeds %s", FormatFileSize(opts.MaxBytes)))
	}

	b := img.Bounds()
	res.Data = buf
	res.SizeAfter = int64(len(buf))
	res.Metadata = Metadata{
		Format:   out,
		Width:    b.Dx(),
		Height:   b.Dy(),
		HasAlpha: out == PNG && !opaque(img),
		Size:     int64(len(buf)),
	}
	return res, nil
}

// OptimizeFile is Optimize over the contents of path.
func OptimizeFile(path string, opts Options) (*Result, error) {
	data, err := readImage(path)
	if err != nil {
		return nil, err
	}
	res, err := Optimize(data, opts)
	if err != nil {
		return nil, err
	}
	res.Path = path
	return res, nil
}

func resize(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	if w == b.Dx() && h == b.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// flatten composites transparent pixels over white so JPEG output does not
// turn them black.
func flatten(src image.Image) image.Image {
	if opaque(src) {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
