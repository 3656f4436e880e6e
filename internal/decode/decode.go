// Package decode turns raw image bytes into canonical RGBA pixel buffers.
//
// JPEG data goes through jpegn with EXIF auto-rotation so orientation is
// already applied when a buffer leaves this package; no downstream
// component needs to special-case it. Everything else is handled by the
// decoders registered with image.Decode (PNG, GIF, WebP, BMP, TIFF).
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/gen2brain/jpegn"

	_ "image/gif" // GIF decoder
	_ "image/png" // PNG decoder

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// Kind classifies a decode failure.
type Kind int

const (
	// UnsupportedFormat means the bytes are not a recognized image format.
	UnsupportedFormat Kind = iota
	// Truncated means the data ends before the image is complete.
	Truncated
	// Corrupt means the data is recognized but structurally invalid.
	Corrupt
	// TooLarge means the decoded dimensions exceed the pixel ceiling.
	TooLarge
)

func (k Kind) String() string {
	switch k {
	case UnsupportedFormat:
		return "unsupported format"
	case Truncated:
		return "truncated"
	case Corrupt:
		return "corrupt"
	case TooLarge:
		return "too large"
	default:
		return "unknown"
	}
}

// Error is a decode failure tagged with its path and classification.
type Error struct {
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Path, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Image is a decoded image in canonical form: an RGBA buffer with any
// embedded orientation already applied.
type Image struct {
	Pixels *image.RGBA
	Width  int
	Height int
	Format string // "jpeg", "png", ...
}

// Decoder decodes image bytes with a configurable pixel ceiling.
// It is stateless apart from configuration and safe for concurrent use.
type Decoder struct {
	maxPixels int
}

// New creates a Decoder. maxPixels bounds width*height of accepted
// images; values <= 0 disable the ceiling.
func New(maxPixels int) *Decoder {
	return &Decoder{maxPixels: maxPixels}
}

// Decode converts raw bytes into an Image or returns an *Error.
// It is pure: identical bytes always produce identical results.
func (d *Decoder) Decode(data []byte, path string) (*Image, error) {
	if len(data) == 0 {
		return nil, &Error{Path: path, Kind: Truncated, Err: io.ErrUnexpectedEOF}
	}

	// Header-only pass first: dimension check before committing to a
	// full decode protects against decompression-bomb inputs.
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Path: path, Kind: classify(err), Err: err}
	}

	if d.maxPixels > 0 && cfg.Width > 0 && cfg.Height > 0 {
		if cfg.Width > d.maxPixels/cfg.Height {
			return nil, &Error{
				Path: path,
				Kind: TooLarge,
				Err:  fmt.Errorf("%dx%d exceeds %d pixel ceiling", cfg.Width, cfg.Height, d.maxPixels),
			}
		}
	}

	var img image.Image
	if format == "jpeg" {
		img, err = jpegn.Decode(bytes.NewReader(data), &jpegn.Options{
			ToRGBA:         true,
			AutoRotate:     true,
			UpsampleMethod: jpegn.CatmullRom,
		})
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, &Error{Path: path, Kind: classify(err), Err: err}
	}

	rgba := toRGBA(img)
	bounds := rgba.Bounds()

	return &Image{
		Pixels: rgba,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}, nil
}

// classify maps a decoder error onto the failure taxonomy.
func classify(err error) Kind {
	switch {
	case errors.Is(err, image.ErrFormat), errors.Is(err, jpegn.ErrNoJPEG):
		return UnsupportedFormat
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return Truncated
	default:
		return Corrupt
	}
}

// toRGBA returns img as *image.RGBA, converting only when necessary.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
