package graphics

import (
	"image"

	"github.com/GreyStinger/riv/internal/fit"
)

// Rotate returns a copy of src rotated clockwise by the given quarter
// turns. Rotate0 returns src unchanged.
func Rotate(src *image.RGBA, rot fit.Rotation) *image.RGBA {
	if rot == fit.Rotate0 {
		return src
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.RGBA
	if rot == fit.Rotate180 {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	}

	for y := range h {
		for x := range w {
			c := src.RGBAAt(b.Min.X+x, b.Min.Y+y)
			switch rot {
			case fit.Rotate90:
				dst.SetRGBA(h-1-y, x, c)
			case fit.Rotate180:
				dst.SetRGBA(w-1-x, h-1-y, c)
			case fit.Rotate270:
				dst.SetRGBA(y, w-1-x, c)
			}
		}
	}

	return dst
}
