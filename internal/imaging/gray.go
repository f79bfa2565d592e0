package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// LuminanceMode selects how colour pixels collapse to one intensity.
type LuminanceMode int

const (
	// LumaMode weights R, G and B by 0.299, 0.587 and 0.114 (ITU-R BT.601),
	// the conventional "convert to L" greyscale.
	LumaMode LuminanceMode = iota

	// LightnessMode uses CIE L*, which tracks perceived brightness more
	// closely for saturated colours.
	LightnessMode
)

// GrayOptions adjusts artwork before it is sampled. The zero value converts
// with LumaMode and no adjustment.
type GrayOptions struct {
	Mode LuminanceMode

	// Gamma applies a gamma correction when not 0 or 1. Values above 1
	// brighten mid-tones.
	Gamma float64

	// Contrast in [-1, 1]; 0 leaves the image unchanged.
	Contrast float64

	// Invert swaps dark and light so light areas emboss deeply.
	Invert bool
}

// ToGray converts an image to a single-channel 8-bit raster.
//
// Adjustments are applied in colour space in the order gamma, contrast,
// invert; conversion to greyscale happens last. Alpha is ignored, matching
// the usual behaviour of dropping transparency when converting to L.
func ToGray(img image.Image, opts GrayOptions) *image.Gray {
	src := img
	if opts.Gamma != 0 && opts.Gamma != 1 {
		src = adjust.Gamma(src, opts.Gamma)
	}
	if opts.Contrast != 0 {
		src = adjust.Contrast(src, opts.Contrast)
	}
	if opts.Invert {
		src = effect.Invert(src)
	}

	if opts.Mode == LightnessMode {
		return lightness(src)
	}
	return luma(src)
}

func luma(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}

	nrgba := imaging.Grayscale(img)
	bounds := nrgba.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+bounds.Dx()*4]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+bounds.Dx()]
		for x := range row {
			row[x] = src[x*4]
		}
	}
	return dst
}

func lightness(img image.Image) *image.Gray {
	bounds := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			// Un-premultiply so transparency does not darken the result.
			if a != 0 && a != 0xffff {
				r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a
			}
			c := colorful.Color{R: float64(r) / 0xffff, G: float64(g) / 0xffff, B: float64(b) / 0xffff}
			l, _, _ := c.Lab()
			v := math.Round(math.Max(0, math.Min(1, l)) * 255)
			dst.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: uint8(v)})
		}
	}
	return dst
}
