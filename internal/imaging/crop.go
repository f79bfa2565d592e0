package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Framing selects and sizes the part of the artwork that is embossed. The
// zero value uses the whole image at its own size.
type Framing struct {
	// Region is a named part of the image: top-left, top-right,
	// bottom-left, bottom-right, top-half, bottom-half, left-half,
	// right-half or center. Empty means the whole image.
	Region string

	// Rect crops to explicit pixel coordinates, relative to the top-left
	// corner of the image. It is applied after Region when both are set.
	Rect image.Rectangle

	// Width resamples the result to this many pixels wide, keeping the
	// aspect ratio. Since each pixel column is one angular segment, this
	// sets the segment count. Zero keeps the width.
	Width int
}

// Apply returns the framed artwork.
func (f Framing) Apply(img image.Image) (image.Image, error) {
	if f.Region != "" {
		r, err := NamedRegion(img.Bounds(), f.Region)
		if err != nil {
			return nil, err
		}
		img = imaging.Crop(img, r)
	}

	if !f.Rect.Empty() {
		bounds := img.Bounds()
		r := f.Rect.Add(bounds.Min)
		if !r.In(bounds) {
			return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds %dx%d",
				f.Rect.Min.X, f.Rect.Min.Y, f.Rect.Max.X, f.Rect.Max.Y, bounds.Dx(), bounds.Dy())
		}
		img = imaging.Crop(img, r)
	}

	if f.Width < 0 {
		return nil, fmt.Errorf("invalid width %d", f.Width)
	}
	if f.Width > 0 && f.Width != img.Bounds().Dx() {
		img = imaging.Resize(img, f.Width, 0, imaging.Lanczos)
	}
	return img, nil
}

// NamedRegion returns the rectangle of a named region of bounds.
func NamedRegion(bounds image.Rectangle, region string) (image.Rectangle, error) {
	w := bounds.Dx()
	h := bounds.Dy()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch region {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		// Center 50% of the image
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return image.Rectangle{}, fmt.Errorf("unknown region: %s", region)
	}

	return image.Rect(x1, y1, x2, y2).Add(bounds.Min), nil
}

// Regions lists the names accepted by NamedRegion.
var Regions = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}
