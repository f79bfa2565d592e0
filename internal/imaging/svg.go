package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// rasterizeSVG renders an SVG document at its view box size onto a white
// canvas. Unfilled areas therefore emboss as white (full feed rate).
func rasterizeSVG(r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	width, height := int(w), int(h)
	if width <= 0 || height <= 0 {
		return nil, errors.New("svg has an empty view box")
	}
	icon.SetTarget(0, 0, w, h)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	icon.Draw(raster, 1.0)
	return img, nil
}
