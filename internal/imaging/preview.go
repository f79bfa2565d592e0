package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/emboss-gcode/internal/toolpath"
)

// PreviewResult is the luminance field as the printer will see it, one pixel
// per (segment, layer), top row = top layer.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Layers      int    `json:"layers"`
	Segments    int    `json:"segments"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview samples every (layer, segment) pair and renders the field as a PNG.
// Each pixel shows the feed-rate ratio after embossFactor is applied, so the
// contrast in the preview matches the relief depth on the print.
//
// When maxWidth is positive and narrower than the segment count, the preview
// is scaled down to that width keeping its aspect ratio.
func Preview(s *RasterSampler, embossFactor float64, maxWidth int) (*PreviewResult, error) {
	field := image.NewGray(image.Rect(0, 0, s.segments, s.layers))
	for layer := 0; layer < s.layers; layer++ {
		for seg := 0; seg < s.segments; seg++ {
			v, err := s.Luminance(layer, seg)
			if err != nil {
				return nil, err
			}
			ratio := toolpath.FeedRate(1, v, embossFactor)
			field.SetGray(seg, s.layers-1-layer, color.Gray{Y: uint8(ratio * 255)})
		}
	}

	var out image.Image = field
	if maxWidth > 0 && maxWidth < s.segments {
		out = imaging.Resize(field, maxWidth, 0, imaging.Box)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		Layers:      s.layers,
		Segments:    s.segments,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
