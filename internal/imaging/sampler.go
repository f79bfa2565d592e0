package imaging

import (
	"errors"
	"fmt"
	"image"
)

// MinSegments is the fewest angular segments a layer is divided into. Images
// narrower than this cannot be embossed because each segment reads exactly
// one pixel column.
const MinSegments = 20

// SegmentCount returns the number of angular segments per layer for an
// image of the given width.
func SegmentCount(width int) int {
	return max(MinSegments, width)
}

// RasterSampler maps (layer, segment) pairs onto pixels of a greyscale
// raster and reports their luminance.
//
// Segment i reads pixel column i; there is no horizontal resampling. Layers
// read rows bottom-up so that layer 0 reads the bottom row of the image and
// the final layer reads near the top. When the image has fewer rows than
// there are layers, rows repeat.
//
// A RasterSampler is read-only after construction and safe for concurrent
// use.
type RasterSampler struct {
	gray     *image.Gray
	layers   int
	segments int
}

// NewRasterSampler wraps gray for a run of layerCount layers.
//
// # Errors
//
// Returns *ImageError when the raster is empty, narrower than MinSegments
// pixels, or layerCount is not positive.
func NewRasterSampler(gray *image.Gray, layerCount int) (*RasterSampler, error) {
	if gray == nil || gray.Bounds().Empty() {
		return nil, &ImageError{Err: errors.New("empty raster")}
	}
	b := gray.Bounds()
	if b.Dx() < MinSegments {
		return nil, &ImageError{Err: fmt.Errorf("image is %d pixels wide, need at least %d", b.Dx(), MinSegments)}
	}
	if layerCount < 1 {
		return nil, &ImageError{Err: fmt.Errorf("layer count %d must be positive", layerCount)}
	}
	return &RasterSampler{
		gray:     gray,
		layers:   layerCount,
		segments: SegmentCount(b.Dx()),
	}, nil
}

// Segments is the number of angular segments per layer.
func (s *RasterSampler) Segments() int { return s.segments }

// Layers is the layer count the sampler was built for.
func (s *RasterSampler) Layers() int { return s.layers }

// Bounds returns the bounds of the underlying raster.
func (s *RasterSampler) Bounds() image.Rectangle { return s.gray.Bounds() }

// Luminance returns the intensity at (layer, segment) in [0, 1).
//
// The 8-bit pixel value is divided by 256, so white reads as 255/256 rather
// than 1. Requests outside [0, Layers()) x [0, Segments()) fail with
// *ImageError; they are never clamped.
func (s *RasterSampler) Luminance(layer, segment int) (float64, error) {
	if segment < 0 || segment >= s.segments {
		return 0, &ImageError{Err: fmt.Errorf("segment %d outside [0, %d)", segment, s.segments)}
	}
	if layer < 0 || layer >= s.layers {
		return 0, &ImageError{Err: fmt.Errorf("layer %d outside [0, %d)", layer, s.layers)}
	}

	b := s.gray.Bounds()
	h := b.Dy()
	y := h - h*layer/s.layers - 1
	return float64(s.gray.GrayAt(b.Min.X+segment, b.Min.Y+y).Y) / 256.0, nil
}
