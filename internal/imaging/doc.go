// Package imaging turns artwork into the luminance field that modulates an
// embossed toolpath.
//
// The package decodes images (raster formats and SVG), frames them by named
// region, pixel crop and resampled width, converts them to an
// 8-bit greyscale raster with optional gamma, contrast and inversion
// adjustments, and samples that raster per (layer, segment) through
// RasterSampler.
//
// # Coordinate System
//
// Raster coordinates are 0-based with (0,0) at the top-left corner. The
// sampler maps:
//   - segment i to pixel column i (no horizontal resampling)
//   - layer 0 to the bottom row, higher layers to rows further up
//
// # Luminance Scale
//
// Samples are pixel/256, so black is 0.0 and white is 255/256. Darker pixels
// later slow the feed rate and emboss more deeply.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. RasterSampler and the rasters it
// wraps are read-only after construction.
//
// # Error Handling
//
// Decoding failures, undersized rasters and out-of-range sample requests are
// all reported as *ImageError. Framing errors are plain errors; callers that
// know the source path wrap them.
package imaging
