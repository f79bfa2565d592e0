package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/emboss-gcode/internal/toolpath"
)

// ImageError reports artwork that cannot be used as an emboss source: a file
// that cannot be decoded, a raster that is too small, or a sample request
// outside the raster.
type ImageError struct {
	// Path is the source file, empty for in-memory rasters.
	Path string
	Err  error
}

func (e *ImageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("image: %v", e.Err)
	}
	return fmt.Sprintf("image %s: %v", e.Path, e.Err)
}

func (e *ImageError) Unwrap() error { return e.Err }

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// disk reads.
//
// Images are keyed by the exact path string given to Load. The MCP server
// keeps one cache for its lifetime so that repeated emboss_* calls on the same
// artwork decode it once. An entry is dropped and the file decoded again when
// its modification time or size changes, so edits to the artwork between
// calls are picked up.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

type cachedImage struct {
	img     image.Image
	modTime time.Time
	size    int64
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Raster formats (PNG, JPEG, GIF, BMP, TIFF, WebP) are decoded with EXIF
// auto-orientation so photographs come out upright. Files with an ".svg"
// extension are rasterised at their view box size on a white background.
//
// # Errors
//
// All failures are returned as *ImageError wrapping the underlying cause.
func (c *ImageCache) Load(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.Evict(path)
		return nil, &ImageError{Path: path, Err: fmt.Errorf("failed to open image: %w", err)}
	}

	c.mu.RLock()
	entry, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		if entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
			return entry.img, nil
		}
		toolpath.Logger().Debug("image changed on disk, reloading", "path", path)
		c.Evict(path)
	}

	img, err := decodeFile(path)
	if err != nil {
		return nil, &ImageError{Path: path, Err: err}
	}

	c.mu.Lock()
	c.images[path] = cachedImage{img: img, modTime: info.ModTime(), size: info.Size()}
	c.mu.Unlock()

	return img, nil
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

func decodeFile(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		return rasterizeSVG(bytes.NewReader(data))
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ImageInfo describes artwork in terms of how it will be embossed.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif", "bmp", "tiff", "webp", "svg" or
	// "unknown", detected from the file extension.
	Format string `json:"format"`

	// Segments is the number of angular segments per layer the image yields.
	Segments int `json:"segments"`

	// Usable reports whether the image is wide enough to emboss.
	Usable bool `json:"usable"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and reports its emboss
// properties.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	case ".tif", ".tiff":
		format = "tiff"
	case ".webp":
		format = "webp"
	case ".svg":
		format = "svg"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		Segments:      SegmentCount(bounds.Dx()),
		Usable:        bounds.Dx() >= MinSegments && bounds.Dy() > 0,
		FileSizeBytes: stat.Size(),
	}, nil
}
