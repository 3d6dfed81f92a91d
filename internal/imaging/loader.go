package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// DefaultCacheFrames is the number of decoded frames an ImageCache keeps when
// no capacity is given.
const DefaultCacheFrames = 16

// ImageCache keeps decoded frames keyed by path so that checking boxes and
// cropping detections from the same frame decode it only once.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// A video front end hands over a new frame path on nearly every call, so the
// cache is bounded. Once it holds capacity frames, loading another evicts the
// frame that was loaded earliest. Evict and Clear drop frames early.
//
// # Example Usage
//
//	cache := imaging.NewImageCache(8)
//	img, err := cache.Load("/frames/000123.png")
//	if err != nil {
//	    return err
//	}
//	check := imaging.CheckBoxes(img, boxes)
//	cache.Evict("/frames/000123.png") // frame no longer needed
type ImageCache struct {
	mu       sync.RWMutex
	capacity int
	images   map[string]image.Image
	order    []string // load order, oldest first
}

// NewImageCache creates an empty cache holding at most capacity frames.
// A capacity below 1 means DefaultCacheFrames.
func NewImageCache(capacity int) *ImageCache {
	if capacity < 1 {
		capacity = DefaultCacheFrames
	}
	return &ImageCache{
		capacity: capacity,
		images:   make(map[string]image.Image, capacity),
	}
}

// Load retrieves a frame from the cache or decodes it from disk.
//
// Parameters:
//   - path: Absolute or relative file path to the frame. Supported formats
//     are PNG, JPEG, and GIF.
//
// Returns:
//   - image.Image: The decoded frame. The concrete type depends on the format
//     and color model (e.g., *image.RGBA, *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The exact path string is the cache key; a relative and an absolute path to
// the same file are cached separately. Adding a frame to a full cache evicts
// the oldest one.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid PNG, JPEG, or GIF image
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.images[path]; ok {
		// Another goroutine decoded the same frame first.
		return cached, nil
	}
	c.images[path] = img
	c.order = append(c.order, path)
	for len(c.order) > c.capacity {
		c.evictLocked(c.order[0])
	}

	return img, nil
}

// Len returns the number of cached frames.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Capacity returns the maximum number of frames the cache holds.
func (c *ImageCache) Capacity() int {
	return c.capacity
}

// Clear removes all frames from the cache and returns how many there were.
func (c *ImageCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.images)
	c.images = make(map[string]image.Image, c.capacity)
	c.order = nil
	return n
}

// Evict removes one frame from the cache and reports whether it was cached.
func (c *ImageCache) Evict(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictLocked(path)
}

func (c *ImageCache) evictLocked(path string) bool {
	if _, ok := c.images[path]; !ok {
		return false
	}
	delete(c.images, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// DimensionsResult contains the width and height of a frame.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions reports the pixel size of a frame.
//
// Parameters:
//   - cache: The cache the frame is loaded through; it stays cached for the
//     box checks and crops that usually follow.
//   - path: File path to the frame.
//
// Returns:
//   - *DimensionsResult: Width and height in pixels.
//   - error: Non-nil if the frame cannot be loaded (see ImageCache.Load).
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
