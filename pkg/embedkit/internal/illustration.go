package internal

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// RasterizeSVG renders an SVG document into an RGBA image of the given size.
func RasterizeSVG(data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rasterize svg: invalid size %dx%d", width, height)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("rasterize svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return rgba, nil
}

type illustrationKey struct {
	path          string
	width, height int
}

// IllustrationCache rasterizes SVG files at most once per path and size.
type IllustrationCache struct {
	mu     sync.Mutex
	images map[illustrationKey]*image.RGBA
	read   func(string) ([]byte, error)
}

func NewIllustrationCache() *IllustrationCache {
	return &IllustrationCache{
		images: make(map[illustrationKey]*image.RGBA),
		read:   os.ReadFile,
	}
}

// Load returns the rasterized illustration for path.
func (c *IllustrationCache) Load(path string, width, height int) (*image.RGBA, error) {
	key := illustrationKey{path: path, width: width, height: height}

	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.images[key]; ok {
		return img, nil
	}
	data, err := c.read(path)
	if err != nil {
		return nil, fmt.Errorf("load illustration %q: %w", path, err)
	}
	img, err := RasterizeSVG(data, width, height)
	if err != nil {
		return nil, fmt.Errorf("load illustration %q: %w", path, err)
	}
	c.images[key] = img
	return img, nil
}

func (c *IllustrationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}
