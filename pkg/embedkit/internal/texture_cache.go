package internal

import "github.com/veandco/go-sdl2/sdl"

const defaultMaxTextures = 8

// TextureCache keeps the most recently drawn illustration textures alive
// between frames and destroys the least recently used one when full.
type TextureCache struct {
	textures map[string]*sdl.Texture
	order    []string // least recently used first
	maxSize  int
}

func NewTextureCache(maxSize int) *TextureCache {
	if maxSize <= 0 {
		maxSize = defaultMaxTextures
	}
	return &TextureCache{
		textures: make(map[string]*sdl.Texture),
		order:    make([]string, 0, maxSize),
		maxSize:  maxSize,
	}
}

func (c *TextureCache) Get(key string) *sdl.Texture {
	t, ok := c.textures[key]
	if !ok {
		return nil
	}
	c.touch(key)
	return t
}

func (c *TextureCache) Set(key string, texture *sdl.Texture) {
	if old, ok := c.textures[key]; ok {
		if old != nil && old != texture {
			old.Destroy()
		}
		c.textures[key] = texture
		c.touch(key)
		return
	}
	if len(c.order) >= c.maxSize {
		c.evict()
	}
	c.textures[key] = texture
	c.order = append(c.order, key)
}

func (c *TextureCache) Len() int {
	return len(c.order)
}

func (c *TextureCache) touch(key string) {
	for i, k := range c.order {
		if k == key {
			copy(c.order[i:], c.order[i+1:])
			c.order[len(c.order)-1] = key
			return
		}
	}
}

func (c *TextureCache) evict() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	if t := c.textures[oldest]; t != nil {
		t.Destroy()
	}
	delete(c.textures, oldest)
}

func (c *TextureCache) Destroy() {
	for _, t := range c.textures {
		if t != nil {
			t.Destroy()
		}
	}
	c.textures = make(map[string]*sdl.Texture)
	c.order = c.order[:0]
}
