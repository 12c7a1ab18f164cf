package render

import (
	"image"
	"sync"
)

// Cache memoizes the last rendered chart. It holds at most one image and is
// refilled only after Invalidate or when the requested size changes.
// Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	img     image.Image
	size    image.Point
	renders int
}

// GetOrRender returns the cached image for size, calling render on a miss.
func (c *Cache) GetOrRender(size image.Point, render func(w, h int) image.Image) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.img != nil && c.size == size {
		return c.img
	}
	c.img = render(size.X, size.Y)
	c.size = size
	c.renders++
	return c.img
}

// Invalidate drops the cached image. Calling it repeatedly is harmless.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.img = nil
	c.mu.Unlock()
}

// Valid reports whether the next GetOrRender for the same size is a hit.
func (c *Cache) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img != nil
}

// Renders counts render calls since creation.
func (c *Cache) Renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}
