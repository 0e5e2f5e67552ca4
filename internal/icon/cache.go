package icon

import (
	"context"
	"fmt"
	"image"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"appdock/internal/log"
)

const (
	defaultExpiration      = 10 * time.Minute
	defaultCleanupInterval = 30 * time.Minute
)

// CachingRenderer memoizes rendered bitmaps per (path, size) with a TTL
// so repeated catalog listings do not re-decode the same files.
type CachingRenderer struct {
	inner Renderer
	cache *gocache.Cache
}

// NewCachingRenderer wraps inner with an in-memory TTL cache.
func NewCachingRenderer(inner Renderer) *CachingRenderer {
	return &CachingRenderer{
		inner: inner,
		cache: gocache.New(defaultExpiration, defaultCleanupInterval),
	}
}

func (c *CachingRenderer) RenderPath(ctx context.Context, path string, size int) (image.Image, error) {
	key := fmt.Sprintf("%s|%d", path, size)

	if value, found := c.cache.Get(key); found {
		img, ok := value.(image.Image)
		if !ok {
			log.Error(log.CatIcon, "wrong type assertion when getting cached icon", "key", key)
		} else {
			log.Debug(log.CatIcon, "icon cache hit", "key", key)
			return img, nil
		}
	}

	img, err := c.inner.RenderPath(ctx, path, size)
	if err != nil {
		return nil, err
	}
	if img != nil {
		c.cache.Set(key, img, gocache.DefaultExpiration)
	}
	return img, nil
}

// Flush drops all cached bitmaps.
func (c *CachingRenderer) Flush() {
	c.cache.Flush()
}
