package markdown

import (
	"strconv"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/mdinput/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Cache is a read-through cache of rendered previews keyed by style, width
// and source text. Fields re-render on every View, so the cache keeps the
// glamour pass off the hot path. Hits extend the entry's TTL.
type Cache struct {
	mu        sync.Mutex
	style     string
	ttl       time.Duration
	renderers map[int]*Renderer
	cache     *gocache.Cache
}

// NewCache creates a cache that renders with the given glamour style.
func NewCache(style string) *Cache {
	return NewCacheWithExpiration(style, DefaultExpiration, DefaultCleanupInterval)
}

// NewCacheWithExpiration creates a cache with explicit TTL settings.
func NewCacheWithExpiration(style string, ttl, cleanupInterval time.Duration) *Cache {
	if style == "" {
		style = DefaultStyle
	}
	return &Cache{
		style:     style,
		ttl:       ttl,
		renderers: make(map[int]*Renderer),
		cache:     gocache.New(ttl, cleanupInterval),
	}
}

// Style returns the glamour style name in use.
func (c *Cache) Style() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.style
}

// SetStyle switches the glamour style, dropping every cached render.
func (c *Cache) SetStyle(style string) {
	if style == "" {
		style = DefaultStyle
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if style == c.style {
		return
	}
	log.Debug(log.CatCache, "markdown style changed, flushing", "from", c.style, "to", style)
	c.style = style
	c.renderers = make(map[int]*Renderer)
	c.cache.Flush()
}

// Len returns the number of cached renders.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}

// Render returns text rendered as markdown wrapped at width. When glamour
// fails the raw text is returned unchanged.
func (c *Cache) Render(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.key(text, width)
	if value, found := c.cache.Get(key); found {
		if s, ok := value.(string); ok {
			c.cache.Set(key, s, c.ttl)
			return s
		}
		log.Error(log.CatCache, "wrong type assertion when getting value", "key", key)
	}

	out, err := c.render(text, width)
	if err != nil {
		log.ErrorErr(log.CatRender, "markdown render failed, showing raw text", err, "style", c.style, "width", width)
		return text
	}

	c.cache.Set(key, out, c.ttl)
	return out
}

// render must be called with c.mu held.
func (c *Cache) render(text string, width int) (string, error) {
	r, ok := c.renderers[width]
	if !ok {
		var err error
		r, err = New(width, c.style)
		if err != nil {
			return "", err
		}
		c.renderers[width] = r
	}
	return r.Render(text)
}

func (c *Cache) key(text string, width int) string {
	return c.style + "|" + strconv.Itoa(width) + "|" + text
}
