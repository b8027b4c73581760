package domain

import "github.com/couchcryptid/accident-severity-etl/internal/cache"

// CacheStatser is implemented by memoizing classifiers.
type CacheStatser interface {
	CacheStats() cache.Stats
}

// CachedRoadClassifier memoizes a RoadClassifier by raw street text.
type CachedRoadClassifier struct {
	inner RoadClassifier
	cache *cache.LRU[string, RoadClass]
}

// NewCachedRoadClassifier wraps inner with an LRU of maxEntries.
func NewCachedRoadClassifier(inner RoadClassifier, maxEntries int) *CachedRoadClassifier {
	return &CachedRoadClassifier{inner: inner, cache: cache.New[string, RoadClass](maxEntries)}
}

func (c *CachedRoadClassifier) Classify(street string) RoadClass {
	if class, ok := c.cache.Get(street); ok {
		return class
	}
	class := c.inner.Classify(street)
	c.cache.Put(street, class)
	return class
}

func (c *CachedRoadClassifier) CacheStats() cache.Stats { return c.cache.Stats() }

// CachedWeatherGrouper memoizes a WeatherGrouper by raw condition text.
type CachedWeatherGrouper struct {
	inner WeatherGrouper
	cache *cache.LRU[string, string]
}

// NewCachedWeatherGrouper wraps inner with an LRU of maxEntries.
func NewCachedWeatherGrouper(inner WeatherGrouper, maxEntries int) *CachedWeatherGrouper {
	return &CachedWeatherGrouper{inner: inner, cache: cache.New[string, string](maxEntries)}
}

func (c *CachedWeatherGrouper) Group(condition string) string {
	if g, ok := c.cache.Get(condition); ok {
		return g
	}
	g := c.inner.Group(condition)
	c.cache.Put(condition, g)
	return g
}

func (c *CachedWeatherGrouper) Groups() []string { return c.inner.Groups() }

func (c *CachedWeatherGrouper) CacheStats() cache.Stats { return c.cache.Stats() }
