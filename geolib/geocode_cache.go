package geolib

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

const (
	DefaultGeocodeCacheItems = 1000
	DefaultGeocodeCacheTTL   = time.Hour
)

// GeocodeCache keeps successful responses of reverse geocoding keyed by
// service URL, API key and coordinates. ristretto keeps only hashes of
// keys. It is safe to share a single cache between many
// resolvers: GeoResolver lives as long as a session and this cache
// could live as long as a process.
//
// Please pay attention that cache is eventually consistent: a value
// set right now could be unavailable for a couple of milliseconds.
type GeocodeCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func (g *GeocodeCache) get(key string) (geocodeResponse, bool) {
	value, ok := g.cache.Get(key)
	if !ok {
		return geocodeResponse{}, false
	}

	return value.(geocodeResponse), true
}

func (g *GeocodeCache) set(key string, resp geocodeResponse) {
	g.cache.SetWithTTL(key, resp, 1, g.ttl)
}

// Close stops cache goroutines.
func (g *GeocodeCache) Close() {
	g.cache.Close()
}

// NewGeocodeCache creates a new cache which stores up to itemsCount
// responses. Each response expires after ttl. Zero values are replaced
// with defaults.
func NewGeocodeCache(itemsCount uint, ttl time.Duration) *GeocodeCache {
	if itemsCount == 0 {
		itemsCount = DefaultGeocodeCacheItems
	}

	if ttl <= 0 {
		ttl = DefaultGeocodeCacheTTL
	}

	cacheConfig := &ristretto.Config{
		MaxCost:     int64(itemsCount),
		NumCounters: 10 * int64(itemsCount),
		Metrics:     false,
		BufferItems: 64,
	}

	cache, err := ristretto.NewCache(cacheConfig)
	if err != nil {
		panic(err)
	}

	return &GeocodeCache{
		cache: cache,
		ttl:   ttl,
	}
}
