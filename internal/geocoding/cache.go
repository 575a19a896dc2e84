package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "geocode:"

// Cache is the subset of the Redis client used by CachedProvider.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedProvider is a read-through Redis cache in front of another Provider.
// Only successful lookups are stored. Cache failures are logged and bypassed.
type CachedProvider struct {
	next    Provider
	cache   Cache
	country string
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewCachedProvider wraps next with a Redis cache whose entries expire after ttl.
func NewCachedProvider(
	next Provider,
	cache Cache,
	country string,
	ttl time.Duration,
	metrics *metrics.Metrics,
	log *slog.Logger,
) *CachedProvider {
	return &CachedProvider{
		next:    next,
		cache:   cache,
		country: strings.ToLower(country),
		ttl:     ttl,
		metrics: metrics,
		log:     log,
	}
}

// Geocode returns the cached coordinates for the address or resolves and stores them.
func (cp *CachedProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	key := cp.key(address)

	raw, err := cp.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var coords models.Coordinates
		if errDecode := json.Unmarshal(raw, &coords); errDecode == nil {
			cp.metrics.GeocodeCache.WithLabelValues("hit").Inc()
			return &coords, nil
		}
		cp.log.WarnContext(ctx, "Dropping undecodable geocode cache entry", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		cp.metrics.GeocodeCache.WithLabelValues("error").Inc()
		cp.log.WarnContext(ctx, "Geocode cache read failed", "key", key, "error", err)
	}

	cp.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	coords, err := cp.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(coords)
	if err == nil {
		err = cp.cache.Set(ctx, key, payload, cp.ttl).Err()
	}
	if err != nil {
		cp.metrics.GeocodeCache.WithLabelValues("error").Inc()
		cp.log.WarnContext(ctx, "Geocode cache write failed", "key", key, "error", err)
	}

	return coords, nil
}

// Suggest delegates to the wrapped provider when it supports autocomplete.
func (cp *CachedProvider) Suggest(
	ctx context.Context,
	query string,
	proximity *models.Coordinates,
) ([]models.PlaceSuggestion, error) {
	suggester, ok := cp.next.(Suggester)
	if !ok {
		return nil, ErrSuggestUnsupported
	}

	return suggester.Suggest(ctx, query, proximity)
}

func (cp *CachedProvider) key(address string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(address)), " ")
	return cacheKeyPrefix + cp.country + ":" + normalized
}
