package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"bankident/internal/platform/metrics"
	"bankident/internal/registry"
)

// Key prefixes for the three lookup shapes.
const (
	keyBankPrefix    = "dir:bank:"    // dir:bank:<CC>:<code>
	keyCountryPrefix = "dir:country:" // dir:country:<CC>
	keyBICPrefix     = "dir:bic:"     // dir:bic:<BIC>
)

// RedisDirectory is a read-through cache in front of another Directory.
// Directory data changes rarely, so a short TTL keeps the cache honest
// without invalidation plumbing. Cache failures degrade to the inner
// directory, never to an error.
type RedisDirectory struct {
	inner   registry.Directory
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewRedisCache wraps inner with a redis read-through cache.
func NewRedisCache(inner registry.Directory, client *redis.Client, ttl time.Duration, m *metrics.Metrics) *RedisDirectory {
	return &RedisDirectory{inner: inner, client: client, ttl: ttl, metrics: m}
}

func (d *RedisDirectory) FindBanks(ctx context.Context, countryCode, bankCode string) ([]registry.Bank, error) {
	key := keyBankPrefix + strings.ToUpper(countryCode) + ":" + strings.ToUpper(bankCode)
	return d.through(ctx, "bank", key, func() ([]registry.Bank, error) {
		return d.inner.FindBanks(ctx, countryCode, bankCode)
	})
}

func (d *RedisDirectory) BanksForCountry(ctx context.Context, countryCode string) ([]registry.Bank, error) {
	key := keyCountryPrefix + strings.ToUpper(countryCode)
	return d.through(ctx, "country", key, func() ([]registry.Bank, error) {
		return d.inner.BanksForCountry(ctx, countryCode)
	})
}

func (d *RedisDirectory) BanksByBIC(ctx context.Context, bic string) ([]registry.Bank, error) {
	key := keyBICPrefix + strings.ToUpper(bic)
	return d.through(ctx, "bic", key, func() ([]registry.Bank, error) {
		return d.inner.BanksByBIC(ctx, bic)
	})
}

// through serves key from the cache, falling back to load on miss or cache
// error. Empty results are cached too: absent bank codes are a common query
// and hammering the inner store for them defeats the cache.
func (d *RedisDirectory) through(ctx context.Context, lookup, key string, load func() ([]registry.Bank, error)) ([]registry.Bank, error) {
	raw, err := d.client.Get(ctx, key).Bytes()
	if err == nil {
		var banks []registry.Bank
		if err := json.Unmarshal(raw, &banks); err == nil {
			d.metrics.RecordCacheHit(lookup)
			return banks, nil
		}
		// Corrupt entry: drop it and fall through to the inner directory.
		d.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) {
		// Cache unavailable; the inner directory still answers.
		d.metrics.RecordCacheMiss(lookup)
		return load()
	}

	d.metrics.RecordCacheMiss(lookup)
	banks, err := load()
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(banks); err == nil {
		// Best effort; a failed write only costs the next lookup.
		_ = d.client.Set(ctx, key, raw, d.ttl).Err()
	}
	return banks, nil
}

// Invalidate drops every cached directory entry, for use after a dataset
// reload.
func (d *RedisDirectory) Invalidate(ctx context.Context) error {
	for _, prefix := range []string{keyBankPrefix, keyCountryPrefix, keyBICPrefix} {
		iter := d.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			if err := d.client.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("invalidate %s: %w", iter.Val(), err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scan %s: %w", prefix, err)
		}
	}
	return nil
}
