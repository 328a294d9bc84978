package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/models"
)

const keyPrefix = "fin:transactions"

// TransactionPageCache stores serialized [models.TransactionPage] values.
type TransactionPageCache struct {
	client redisClient
	ttl    time.Duration
	logger *logger.Logger
}

// NewTransactionPageCache builds a cache on top of client. Entries live for ttl.
func NewTransactionPageCache(client redisClient, ttl time.Duration, logger *logger.Logger) *TransactionPageCache {
	logger.Debug().Dur("ttl", ttl).Msg("creating transaction page cache")
	return &TransactionPageCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetPage looks up the page cached for query. A miss is reported with
// found == false and a nil error. The returned key names the entry under the
// generation current at lookup time; pass it to [TransactionPageCache.SetPage]
// to fill the miss. It is empty when the key could not be resolved.
func (c *TransactionPageCache) GetPage(ctx context.Context, query models.TransactionQuery) (page models.TransactionPage, key string, found bool, err error) {
	key, err = c.pageKey(ctx, query)
	if err != nil {
		return models.TransactionPage{}, "", false, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.TransactionPage{}, key, false, nil
	}
	if err != nil {
		return models.TransactionPage{}, key, false, fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}

	if err = json.Unmarshal(raw, &page); err != nil {
		return models.TransactionPage{}, key, false, fmt.Errorf("%w: %w", ErrCorruptedEntry, err)
	}

	return page, key, true, nil
}

// SetPage stores page under a key obtained from [TransactionPageCache.GetPage].
// The generation is not read again: a page loaded before an invalidation
// lands under the old generation and is never served.
func (c *TransactionPageCache) SetPage(ctx context.Context, key string, page models.TransactionPage) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("error marshalling transaction page: %w", err)
	}

	if err = c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}

	return nil
}

// Invalidate drops every page cached for userID by advancing its generation.
func (c *TransactionPageCache) Invalidate(ctx context.Context, userID int64) error {
	key := generationKey(userID)

	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}
	// the counter must outlive every page stored under an older generation
	if err := c.client.Expire(ctx, key, 2*c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}

	c.logger.Debug().Str("func", "*TransactionPageCache.Invalidate").Int64("user_id", userID).Msg("transaction pages invalidated")
	return nil
}

// Ping reports whether Redis answers.
func (c *TransactionPageCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *TransactionPageCache) Close() error {
	return c.client.Close()
}

func (c *TransactionPageCache) generation(ctx context.Context, userID int64) (string, error) {
	generation, err := c.client.Get(ctx, generationKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}
	return generation, nil
}

func (c *TransactionPageCache) pageKey(ctx context.Context, query models.TransactionQuery) (string, error) {
	generation, err := c.generation(ctx, query.UserID)
	if err != nil {
		return "", err
	}

	fingerprint, err := queryFingerprint(query)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s:%d:%s:%016x", keyPrefix, query.UserID, generation, fingerprint), nil
}

func generationKey(userID int64) string {
	return keyPrefix + ":" + strconv.FormatInt(userID, 10) + ":gen"
}

// queryFingerprint hashes the canonical JSON form of query. Filters are
// normalized to UTC first so equal instants share an entry.
func queryFingerprint(query models.TransactionQuery) (uint64, error) {
	filters := query.Filters
	if filters.StartDate != nil {
		start := filters.StartDate.UTC()
		filters.StartDate = &start
	}
	if filters.EndDate != nil {
		end := filters.EndDate.UTC()
		filters.EndDate = &end
	}

	raw, err := json.Marshal(struct {
		Filters models.TransactionFilters `json:"f"`
		Sort    models.Sort               `json:"s"`
		Page    models.PageRequest        `json:"p"`
	}{filters, query.Sort, query.Page})
	if err != nil {
		return 0, fmt.Errorf("error building cache key: %w", err)
	}

	return xxhash.Sum64(raw), nil
}
