package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// FeedCache keeps recently assembled feed views in redis for a short TTL.
// Keys carry an epoch counter; project writes bump the epoch, which orphans
// every cached feed at once without scanning for keys.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

type feedCacheEntry struct {
	Views    []model.ProjectView `json:"views"`
	CachedAt time.Time           `json:"cached_at"`
}

const feedEpochKey = "feed:epoch"

// PublicFeedKey names the cache slot of the unauthenticated feed.
const PublicFeedKey = "public"

func NewFeedCache(redisURL string, ttl time.Duration) (*FeedCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &FeedCache{client: client, ttl: ttl}, nil
}

func (fc *FeedCache) key(ctx context.Context, name string) string {
	epoch, err := fc.client.Get(ctx, feedEpochKey).Int64()
	if err != nil && err != redis.Nil {
		log.Printf("feed cache: epoch read failed: %v", err)
	}
	return fmt.Sprintf("feed:%d:%s", epoch, name)
}

// Get returns the cached views for the named feed, or false on a miss. A
// redis failure is treated as a miss so reads fall through to the store.
func (fc *FeedCache) Get(ctx context.Context, name string) ([]model.ProjectView, bool) {
	data, err := fc.client.Get(ctx, fc.key(ctx, name)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("feed cache: get failed: %v", err)
		}
		return nil, false
	}

	var entry feedCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Printf("feed cache: corrupt entry for %s: %v", name, err)
		return nil, false
	}
	return entry.Views, true
}

// Set stores the views under the current epoch. Failures are logged and
// swallowed; caching is best effort.
func (fc *FeedCache) Set(ctx context.Context, name string, views []model.ProjectView) {
	entry := feedCacheEntry{Views: views, CachedAt: time.Now()}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("feed cache: marshal failed: %v", err)
		return
	}

	if err := fc.client.Set(ctx, fc.key(ctx, name), data, fc.ttl).Err(); err != nil {
		log.Printf("feed cache: set failed: %v", err)
	}
}

// Invalidate bumps the epoch so every cached feed misses from now on. The
// stale entries expire on their own TTL.
func (fc *FeedCache) Invalidate(ctx context.Context) {
	if err := fc.client.Incr(ctx, feedEpochKey).Err(); err != nil {
		log.Printf("feed cache: invalidate failed: %v", err)
	}
}
