package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker provides a fast-path webhook replay check backed by Redis.
// It is advisory only: the unique email index in MongoDB remains the
// authoritative idempotency guarantee, so a cold or flushed cache costs a
// duplicate-key round trip, never a duplicate account.
//
// Key format: webhook:dedup:<email>:<event_type>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this event has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, email, eventType string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(email, eventType)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, email, eventType string) error {
	return d.client.Set(ctx, d.key(email, eventType), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(email, eventType string) string {
	return fmt.Sprintf("webhook:dedup:%s:%s", email, eventType)
}
