package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Free-access occupancy is tracked per discipline per day; the key expires
// well after closing so stale counters never leak into the next day.
const occupancyTTL = 24 * time.Hour

// OccupancyCounter enforces the concurrent-occupancy cap for free-access
// areas using a per-discipline Redis counter.
type OccupancyCounter struct {
	client *redis.Client
}

func NewOccupancyCounter(client *redis.Client) *OccupancyCounter {
	return &OccupancyCounter{client: client}
}

// Enter increments the area counter and reports whether the entry stayed
// within the cap. When the cap is exceeded the increment is rolled back so
// a refused entry does not consume a slot.
func (o *OccupancyCounter) Enter(ctx context.Context, disciplineID string, limit int) (bool, error) {
	key := o.key(disciplineID)

	n, err := o.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("occupancy incr: %w", err)
	}
	if n == 1 {
		_ = o.client.Expire(ctx, key, occupancyTTL).Err()
	}
	if limit > 0 && n > int64(limit) {
		_ = o.client.Decr(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// Leave decrements the area counter, flooring at zero.
func (o *OccupancyCounter) Leave(ctx context.Context, disciplineID string) error {
	key := o.key(disciplineID)
	n, err := o.client.Decr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("occupancy decr: %w", err)
	}
	if n < 0 {
		_ = o.client.Set(ctx, key, 0, occupancyTTL).Err()
	}
	return nil
}

func (o *OccupancyCounter) key(disciplineID string) string {
	return fmt.Sprintf("occupancy:%s:%s", disciplineID, time.Now().UTC().Format("2006-01-02"))
}
