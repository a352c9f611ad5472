package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitpass/gym-system/internal/api/metrics"
)

const dedupTTL = time.Hour

// ScanDedup suppresses replays of device-uploaded scan events.
// Key format: scan:<member_id>:<site>:<unix_timestamp>
type ScanDedup struct {
	client *redis.Client
}

func NewScanDedup(client *redis.Client) *ScanDedup {
	return &ScanDedup{client: client}
}

// IsDuplicate reports whether this exact scan has already been processed.
func (d *ScanDedup) IsDuplicate(ctx context.Context, memberID, site string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(memberID, site, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("scan dedup check: %w", err)
	}
	if n > 0 {
		metrics.ScanDedupTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.ScanDedupTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// Mark records that this scan has been processed (expires after dedupTTL).
func (d *ScanDedup) Mark(ctx context.Context, memberID, site string, ts time.Time) error {
	return d.client.Set(ctx, d.key(memberID, site, ts), "1", dedupTTL).Err()
}

func (d *ScanDedup) key(memberID, site string, ts time.Time) string {
	return fmt.Sprintf("scan:%s:%s:%d", memberID, site, ts.Unix())
}
