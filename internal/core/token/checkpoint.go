package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fitpass/gym-system/internal/core/domain"
)

const (
	// Checkpoint codes rotate on a coarse bucket so printed or displayed
	// signage stays valid for a predictable stretch.
	checkpointBucket = 15 * time.Minute

	// Validation tolerances: codes are accepted up to maxAge old, and up to
	// futureDrift ahead to absorb clock skew between signage and server.
	checkpointMaxAge      = 30 * time.Minute
	checkpointFutureDrift = 1 * time.Minute

	checkpointTagLen = 16 // hex chars of the truncated HMAC tag
)

// CheckpointCodec produces and validates the rotating codes shown at fixed
// checkpoints. Unlike the dynamic member token, a checkpoint code carries no
// subject; it only proves the scan happened at a real checkpoint recently.
// The HMAC tag makes the embedded bucket tamper-evident rather than trusting
// the caller-supplied timestamp alone.
type CheckpointCodec struct {
	secret []byte
	now    func() time.Time
}

// NewCheckpointCodec returns a CheckpointCodec keyed with secret.
func NewCheckpointCodec(secret string) *CheckpointCodec {
	return &CheckpointCodec{secret: []byte(secret), now: time.Now}
}

// WithClock overrides the codec's clock. Intended for tests.
func (c *CheckpointCodec) WithClock(now func() time.Time) *CheckpointCodec {
	c.now = now
	return c
}

// Code returns the current code for a checkpoint site, formatted as
// "<site>.<bucket>.<tag>".
func (c *CheckpointCodec) Code(siteID string) string {
	bucket := c.now().UTC().Truncate(checkpointBucket).Unix()
	return fmt.Sprintf("%s.%d.%s", siteID, bucket, c.tag(siteID, bucket))
}

// Validate checks a presented checkpoint code and returns the site it
// belongs to. Codes older than the tolerance fail with ErrTokenExpired;
// codes whose tag does not match the claimed fields fail with
// ErrTokenTampered.
func (c *CheckpointCodec) Validate(code string) (siteID string, err error) {
	parts := strings.Split(code, ".")
	if len(parts) != 3 || parts[0] == "" {
		return "", domain.ErrTokenMalformed
	}
	bucket, convErr := strconv.ParseInt(parts[1], 10, 64)
	if convErr != nil {
		return "", domain.ErrTokenMalformed
	}

	if !hmac.Equal([]byte(parts[2]), []byte(c.tag(parts[0], bucket))) {
		return "", domain.ErrTokenTampered
	}

	age := c.now().UTC().Sub(time.Unix(bucket, 0))
	if age > checkpointMaxAge || age < -checkpointFutureDrift {
		return "", domain.ErrTokenExpired
	}
	return parts[0], nil
}

func (c *CheckpointCodec) tag(siteID string, bucket int64) string {
	mac := hmac.New(sha256.New, c.secret)
	fmt.Fprintf(mac, "%s.%d", siteID, bucket)
	return hex.EncodeToString(mac.Sum(nil))[:checkpointTagLen]
}
