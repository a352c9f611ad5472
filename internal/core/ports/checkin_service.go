package ports

import (
	"context"
	"time"

	"github.com/fitpass/gym-system/internal/core/domain"
)

// CheckinInput is one entry attempt. Exactly one of Token or MemberID
// identifies the subject: Token for scanned dynamic codes, MemberID for
// staff manual entry. CheckpointCode optionally proves the scan happened at
// real signage (app-initiated scans). DisciplineID may be empty for manual
// entry, in which case the member's usable membership selects it.
type CheckinInput struct {
	Token          string
	MemberID       string
	CheckpointCode string
	DisciplineID   string
	Type           domain.AccessType
}

// CheckinResult reports an entry decision. Granted=false results carry the
// denial reason; Logged reports whether an access entry was appended (it is
// not when the subject could not be resolved to a real member).
type CheckinResult struct {
	Granted    bool
	MemberID   string
	Discipline string
	Reason     string
	Logged     bool
}

// CheckinService is the check-in authorizer boundary.
type CheckinService interface {
	CheckIn(ctx context.Context, in CheckinInput) (*CheckinResult, error)
}

// ScanEvent is one scan uploaded by a checkpoint device. Batches are
// ingested asynchronously; per-member ordering is preserved by the
// dispatcher and replays are suppressed by the dedup store.
type ScanEvent struct {
	Token     string
	MemberID  string
	Site      string
	Type      domain.AccessType
	Timestamp time.Time
}

// ScanProcessor consumes scan events from the dispatcher.
type ScanProcessor interface {
	Process(ctx context.Context, event ScanEvent) error
}
