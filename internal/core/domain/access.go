package domain

import "time"

// AccessType records how an entry attempt was presented.
type AccessType string

const (
	AccessQRScan  AccessType = "qr_scan"  // dynamic member token scanned at a checkpoint
	AccessAppScan AccessType = "app_scan" // member scanned a checkpoint code with the app
	AccessManual  AccessType = "manual"   // staff entered a member identifier by hand
)

// AccessEntry is one append-only record of an entry decision. Entries are
// never mutated after creation.
type AccessEntry struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	MemberID   string     `json:"member_id" bson:"member_id"`
	Discipline string     `json:"discipline" bson:"discipline"`
	Type       AccessType `json:"type" bson:"type"`
	Granted    bool       `json:"granted" bson:"granted"`
	Reason     string     `json:"reason,omitempty" bson:"reason,omitempty"`
	Timestamp  time.Time  `json:"timestamp" bson:"timestamp"`
}
