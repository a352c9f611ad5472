package domain

import "time"

// MembershipStatus is the administrative state of a membership.
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "ACTIVE"
	MembershipExpired   MembershipStatus = "EXPIRED"
	MembershipCancelled MembershipStatus = "CANCELLED"
)

// Membership is a member's paid entitlement to a discipline. Credits are a
// conserved resource: every debit is backed by exactly one committed
// reservation and every qualifying refund restores exactly one credit.
// RemainingCredits never leaves [0, TotalCredits] for limited memberships.
type Membership struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	MemberID         string           `json:"member_id" bson:"member_id"`
	DisciplineID     string           `json:"discipline_id" bson:"discipline_id"`
	PlanID           string           `json:"plan_id" bson:"plan_id"`
	TotalCredits     int              `json:"total_credits" bson:"total_credits"`
	RemainingCredits int              `json:"remaining_credits" bson:"remaining_credits"`
	IsUnlimited      bool             `json:"is_unlimited" bson:"is_unlimited"`
	Status           MembershipStatus `json:"status" bson:"status"`
	ExpirationDate   time.Time        `json:"expiration_date" bson:"expiration_date"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
}

// IsUsable reports whether the membership entitles its member to anything at
// the given instant: administratively active and not past its expiration.
func (m *Membership) IsUsable(now time.Time) bool {
	return m.Status == MembershipActive && now.Before(m.ExpirationDate)
}

// CanConsume reports whether one more credit can be consumed.
func (m *Membership) CanConsume() bool {
	return m.IsUnlimited || m.RemainingCredits > 0
}
