package domain

import "time"

// ReservationStatus is the stored lifecycle state of a reservation.
// "Completed" and "no-show" are projections derived from time plus the
// attended flag, never stored.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "ACTIVE"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Derived (query-time only) states reported by EffectiveState.
const (
	ReservationAttended ReservationStatus = "ATTENDED"
	ReservationNoShow   ReservationStatus = "NO_SHOW"
)

// CancelOutcome distinguishes a cancellation inside the notice window
// (credit restored) from one outside it (credit forfeited).
type CancelOutcome string

const (
	CancelRefunded  CancelOutcome = "refunded"
	CancelForfeited CancelOutcome = "forfeited"
)

// Reservation links one member, one class, and one membership. At most one
// row exists per (member, class) pair: re-reserving after cancellation
// reactivates the same row rather than inserting a duplicate.
type Reservation struct {
	ID           string            `json:"id" bson:"_id,omitempty"`
	MemberID     string            `json:"member_id" bson:"member_id"`
	ClassID      string            `json:"class_id" bson:"class_id"`
	MembershipID string            `json:"membership_id" bson:"membership_id"`
	Status       ReservationStatus `json:"status" bson:"status"`
	Attended     bool              `json:"attended" bson:"attended"`
	CancelledAt  *time.Time        `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
}

// EffectiveState projects the user-visible state at time now given the
// class's end time. ACTIVE rows of finished classes become ATTENDED or
// NO_SHOW depending on the attended flag.
func (r *Reservation) EffectiveState(classEnd time.Time, now time.Time) ReservationStatus {
	if r.Status == ReservationCancelled {
		return ReservationCancelled
	}
	if now.Before(classEnd) {
		return ReservationActive
	}
	if r.Attended {
		return ReservationAttended
	}
	return ReservationNoShow
}
