package ports

import (
	"context"
	"time"

	"github.com/fitpass/gym-system/internal/core/domain"
)

// Caller identifies the already-authenticated actor performing an operation.
// The core treats it as opaque, verified input; it never touches auth state.
type Caller struct {
	MemberID string
	Role     string
}

// ReserveInput carries a reservation request. MemberID may differ from the
// caller only when the caller's role allows reserving on behalf of others.
type ReserveInput struct {
	ClassID  string
	MemberID string
	Caller   Caller
}

// ReserveResult is returned on a committed reservation.
type ReserveResult struct {
	ReservationID    string
	Status           string
	DisciplineName   string
	RemainingCredits int
	Unlimited        bool
}

// CancelInput carries a cancellation request.
type CancelInput struct {
	ReservationID string
	Caller        Caller
}

// CancelResult is returned on a committed cancellation. Outcome reports
// whether the credit was restored or forfeited.
type CancelResult struct {
	Outcome          domain.CancelOutcome
	RemainingCredits int
	Unlimited        bool
}

// ReservationView is the list projection of a reservation, including the
// derived state (ATTENDED / NO_SHOW for finished classes).
type ReservationView struct {
	ReservationID string
	ClassID       string
	ClassName     string
	StartTime     time.Time
	EndTime       time.Time
	State         domain.ReservationStatus
	Attended      bool
	CreatedAt     time.Time
}

// ReservationService is the reservation state machine use-case boundary.
type ReservationService interface {
	Reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error)
	Cancel(ctx context.Context, in CancelInput) (*CancelResult, error)
	List(ctx context.Context, memberID string, caller Caller) ([]ReservationView, error)
	// MarkAttended records attendance for a granted check-in. Only the
	// check-in authorizer calls this.
	MarkAttended(ctx context.Context, reservationID string) error
}
