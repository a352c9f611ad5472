package ports

import (
	"context"
	"time"

	"github.com/fitpass/gym-system/internal/core/domain"
)

// ReserveParams carries everything the store needs to commit a reservation
// atomically with its credit debit. Guard evaluation (class not started,
// membership usable) happens in the service; the store re-checks capacity,
// duplicates, and credit balance inside the same transaction so concurrent
// attempts cannot both pass.
type ReserveParams struct {
	MemberID     string
	ClassID      string
	MembershipID string
	// Unlimited memberships skip the debit entirely.
	Unlimited bool
	Now       time.Time
}

// ReserveOutcome is the committed result of a reservation transaction.
type ReserveOutcome struct {
	Reservation      *domain.Reservation
	RemainingCredits int
}

// CancelParams carries the inputs for a cancellation transaction. Refund is
// decided by the service from the cancellation window; the store applies the
// state flip, the seat release, and (when Refund and not Unlimited) the
// capped credit restore as one unit.
type CancelParams struct {
	ReservationID string
	Refund        bool
	Unlimited     bool
	Now           time.Time
}

// CancelOutcome is the committed result of a cancellation transaction.
type CancelOutcome struct {
	RemainingCredits int
}

// ReservationStore is the transactional persistence boundary for the
// reservation state machine. Reserve and Cancel are all-or-nothing: no
// concurrent reader ever observes a reservation row without its matching
// credit change, or vice versa.
type ReservationStore interface {
	// Reserve commits ABSENT→ACTIVE (insert) or CANCELLED→ACTIVE (reuse of
	// the same logical row, resetting attended and cancelled_at) together
	// with the capacity increment and the credit debit. Typed failures:
	// domain.ErrClassFull, domain.ErrDuplicateReservation,
	// domain.ErrInsufficientCredits.
	Reserve(ctx context.Context, p ReserveParams) (*ReserveOutcome, error)

	// Cancel commits ACTIVE→CANCELLED together with the seat release and the
	// optional refund. Fails with domain.ErrReservationNotActive when the row
	// is already cancelled.
	Cancel(ctx context.Context, p CancelParams) (*CancelOutcome, error)

	// MarkAttended flips the attended flag on an ACTIVE reservation. Called
	// only via the reservation service on a granted check-in.
	MarkAttended(ctx context.Context, reservationID string) error

	FindByID(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// FindActiveForMember returns the member's ACTIVE reservation for the
	// given class, or domain.ErrReservationNotFound.
	FindActiveForMember(ctx context.Context, memberID, classID string) (*domain.Reservation, error)

	ListByMember(ctx context.Context, memberID string) ([]*domain.Reservation, error)

	// CountActiveByClass reports how many ACTIVE reservations a class holds.
	// Used by the class-deletion guard.
	CountActiveByClass(ctx context.Context, classID string) (int64, error)
}
