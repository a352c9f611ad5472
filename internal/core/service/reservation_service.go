package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/ports"
)

const defaultCancellationWindow = 3 * time.Hour

// ReservationService drives the reservation lifecycle: create, cancel with
// the refund window rule, and re-reserve after cancellation. Credit debits
// and refunds happen inside the store transaction that commits the matching
// reservation change; no other code path touches either.
type ReservationService struct {
	store       ports.ReservationStore
	classes     ports.ClassRepository
	disciplines ports.DisciplineRepository
	memberships ports.MembershipRepository
	window      time.Duration
	now         func() time.Time
	log         zerolog.Logger
}

// NewReservationService builds a ReservationService. A non-positive
// cancellation window falls back to 3 hours.
func NewReservationService(
	store ports.ReservationStore,
	classes ports.ClassRepository,
	disciplines ports.DisciplineRepository,
	memberships ports.MembershipRepository,
	cancellationWindow time.Duration,
	log zerolog.Logger,
) *ReservationService {
	if cancellationWindow <= 0 {
		cancellationWindow = defaultCancellationWindow
	}
	return &ReservationService{
		store:       store,
		classes:     classes,
		disciplines: disciplines,
		memberships: memberships,
		window:      cancellationWindow,
		now:         time.Now,
		log:         log,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// Reserve attempts ABSENT→ACTIVE (or CANCELLED→ACTIVE reuse). All guards are
// evaluated here; capacity, duplicates, and credit balance are re-checked
// inside the store transaction so two concurrent requests cannot both pass.
// A lost race is retried exactly once as a fresh attempt.
func (s *ReservationService) Reserve(ctx context.Context, in ports.ReserveInput) (*ports.ReserveResult, error) {
	if !domain.RoleAllows(in.Caller.Role, domain.ActionReserve) {
		return nil, domain.ErrForbidden
	}
	if in.MemberID == "" {
		in.MemberID = in.Caller.MemberID
	}
	if in.MemberID != in.Caller.MemberID && !domain.RoleAllows(in.Caller.Role, domain.ActionReserveOnBehalf) {
		return nil, domain.ErrForbidden
	}

	result, err := s.reserveOnce(ctx, in)
	if errors.Is(err, domain.ErrStoreConflict) {
		s.log.Warn().Str("class_id", in.ClassID).Str("member_id", in.MemberID).
			Msg("reservation lost a concurrent race, retrying once")
		result, err = s.reserveOnce(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("reservation_id", result.ReservationID).
		Str("member_id", in.MemberID).
		Str("class_id", in.ClassID).
		Int("remaining_credits", result.RemainingCredits).
		Msg("reservation committed")
	return result, nil
}

func (s *ReservationService) reserveOnce(ctx context.Context, in ports.ReserveInput) (*ports.ReserveResult, error) {
	now := s.now().UTC()

	class, err := s.classes.FindByID(ctx, in.ClassID)
	if err != nil {
		return nil, err
	}
	if !class.IsActive {
		return nil, domain.ErrClassNotFound
	}
	if class.HasStarted(now) {
		return nil, domain.ErrClassStarted
	}
	// Advisory pre-check; the authoritative one runs inside the transaction.
	if !class.HasOpenSlot() {
		return nil, domain.ErrClassFull
	}

	membership, err := s.memberships.FindUsable(ctx, in.MemberID, class.DisciplineID, now)
	if err != nil {
		return nil, err
	}
	if !membership.CanConsume() {
		return nil, domain.ErrInsufficientCredits
	}

	outcome, err := s.store.Reserve(ctx, ports.ReserveParams{
		MemberID:     in.MemberID,
		ClassID:      class.ID,
		MembershipID: membership.ID,
		Unlimited:    membership.IsUnlimited,
		Now:          now,
	})
	if err != nil {
		return nil, err
	}

	disciplineName := class.DisciplineID
	if d, derr := s.disciplines.FindByID(ctx, class.DisciplineID); derr == nil {
		disciplineName = d.Name
	}

	return &ports.ReserveResult{
		ReservationID:    outcome.Reservation.ID,
		Status:           string(outcome.Reservation.Status),
		DisciplineName:   disciplineName,
		RemainingCredits: outcome.RemainingCredits,
		Unlimited:        membership.IsUnlimited,
	}, nil
}

// Cancel attempts ACTIVE→CANCELLED. Cancelling at or before startTime minus
// the window refunds the credit; later cancellations forfeit it. Both
// succeed, with distinct outcomes, and surface the post-operation balance.
func (s *ReservationService) Cancel(ctx context.Context, in ports.CancelInput) (*ports.CancelResult, error) {
	if !domain.RoleAllows(in.Caller.Role, domain.ActionCancel) {
		return nil, domain.ErrForbidden
	}
	now := s.now().UTC()

	reservation, err := s.store.FindByID(ctx, in.ReservationID)
	if err != nil {
		return nil, err
	}
	if reservation.MemberID != in.Caller.MemberID && !domain.RoleAllows(in.Caller.Role, domain.ActionReserveOnBehalf) {
		return nil, domain.ErrNotOwner
	}
	if reservation.Status != domain.ReservationActive {
		return nil, domain.ErrReservationNotActive
	}

	class, err := s.classes.FindByID(ctx, reservation.ClassID)
	if err != nil {
		return nil, err
	}
	membership, err := s.memberships.FindByID(ctx, reservation.MembershipID)
	if err != nil {
		return nil, err
	}

	// Boundary inclusive: cancelling exactly at startTime-window still refunds.
	refund := class.StartTime.Sub(now) >= s.window

	outcome, err := s.store.Cancel(ctx, ports.CancelParams{
		ReservationID: reservation.ID,
		Refund:        refund,
		Unlimited:     membership.IsUnlimited,
		Now:           now,
	})
	if errors.Is(err, domain.ErrStoreConflict) {
		outcome, err = s.store.Cancel(ctx, ports.CancelParams{
			ReservationID: reservation.ID,
			Refund:        refund,
			Unlimited:     membership.IsUnlimited,
			Now:           now,
		})
	}
	if err != nil {
		return nil, err
	}

	result := &ports.CancelResult{
		Outcome:          domain.CancelForfeited,
		RemainingCredits: outcome.RemainingCredits,
		Unlimited:        membership.IsUnlimited,
	}
	if refund {
		result.Outcome = domain.CancelRefunded
	}

	s.log.Info().
		Str("reservation_id", reservation.ID).
		Str("outcome", string(result.Outcome)).
		Int("remaining_credits", result.RemainingCredits).
		Msg("reservation cancelled")
	return result, nil
}

// List returns the member's reservations with their derived states. Callers
// may always list their own; listing another member's requires ActionListAny.
func (s *ReservationService) List(ctx context.Context, memberID string, caller ports.Caller) ([]ports.ReservationView, error) {
	if memberID == "" {
		memberID = caller.MemberID
	}
	if memberID == caller.MemberID {
		if !domain.RoleAllows(caller.Role, domain.ActionListOwn) {
			return nil, domain.ErrForbidden
		}
	} else if !domain.RoleAllows(caller.Role, domain.ActionListAny) {
		return nil, domain.ErrForbidden
	}

	reservations, err := s.store.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	views := make([]ports.ReservationView, 0, len(reservations))
	for _, r := range reservations {
		view := ports.ReservationView{
			ReservationID: r.ID,
			ClassID:       r.ClassID,
			Attended:      r.Attended,
			CreatedAt:     r.CreatedAt,
			State:         r.Status,
		}
		if class, cerr := s.classes.FindByID(ctx, r.ClassID); cerr == nil {
			view.ClassName = class.Name
			view.StartTime = class.StartTime
			view.EndTime = class.EndTime
			view.State = r.EffectiveState(class.EndTime, now)
		}
		views = append(views, view)
	}
	return views, nil
}

// MarkAttended records attendance on behalf of the check-in authorizer.
func (s *ReservationService) MarkAttended(ctx context.Context, reservationID string) error {
	return s.store.MarkAttended(ctx, reservationID)
}
