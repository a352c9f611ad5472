package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/ports"
	"github.com/fitpass/gym-system/internal/core/token"
)

// OccupancyChecker abstracts the concurrent-occupancy store (Redis) for
// free-access areas.
type OccupancyChecker interface {
	// Enter registers one entry and reports whether the area stayed within
	// the cap (0 = uncapped). On a refused entry the count is not changed.
	Enter(ctx context.Context, disciplineID string, limit int) (bool, error)
}

// ScanDedup abstracts the replay-suppression store for device scan uploads.
type ScanDedup interface {
	IsDuplicate(ctx context.Context, memberID, site string, ts time.Time) (bool, error)
	Mark(ctx context.Context, memberID, site string, ts time.Time) error
}

// CheckinService decides grant/deny for entry attempts and appends the
// access log. It never writes reservation or credit state directly: granted
// reservation check-ins record attendance through the reservation service.
type CheckinService struct {
	codec        *token.Codec
	checkpoints  *token.CheckpointCodec
	members      ports.MemberRepository
	memberships  ports.MembershipRepository
	disciplines  ports.DisciplineRepository
	classes      ports.ClassRepository
	reservations ports.ReservationService
	store        ports.ReservationStore
	access       ports.AccessRepository
	occupancy    OccupancyChecker
	dedup        ScanDedup
	now          func() time.Time
	log          zerolog.Logger
}

// NewCheckinService wires the check-in authorizer.
func NewCheckinService(
	codec *token.Codec,
	checkpoints *token.CheckpointCodec,
	members ports.MemberRepository,
	memberships ports.MembershipRepository,
	disciplines ports.DisciplineRepository,
	classes ports.ClassRepository,
	reservations ports.ReservationService,
	store ports.ReservationStore,
	access ports.AccessRepository,
	occupancy OccupancyChecker,
	dedup ScanDedup,
	log zerolog.Logger,
) *CheckinService {
	return &CheckinService{
		codec:        codec,
		checkpoints:  checkpoints,
		members:      members,
		memberships:  memberships,
		disciplines:  disciplines,
		classes:      classes,
		reservations: reservations,
		store:        store,
		access:       access,
		occupancy:    occupancy,
		dedup:        dedup,
		now:          time.Now,
		log:          log,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *CheckinService) WithClock(now func() time.Time) *CheckinService {
	s.now = now
	return s
}

// CheckIn runs the full authorization algorithm for one entry attempt.
//
// A structurally invalid token, or one whose subject does not resolve to a
// real member, is denied without an access entry. Every other decision,
// grant or deny, is appended to the log.
func (s *CheckinService) CheckIn(ctx context.Context, in ports.CheckinInput) (*ports.CheckinResult, error) {
	now := s.now().UTC()

	member, denyReason, err := s.resolveSubject(ctx, in)
	if err != nil {
		// Subject unknown: no audit entry can name a member.
		return &ports.CheckinResult{Granted: false, Reason: err.Error(), Logged: false}, nil
	}

	if denyReason == "" && in.CheckpointCode != "" {
		if _, cpErr := s.checkpoints.Validate(in.CheckpointCode); cpErr != nil {
			denyReason = "checkpoint code: " + cpErr.Error()
		}
	}

	if denyReason != "" {
		return s.deny(ctx, member, "", in.Type, denyReason, now), nil
	}

	discipline, reason := s.resolveDiscipline(ctx, member.ID, in.DisciplineID, now)
	if reason != "" {
		return s.deny(ctx, member, "", in.Type, reason, now), nil
	}

	if discipline.RequiresReservation {
		reservation, found := s.runningReservation(ctx, member.ID, discipline.ID, now)
		if !found {
			return s.deny(ctx, member, discipline.Name, in.Type, domain.ErrNoRunningClass.Error(), now), nil
		}
		if err := s.reservations.MarkAttended(ctx, reservation.ID); err != nil {
			return nil, err
		}
	} else {
		free := discipline.FreeAccess
		if free == nil || !free.WithinOpenHours(now) {
			return s.deny(ctx, member, discipline.Name, in.Type, domain.ErrOutsideOpenHours.Error(), now), nil
		}
		if free.Capacity > 0 {
			ok, occErr := s.occupancy.Enter(ctx, discipline.ID, free.Capacity)
			if occErr != nil {
				return nil, occErr
			}
			if !ok {
				return s.deny(ctx, member, discipline.Name, in.Type, domain.ErrAreaAtCapacity.Error(), now), nil
			}
		}
	}

	s.append(ctx, &domain.AccessEntry{
		MemberID:   member.ID,
		Discipline: discipline.Name,
		Type:       in.Type,
		Granted:    true,
		Timestamp:  now,
	})
	s.log.Info().Str("member_id", member.ID).Str("discipline", discipline.Name).
		Str("type", string(in.Type)).Msg("access granted")

	return &ports.CheckinResult{
		Granted:    true,
		MemberID:   member.ID,
		Discipline: discipline.Name,
		Logged:     true,
	}, nil
}

// Process consumes one device-uploaded scan: suppresses replays, then runs
// the normal check-in decision.
func (s *CheckinService) Process(ctx context.Context, event ports.ScanEvent) error {
	subject := event.MemberID
	if subject == "" && event.Token != "" {
		// Best-effort identity for the dedup key; validation happens in CheckIn.
		subject, _ = s.codec.Validate(event.Token)
	}
	if subject != "" {
		isDup, err := s.dedup.IsDuplicate(ctx, subject, event.Site, event.Timestamp)
		if err != nil {
			s.log.Warn().Err(err).Str("member_id", subject).Msg("scan dedup check failed, processing anyway")
		} else if isDup {
			s.log.Debug().Str("member_id", subject).Str("site", event.Site).Msg("duplicate scan skipped")
			return nil
		}
		if err := s.dedup.Mark(ctx, subject, event.Site, event.Timestamp); err != nil {
			s.log.Warn().Err(err).Str("member_id", subject).Msg("failed to set scan dedup key")
		}
	}

	_, err := s.CheckIn(ctx, ports.CheckinInput{
		Token:    event.Token,
		MemberID: event.MemberID,
		Type:     event.Type,
	})
	return err
}

// resolveSubject identifies the member behind the attempt. The returned
// denyReason is non-empty when the member is real but the presented token
// was expired: such attempts are denied yet still audited.
func (s *CheckinService) resolveSubject(ctx context.Context, in ports.CheckinInput) (*domain.Member, string, error) {
	if in.Token != "" {
		subjectID, vErr := s.codec.Validate(in.Token)
		switch {
		case vErr == nil:
		case errors.Is(vErr, domain.ErrTokenExpired) && subjectID != "":
			member, mErr := s.members.FindByID(ctx, subjectID)
			if mErr != nil {
				return nil, "", domain.ErrTokenExpired
			}
			return member, vErr.Error(), nil
		default:
			return nil, "", vErr
		}
		member, mErr := s.members.FindByID(ctx, subjectID)
		if mErr != nil {
			return nil, "", domain.ErrMemberNotFound
		}
		return member, "", nil
	}

	if in.MemberID == "" {
		return nil, "", domain.ErrMemberNotFound
	}
	member, err := s.members.FindByID(ctx, in.MemberID)
	if err != nil {
		return nil, "", domain.ErrMemberNotFound
	}
	return member, "", nil
}

// resolveDiscipline picks the discipline to authorize against: the named
// one, or the discipline of the member's usable membership.
func (s *CheckinService) resolveDiscipline(ctx context.Context, memberID, disciplineID string, now time.Time) (*domain.Discipline, string) {
	if disciplineID == "" {
		membership, err := s.memberships.FindUsableAny(ctx, memberID, now)
		if err != nil {
			return nil, domain.ErrNoActiveMembership.Error()
		}
		disciplineID = membership.DisciplineID
	} else if _, err := s.memberships.FindUsable(ctx, memberID, disciplineID, now); err != nil {
		return nil, domain.ErrNoActiveMembership.Error()
	}

	discipline, err := s.disciplines.FindByID(ctx, disciplineID)
	if err != nil || !discipline.IsActive {
		return nil, domain.ErrDisciplineNotFound.Error()
	}
	return discipline, ""
}

// runningReservation finds the member's ACTIVE reservation for a class of
// the discipline that is in progress right now.
func (s *CheckinService) runningReservation(ctx context.Context, memberID, disciplineID string, now time.Time) (*domain.Reservation, bool) {
	reservations, err := s.store.ListByMember(ctx, memberID)
	if err != nil {
		return nil, false
	}
	for _, r := range reservations {
		if r.Status != domain.ReservationActive {
			continue
		}
		class, cerr := s.classes.FindByID(ctx, r.ClassID)
		if cerr != nil {
			continue
		}
		if class.DisciplineID == disciplineID && class.RunningAt(now) {
			return r, true
		}
	}
	return nil, false
}

func (s *CheckinService) deny(ctx context.Context, member *domain.Member, discipline string, accessType domain.AccessType, reason string, now time.Time) *ports.CheckinResult {
	s.append(ctx, &domain.AccessEntry{
		MemberID:   member.ID,
		Discipline: discipline,
		Type:       accessType,
		Granted:    false,
		Reason:     reason,
		Timestamp:  now,
	})
	s.log.Info().Str("member_id", member.ID).Str("reason", reason).Msg("access denied")
	return &ports.CheckinResult{
		Granted:  false,
		MemberID: member.ID,
		Reason:   reason,
		Logged:   true,
	}
}

// append writes an access entry; failures are logged, never surfaced, so a
// flaky audit store cannot turn a made decision into an error.
func (s *CheckinService) append(ctx context.Context, entry *domain.AccessEntry) {
	if err := s.access.Append(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("member_id", entry.MemberID).Msg("failed to append access entry")
	}
}
