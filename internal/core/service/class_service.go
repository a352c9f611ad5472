package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/ports"
)

// ClassService handles class and discipline administration. Deletion guards
// protect reservation history: a class with ACTIVE reservations and a
// discipline with active memberships or future classes cannot be removed.
type ClassService struct {
	classes      ports.ClassRepository
	disciplines  ports.DisciplineRepository
	memberships  ports.MembershipRepository
	reservations ports.ReservationStore
	now          func() time.Time
	log          zerolog.Logger
}

func NewClassService(
	classes ports.ClassRepository,
	disciplines ports.DisciplineRepository,
	memberships ports.MembershipRepository,
	reservations ports.ReservationStore,
	log zerolog.Logger,
) *ClassService {
	return &ClassService{
		classes:      classes,
		disciplines:  disciplines,
		memberships:  memberships,
		reservations: reservations,
		now:          time.Now,
		log:          log,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *ClassService) WithClock(now func() time.Time) *ClassService {
	s.now = now
	return s
}

func (s *ClassService) CreateClass(ctx context.Context, in ports.CreateClassInput) (*domain.Class, error) {
	if !domain.RoleAllows(in.Caller.Role, domain.ActionManageClasses) {
		return nil, domain.ErrForbidden
	}
	if in.Capacity <= 0 || !in.EndTime.After(in.StartTime) {
		return nil, fmt.Errorf("%w: capacity must be positive and end after start", domain.ErrInvalidInput)
	}
	if _, err := s.disciplines.FindByID(ctx, in.DisciplineID); err != nil {
		return nil, err
	}

	class := &domain.Class{
		DisciplineID: in.DisciplineID,
		Name:         in.Name,
		StartTime:    in.StartTime.UTC(),
		EndTime:      in.EndTime.UTC(),
		Capacity:     in.Capacity,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}
	s.log.Info().Str("class_id", class.ID).Str("discipline_id", class.DisciplineID).
		Int("capacity", class.Capacity).Msg("class scheduled")
	return class, nil
}

func (s *ClassService) ListClasses(ctx context.Context, disciplineID string) ([]*domain.Class, error) {
	return s.classes.List(ctx, disciplineID, s.now().UTC())
}

// DeleteClass removes a class unless it still holds ACTIVE reservations; the
// refusal reports how many reservations block it.
func (s *ClassService) DeleteClass(ctx context.Context, classID string, caller ports.Caller) error {
	if !domain.RoleAllows(caller.Role, domain.ActionManageClasses) {
		return domain.ErrForbidden
	}
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		return err
	}

	blocking, err := s.reservations.CountActiveByClass(ctx, classID)
	if err != nil {
		return err
	}
	if blocking > 0 {
		return fmt.Errorf("%w: %d active reservation(s)", domain.ErrClassHasReservations, blocking)
	}
	return s.classes.Delete(ctx, classID)
}

// DeleteDiscipline removes a discipline unless active memberships or future
// classes still reference it.
func (s *ClassService) DeleteDiscipline(ctx context.Context, disciplineID string, caller ports.Caller) error {
	if !domain.RoleAllows(caller.Role, domain.ActionManageClasses) {
		return domain.ErrForbidden
	}
	if _, err := s.disciplines.FindByID(ctx, disciplineID); err != nil {
		return err
	}

	memberships, err := s.memberships.CountActiveByDiscipline(ctx, disciplineID)
	if err != nil {
		return err
	}
	classes, err := s.classes.CountFutureByDiscipline(ctx, disciplineID, s.now().UTC())
	if err != nil {
		return err
	}
	if memberships > 0 || classes > 0 {
		return fmt.Errorf("%w: %d membership(s), %d future class(es)", domain.ErrDisciplineInUse, memberships, classes)
	}
	return s.disciplines.Delete(ctx, disciplineID)
}
