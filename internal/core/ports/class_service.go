package ports

import (
	"context"
	"time"

	"github.com/fitpass/gym-system/internal/core/domain"
)

// CreateClassInput carries the data for scheduling a new class.
type CreateClassInput struct {
	DisciplineID string
	Name         string
	StartTime    time.Time
	EndTime      time.Time
	Capacity     int
	Caller       Caller
}

// ClassService covers class and discipline administration, including the
// deletion guards that protect reservation history.
type ClassService interface {
	CreateClass(ctx context.Context, in CreateClassInput) (*domain.Class, error)
	ListClasses(ctx context.Context, disciplineID string) ([]*domain.Class, error)
	// DeleteClass refuses with domain.ErrClassHasReservations while the class
	// holds any ACTIVE reservation.
	DeleteClass(ctx context.Context, classID string, caller Caller) error
	// DeleteDiscipline refuses with domain.ErrDisciplineInUse while active
	// memberships or future classes reference the discipline.
	DeleteDiscipline(ctx context.Context, disciplineID string, caller Caller) error
}
