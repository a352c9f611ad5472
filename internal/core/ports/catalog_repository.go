package ports

import (
	"context"
	"time"

	"github.com/fitpass/gym-system/internal/core/domain"
)

// ClassRepository handles class persistence outside the reservation
// transaction (lookup and administration).
type ClassRepository interface {
	FindByID(ctx context.Context, classID string) (*domain.Class, error)
	Create(ctx context.Context, class *domain.Class) error
	List(ctx context.Context, disciplineID string, from time.Time) ([]*domain.Class, error)
	Delete(ctx context.Context, classID string) error
	// CountFutureByDiscipline counts classes of a discipline starting after
	// the given instant. Used by the discipline-deletion guard.
	CountFutureByDiscipline(ctx context.Context, disciplineID string, after time.Time) (int64, error)
}

// DisciplineRepository handles discipline persistence.
type DisciplineRepository interface {
	FindByID(ctx context.Context, disciplineID string) (*domain.Discipline, error)
	Create(ctx context.Context, d *domain.Discipline) error
	List(ctx context.Context) ([]*domain.Discipline, error)
	Delete(ctx context.Context, disciplineID string) error
}

// MembershipRepository reads memberships. Credit balances are mutated only
// inside the reservation store's transactions, never through this interface.
type MembershipRepository interface {
	FindByID(ctx context.Context, membershipID string) (*domain.Membership, error)
	// FindUsable returns the member's ACTIVE, non-expired membership for the
	// discipline, or domain.ErrNoActiveMembership.
	FindUsable(ctx context.Context, memberID, disciplineID string, now time.Time) (*domain.Membership, error)
	// FindUsableAny returns any usable membership for the member (used by
	// manual check-in when no discipline is named).
	FindUsableAny(ctx context.Context, memberID string, now time.Time) (*domain.Membership, error)
	// CountActiveByDiscipline counts ACTIVE memberships referencing a
	// discipline. Used by the discipline-deletion guard.
	CountActiveByDiscipline(ctx context.Context, disciplineID string) (int64, error)
}

// MemberRepository handles member identity persistence.
type MemberRepository interface {
	FindByID(ctx context.Context, memberID string) (*domain.Member, error)
	FindByEmail(ctx context.Context, email string) (*domain.Member, error)
	Create(ctx context.Context, m *domain.Member) (*domain.Member, error)
}

// AccessRepository appends to the access log. Entries are append-only;
// there is no update or delete.
type AccessRepository interface {
	Append(ctx context.Context, entry *domain.AccessEntry) error
	ListByMember(ctx context.Context, memberID string, limit int) ([]*domain.AccessEntry, error)
}
