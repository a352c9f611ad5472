package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/ports"
)

// fixture is the shared in-memory world backing the stub repositories. The
// store stub mirrors the real store's contract: capacity, duplicates, and
// credits are re-checked at commit time and mutated together.
type fixture struct {
	classes      map[string]*domain.Class
	disciplines  map[string]*domain.Discipline
	memberships  map[string]*domain.Membership
	reservations map[string]*domain.Reservation
	nextID       int

	// failures injects ErrStoreConflict into the next N commits.
	failures int
}

func newFixture() *fixture {
	return &fixture{
		classes:      map[string]*domain.Class{},
		disciplines:  map[string]*domain.Discipline{},
		memberships:  map[string]*domain.Membership{},
		reservations: map[string]*domain.Reservation{},
	}
}

type stubClassRepo struct{ f *fixture }

func (r *stubClassRepo) FindByID(_ context.Context, id string) (*domain.Class, error) {
	c, ok := r.f.classes[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	return c, nil
}
func (r *stubClassRepo) Create(_ context.Context, c *domain.Class) error {
	r.f.classes[c.ID] = c
	return nil
}
func (r *stubClassRepo) List(_ context.Context, disciplineID string, _ time.Time) ([]*domain.Class, error) {
	var out []*domain.Class
	for _, c := range r.f.classes {
		if disciplineID == "" || c.DisciplineID == disciplineID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *stubClassRepo) Delete(_ context.Context, id string) error {
	delete(r.f.classes, id)
	return nil
}
func (r *stubClassRepo) CountFutureByDiscipline(_ context.Context, disciplineID string, after time.Time) (int64, error) {
	var n int64
	for _, c := range r.f.classes {
		if c.DisciplineID == disciplineID && c.StartTime.After(after) {
			n++
		}
	}
	return n, nil
}

type stubDisciplineRepo struct{ f *fixture }

func (r *stubDisciplineRepo) FindByID(_ context.Context, id string) (*domain.Discipline, error) {
	d, ok := r.f.disciplines[id]
	if !ok {
		return nil, domain.ErrDisciplineNotFound
	}
	return d, nil
}
func (r *stubDisciplineRepo) Create(_ context.Context, d *domain.Discipline) error {
	r.f.disciplines[d.ID] = d
	return nil
}
func (r *stubDisciplineRepo) List(_ context.Context) ([]*domain.Discipline, error) {
	var out []*domain.Discipline
	for _, d := range r.f.disciplines {
		out = append(out, d)
	}
	return out, nil
}
func (r *stubDisciplineRepo) Delete(_ context.Context, id string) error {
	delete(r.f.disciplines, id)
	return nil
}

type stubMembershipRepo struct{ f *fixture }

func (r *stubMembershipRepo) FindByID(_ context.Context, id string) (*domain.Membership, error) {
	m, ok := r.f.memberships[id]
	if !ok {
		return nil, domain.ErrMembershipNotFound
	}
	return m, nil
}
func (r *stubMembershipRepo) FindUsable(_ context.Context, memberID, disciplineID string, now time.Time) (*domain.Membership, error) {
	for _, m := range r.f.memberships {
		if m.MemberID == memberID && m.DisciplineID == disciplineID && m.IsUsable(now) {
			return m, nil
		}
	}
	return nil, domain.ErrNoActiveMembership
}
func (r *stubMembershipRepo) FindUsableAny(_ context.Context, memberID string, now time.Time) (*domain.Membership, error) {
	for _, m := range r.f.memberships {
		if m.MemberID == memberID && m.IsUsable(now) {
			return m, nil
		}
	}
	return nil, domain.ErrNoActiveMembership
}
func (r *stubMembershipRepo) CountActiveByDiscipline(_ context.Context, disciplineID string) (int64, error) {
	var n int64
	for _, m := range r.f.memberships {
		if m.DisciplineID == disciplineID && m.Status == domain.MembershipActive {
			n++
		}
	}
	return n, nil
}

type stubStore struct{ f *fixture }

func (s *stubStore) Reserve(_ context.Context, p ports.ReserveParams) (*ports.ReserveOutcome, error) {
	if s.f.failures > 0 {
		s.f.failures--
		return nil, domain.ErrStoreConflict
	}

	class := s.f.classes[p.ClassID]
	if class.Booked >= class.Capacity {
		return nil, domain.ErrClassFull
	}

	var row *domain.Reservation
	for _, r := range s.f.reservations {
		if r.MemberID == p.MemberID && r.ClassID == p.ClassID {
			if r.Status == domain.ReservationActive {
				return nil, domain.ErrDuplicateReservation
			}
			row = r
			break
		}
	}

	membership := s.f.memberships[p.MembershipID]
	remaining := membership.RemainingCredits
	if !p.Unlimited {
		if membership.RemainingCredits <= 0 {
			return nil, domain.ErrInsufficientCredits
		}
		membership.RemainingCredits--
		remaining = membership.RemainingCredits
	}

	class.Booked++
	if row != nil {
		row.Status = domain.ReservationActive
		row.MembershipID = p.MembershipID
		row.Attended = false
		row.CancelledAt = nil
	} else {
		s.f.nextID++
		row = &domain.Reservation{
			ID:           fmt.Sprintf("res-%d", s.f.nextID),
			MemberID:     p.MemberID,
			ClassID:      p.ClassID,
			MembershipID: p.MembershipID,
			Status:       domain.ReservationActive,
			CreatedAt:    p.Now,
		}
		s.f.reservations[row.ID] = row
	}
	return &ports.ReserveOutcome{Reservation: row, RemainingCredits: remaining}, nil
}

func (s *stubStore) Cancel(_ context.Context, p ports.CancelParams) (*ports.CancelOutcome, error) {
	if s.f.failures > 0 {
		s.f.failures--
		return nil, domain.ErrStoreConflict
	}

	row, ok := s.f.reservations[p.ReservationID]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	if row.Status != domain.ReservationActive {
		return nil, domain.ErrReservationNotActive
	}

	row.Status = domain.ReservationCancelled
	at := p.Now
	row.CancelledAt = &at
	if class := s.f.classes[row.ClassID]; class.Booked > 0 {
		class.Booked--
	}

	membership := s.f.memberships[row.MembershipID]
	if p.Refund && !p.Unlimited && membership.RemainingCredits < membership.TotalCredits {
		membership.RemainingCredits++
	}
	return &ports.CancelOutcome{RemainingCredits: membership.RemainingCredits}, nil
}

func (s *stubStore) MarkAttended(_ context.Context, id string) error {
	row, ok := s.f.reservations[id]
	if !ok {
		return domain.ErrReservationNotFound
	}
	row.Attended = true
	return nil
}

func (s *stubStore) FindByID(_ context.Context, id string) (*domain.Reservation, error) {
	row, ok := s.f.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return row, nil
}

func (s *stubStore) FindActiveForMember(_ context.Context, memberID, classID string) (*domain.Reservation, error) {
	for _, r := range s.f.reservations {
		if r.MemberID == memberID && r.ClassID == classID && r.Status == domain.ReservationActive {
			return r, nil
		}
	}
	return nil, domain.ErrReservationNotFound
}

func (s *stubStore) ListByMember(_ context.Context, memberID string) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range s.f.reservations {
		if r.MemberID == memberID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStore) CountActiveByClass(_ context.Context, classID string) (int64, error) {
	var n int64
	for _, r := range s.f.reservations {
		if r.ClassID == classID && r.Status == domain.ReservationActive {
			n++
		}
	}
	return n, nil
}

// --- Test scaffolding ---

var testNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestService(f *fixture) *ReservationService {
	return NewReservationService(
		&stubStore{f: f},
		&stubClassRepo{f: f},
		&stubDisciplineRepo{f: f},
		&stubMembershipRepo{f: f},
		3*time.Hour,
		zerolog.Nop(),
	).WithClock(func() time.Time { return testNow })
}

func seedWorld(f *fixture) {
	f.disciplines["yoga"] = &domain.Discipline{ID: "yoga", Name: "Yoga", RequiresReservation: true, IsActive: true}
	f.classes["class-1"] = &domain.Class{
		ID:           "class-1",
		DisciplineID: "yoga",
		Name:         "Morning Yoga",
		StartTime:    testNow.Add(4 * time.Hour),
		EndTime:      testNow.Add(5 * time.Hour),
		Capacity:     2,
		IsActive:     true,
	}
	f.memberships["ms-1"] = &domain.Membership{
		ID:               "ms-1",
		MemberID:         "alice",
		DisciplineID:     "yoga",
		TotalCredits:     10,
		RemainingCredits: 10,
		Status:           domain.MembershipActive,
		ExpirationDate:   testNow.Add(30 * 24 * time.Hour),
	}
}

func asClient(memberID string) ports.Caller {
	return ports.Caller{MemberID: memberID, Role: domain.RoleClient}
}

func TestReserve_DebitsOneCredit(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	result, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if result.RemainingCredits != 9 {
		t.Fatalf("expected 9 remaining, got %d", result.RemainingCredits)
	}
	if result.DisciplineName != "Yoga" {
		t.Fatalf("expected discipline name, got %q", result.DisciplineName)
	}
	if f.classes["class-1"].Booked != 1 {
		t.Fatalf("expected booked=1, got %d", f.classes["class-1"].Booked)
	}
}

func TestReserve_UnlimitedSkipsDebit(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	f.memberships["ms-1"].IsUnlimited = true
	f.memberships["ms-1"].RemainingCredits = 0
	svc := newTestService(f)

	result, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if !result.Unlimited {
		t.Fatalf("expected unlimited result")
	}
	if f.memberships["ms-1"].RemainingCredits != 0 {
		t.Fatalf("unlimited membership balance must not change")
	}
}

func TestReserve_InsufficientCredits(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	f.memberships["ms-1"].RemainingCredits = 0
	svc := newTestService(f)

	_, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if f.classes["class-1"].Booked != 0 {
		t.Fatalf("failed reserve must not take a seat")
	}
}

func TestReserve_ClassFull(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	f.classes["class-1"].Booked = 2
	svc := newTestService(f)

	_, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if !errors.Is(err, domain.ErrClassFull) {
		t.Fatalf("expected ErrClassFull, got %v", err)
	}
	if f.memberships["ms-1"].RemainingCredits != 10 {
		t.Fatalf("full class must not debit a credit")
	}
}

func TestReserve_Duplicate(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	if _, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	}); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	_, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if !errors.Is(err, domain.ErrDuplicateReservation) {
		t.Fatalf("expected ErrDuplicateReservation, got %v", err)
	}
	if f.memberships["ms-1"].RemainingCredits != 9 {
		t.Fatalf("duplicate must not debit a second credit, got %d", f.memberships["ms-1"].RemainingCredits)
	}
}

func TestReserve_ClassStarted(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	f.classes["class-1"].StartTime = testNow.Add(-time.Minute)
	svc := newTestService(f)

	_, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if !errors.Is(err, domain.ErrClassStarted) {
		t.Fatalf("expected ErrClassStarted, got %v", err)
	}
}

func TestReserve_NoMembership(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	_, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("bob"),
	})
	if !errors.Is(err, domain.ErrNoActiveMembership) {
		t.Fatalf("expected ErrNoActiveMembership, got %v", err)
	}
}

func TestReserve_ExpiredMembership(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	f.memberships["ms-1"].ExpirationDate = testNow.Add(-time.Hour)
	svc := newTestService(f)

	_, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if !errors.Is(err, domain.ErrNoActiveMembership) {
		t.Fatalf("expected ErrNoActiveMembership, got %v", err)
	}
}

func TestReserve_RoleGuards(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	// Monitors cannot reserve at all.
	_, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1",
		Caller:  ports.Caller{MemberID: "m1", Role: domain.RoleMonitor},
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for monitor, got %v", err)
	}

	// Clients cannot reserve for someone else.
	_, err = svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", MemberID: "alice", Caller: asClient("bob"),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for on-behalf client, got %v", err)
	}

	// Staff can.
	result, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", MemberID: "alice",
		Caller: ports.Caller{MemberID: "staff-1", Role: domain.RoleStaff},
	})
	if err != nil {
		t.Fatalf("staff on-behalf reserve: %v", err)
	}
	if f.reservations[result.ReservationID].MemberID != "alice" {
		t.Fatalf("reservation must belong to the target member")
	}
}

func TestReserve_RetriesOnceOnConflict(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	f.failures = 1
	if _, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	}); err != nil {
		t.Fatalf("one conflict should be retried: %v", err)
	}

	// Two consecutive conflicts exhaust the single retry.
	f.failures = 2
	_, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if !errors.Is(err, domain.ErrStoreConflict) {
		t.Fatalf("expected ErrStoreConflict after exhausted retry, got %v", err)
	}
}

func TestCancel_RefundBoundary(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	// Exactly 3 hours of notice refunds.
	f.classes["class-1"].StartTime = testNow.Add(3 * time.Hour)
	result, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	cancel, err := svc.Cancel(context.Background(), ports.CancelInput{
		ReservationID: result.ReservationID, Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancel.Outcome != domain.CancelRefunded {
		t.Fatalf("expected refund at exactly the window, got %s", cancel.Outcome)
	}
	if cancel.RemainingCredits != 10 {
		t.Fatalf("expected balance restored to 10, got %d", cancel.RemainingCredits)
	}

	// One minute less notice forfeits.
	f.classes["class-1"].StartTime = testNow.Add(3*time.Hour - time.Minute)
	result, err = svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("re-reserve: %v", err)
	}
	cancel, err = svc.Cancel(context.Background(), ports.CancelInput{
		ReservationID: result.ReservationID, Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancel.Outcome != domain.CancelForfeited {
		t.Fatalf("expected forfeit inside the window, got %s", cancel.Outcome)
	}
	if cancel.RemainingCredits != 9 {
		t.Fatalf("forfeited credit must stay consumed, got %d", cancel.RemainingCredits)
	}
}

func TestCancel_OwnershipAndState(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	result, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	// Another client cannot cancel it.
	_, err = svc.Cancel(context.Background(), ports.CancelInput{
		ReservationID: result.ReservationID, Caller: asClient("bob"),
	})
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	// Staff can.
	if _, err := svc.Cancel(context.Background(), ports.CancelInput{
		ReservationID: result.ReservationID,
		Caller:        ports.Caller{MemberID: "staff-1", Role: domain.RoleStaff},
	}); err != nil {
		t.Fatalf("staff cancel: %v", err)
	}

	// Cancelling again fails: the row is no longer active.
	_, err = svc.Cancel(context.Background(), ports.CancelInput{
		ReservationID: result.ReservationID, Caller: asClient("alice"),
	})
	if !errors.Is(err, domain.ErrReservationNotActive) {
		t.Fatalf("expected ErrReservationNotActive, got %v", err)
	}
}

func TestCancel_UnknownReservation(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	_, err := svc.Cancel(context.Background(), ports.CancelInput{
		ReservationID: "nope", Caller: asClient("alice"),
	})
	if !errors.Is(err, domain.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestReserve_ReusesCancelledRow(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	first, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := svc.Cancel(context.Background(), ports.CancelInput{
		ReservationID: first.ReservationID, Caller: asClient("alice"),
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	second, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("re-reserve: %v", err)
	}
	if second.ReservationID != first.ReservationID {
		t.Fatalf("re-reserve must reuse the row: %q vs %q", second.ReservationID, first.ReservationID)
	}
	if len(f.reservations) != 1 {
		t.Fatalf("expected a single row, got %d", len(f.reservations))
	}
	// The cycle cost one fresh debit: 10 → 9 → 10 (refund) → 9.
	if f.memberships["ms-1"].RemainingCredits != 9 {
		t.Fatalf("expected 9 after reserve-cancel-reserve, got %d", f.memberships["ms-1"].RemainingCredits)
	}
}

// Credit conservation: with one credit left, every path either keeps the
// credit or converts it into exactly one active reservation. Cancelling and
// re-reserving can never mint credits.
func TestCreditConservation(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	f.memberships["ms-1"].RemainingCredits = 1
	svc := newTestService(f)

	reserve := func() (*ports.ReserveResult, error) {
		return svc.Reserve(context.Background(), ports.ReserveInput{
			ClassID: "class-1", Caller: asClient("alice"),
		})
	}

	first, err := reserve()
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if first.RemainingCredits != 0 {
		t.Fatalf("expected 0 after debit, got %d", first.RemainingCredits)
	}

	// Late cancellation forfeits the credit.
	f.classes["class-1"].StartTime = testNow.Add(time.Hour)
	cancel, err := svc.Cancel(context.Background(), ports.CancelInput{
		ReservationID: first.ReservationID, Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancel.Outcome != domain.CancelForfeited || cancel.RemainingCredits != 0 {
		t.Fatalf("late cancel must forfeit: %s / %d", cancel.Outcome, cancel.RemainingCredits)
	}

	// With zero credits, re-reserving is refused even though the row exists.
	f.classes["class-1"].StartTime = testNow.Add(4 * time.Hour)
	if _, err := reserve(); !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if f.memberships["ms-1"].RemainingCredits != 0 {
		t.Fatalf("balance must stay 0, got %d", f.memberships["ms-1"].RemainingCredits)
	}
	if f.classes["class-1"].Booked != 0 {
		t.Fatalf("no seat may be held, got %d", f.classes["class-1"].Booked)
	}
}

func TestList_StatesAndPermissions(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	result, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := svc.MarkAttended(context.Background(), result.ReservationID); err != nil {
		t.Fatalf("mark attended: %v", err)
	}

	// Before the class ends the state stays ACTIVE.
	views, err := svc.List(context.Background(), "", asClient("alice"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || views[0].State != domain.ReservationActive {
		t.Fatalf("expected one ACTIVE view, got %+v", views)
	}

	// After the class ends the attended flag projects ATTENDED.
	f.classes["class-1"].EndTime = testNow.Add(-time.Minute)
	views, err = svc.List(context.Background(), "alice", asClient("alice"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if views[0].State != domain.ReservationAttended {
		t.Fatalf("expected ATTENDED, got %s", views[0].State)
	}

	// A client cannot list another member's reservations; staff can.
	if _, err := svc.List(context.Background(), "alice", asClient("bob")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.List(context.Background(), "alice", ports.Caller{MemberID: "s1", Role: domain.RoleStaff}); err != nil {
		t.Fatalf("staff list: %v", err)
	}
}

func TestList_NoShowProjection(t *testing.T) {
	f := newFixture()
	seedWorld(f)
	svc := newTestService(f)

	if _, err := svc.Reserve(context.Background(), ports.ReserveInput{
		ClassID: "class-1", Caller: asClient("alice"),
	}); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	f.classes["class-1"].EndTime = testNow.Add(-time.Minute)
	views, err := svc.List(context.Background(), "", asClient("alice"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if views[0].State != domain.ReservationNoShow {
		t.Fatalf("unattended finished class must project NO_SHOW, got %s", views[0].State)
	}
	// The stored row is untouched: the projection is query-time only.
	for _, r := range f.reservations {
		if r.Status != domain.ReservationActive {
			t.Fatalf("stored status must remain ACTIVE, got %s", r.Status)
		}
	}
}
