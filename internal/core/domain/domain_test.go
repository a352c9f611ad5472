package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRoleAllows(t *testing.T) {
	cases := []struct {
		role   string
		action Action
		want   bool
	}{
		{RoleAdmin, ActionManageClasses, true},
		{RoleAdmin, ActionReserveOnBehalf, true},
		{RoleStaff, ActionReserveOnBehalf, true},
		{RoleStaff, ActionManageClasses, false},
		{RoleMonitor, ActionCheckIn, true},
		{RoleMonitor, ActionReserve, false},
		{RoleMonitor, ActionIssueToken, false},
		{RoleClient, ActionReserve, true},
		{RoleClient, ActionListOwn, true},
		{RoleClient, ActionListAny, false},
		{RoleClient, ActionCheckpointCode, false},
		{"", ActionReserve, false},
		{"UNKNOWN", ActionCheckIn, false},
	}
	for _, tc := range cases {
		if got := RoleAllows(tc.role, tc.action); got != tc.want {
			t.Errorf("RoleAllows(%q, %q) = %v, want %v", tc.role, tc.action, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleAdmin, RoleStaff, RoleMonitor, RoleClient} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	for _, r := range []string{"", "admin", "GUEST"} {
		if ValidRole(r) {
			t.Errorf("ValidRole(%q) = true", r)
		}
	}
}

func TestMembership_CanConsume(t *testing.T) {
	limited := &Membership{TotalCredits: 10, RemainingCredits: 1}
	if !limited.CanConsume() {
		t.Fatalf("one credit left should allow consumption")
	}
	limited.RemainingCredits = 0
	if limited.CanConsume() {
		t.Fatalf("zero credits must not allow consumption")
	}

	unlimited := &Membership{IsUnlimited: true, RemainingCredits: 0}
	if !unlimited.CanConsume() {
		t.Fatalf("unlimited membership must always allow consumption")
	}
}

func TestMembership_IsUsable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := &Membership{Status: MembershipActive, ExpirationDate: now.Add(24 * time.Hour)}
	if !m.IsUsable(now) {
		t.Fatalf("active unexpired membership should be usable")
	}
	m.ExpirationDate = now
	if m.IsUsable(now) {
		t.Fatalf("membership expiring exactly now is no longer usable")
	}
	m.ExpirationDate = now.Add(24 * time.Hour)
	m.Status = MembershipCancelled
	if m.IsUsable(now) {
		t.Fatalf("cancelled membership must not be usable")
	}
}

func TestReservation_EffectiveState(t *testing.T) {
	classEnd := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)

	cancelled := &Reservation{Status: ReservationCancelled}
	if got := cancelled.EffectiveState(classEnd, classEnd.Add(time.Hour)); got != ReservationCancelled {
		t.Fatalf("cancelled stays cancelled, got %s", got)
	}

	active := &Reservation{Status: ReservationActive}
	if got := active.EffectiveState(classEnd, classEnd.Add(-time.Minute)); got != ReservationActive {
		t.Fatalf("expected ACTIVE before class end, got %s", got)
	}
	if got := active.EffectiveState(classEnd, classEnd); got != ReservationNoShow {
		t.Fatalf("expected NO_SHOW at class end without attendance, got %s", got)
	}

	attended := &Reservation{Status: ReservationActive, Attended: true}
	if got := attended.EffectiveState(classEnd, classEnd.Add(time.Minute)); got != ReservationAttended {
		t.Fatalf("expected ATTENDED after class end, got %s", got)
	}
}

func TestFreeAccessConfig_WithinOpenHours(t *testing.T) {
	day := func(h, m int) time.Time {
		return time.Date(2025, 6, 1, h, m, 0, 0, time.UTC)
	}

	normal := &FreeAccessConfig{OpenTime: "06:00", CloseTime: "22:00"}
	if !normal.WithinOpenHours(day(6, 0)) {
		t.Fatalf("opening minute should be inside")
	}
	if normal.WithinOpenHours(day(22, 0)) {
		t.Fatalf("closing minute should be outside")
	}
	if normal.WithinOpenHours(day(5, 59)) {
		t.Fatalf("before opening should be outside")
	}

	overnight := &FreeAccessConfig{OpenTime: "22:00", CloseTime: "02:00"}
	if !overnight.WithinOpenHours(day(23, 30)) {
		t.Fatalf("late evening should be inside an overnight window")
	}
	if !overnight.WithinOpenHours(day(1, 30)) {
		t.Fatalf("early morning should be inside an overnight window")
	}
	if overnight.WithinOpenHours(day(12, 0)) {
		t.Fatalf("midday should be outside an overnight window")
	}

	broken := &FreeAccessConfig{OpenTime: "bad", CloseTime: "22:00"}
	if broken.WithinOpenHours(day(12, 0)) {
		t.Fatalf("unparseable window must deny")
	}
}

func TestClass_Guards(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := &Class{StartTime: start, EndTime: start.Add(time.Hour), Capacity: 2, Booked: 1}

	if c.HasStarted(start.Add(-time.Second)) {
		t.Fatalf("not started before start time")
	}
	if !c.HasStarted(start) {
		t.Fatalf("started exactly at start time")
	}
	if !c.RunningAt(start.Add(30 * time.Minute)) {
		t.Fatalf("running mid-class")
	}
	if c.RunningAt(start.Add(time.Hour)) {
		t.Fatalf("not running at end time")
	}
	if !c.HasOpenSlot() {
		t.Fatalf("one of two slots booked should leave an open slot")
	}
	c.Booked = 2
	if c.HasOpenSlot() {
		t.Fatalf("full class has no open slot")
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{ErrClassNotFound, KindNotFound},
		{ErrClassFull, KindConflict},
		{ErrStoreConflict, KindConflict},
		{ErrNotOwner, KindAuthorization},
		{ErrInsufficientCredits, KindBusinessRule},
		{ErrTokenExpired, KindBusinessRule},
		{ErrTokenMalformed, KindValidation},
		{ErrInvalidInput, KindValidation},
		{errors.New("boom"), KindInternal},
		// Wrapped errors classify the same as their sentinel.
		{fmt.Errorf("context: %w", ErrClassFull), KindConflict},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
