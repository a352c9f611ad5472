package domain

import "time"

// FreeAccessConfig describes a discipline usable without a per-class
// reservation: entry is gated only by open hours and an optional concurrent
// occupancy cap (0 = uncapped). Stored as a typed record, not a serialized
// blob.
type FreeAccessConfig struct {
	OpenTime  string `json:"open_time" bson:"open_time"`   // "HH:MM", local gym time
	CloseTime string `json:"close_time" bson:"close_time"` // "HH:MM"
	Capacity  int    `json:"capacity" bson:"capacity"`
}

// WithinOpenHours reports whether the wall-clock time of t falls inside the
// configured window. A window crossing midnight (close < open) is honoured.
func (f *FreeAccessConfig) WithinOpenHours(t time.Time) bool {
	open, errO := time.Parse("15:04", f.OpenTime)
	closeT, errC := time.Parse("15:04", f.CloseTime)
	if errO != nil || errC != nil {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	openM := open.Hour()*60 + open.Minute()
	closeM := closeT.Hour()*60 + closeT.Minute()
	if openM <= closeM {
		return minutes >= openM && minutes < closeM
	}
	return minutes >= openM || minutes < closeM
}

// Discipline is an activity offered by the gym. Disciplines either require a
// per-class reservation or are free-access areas.
type Discipline struct {
	ID                  string            `json:"id" bson:"_id,omitempty"`
	Name                string            `json:"name" bson:"name"`
	RequiresReservation bool              `json:"requires_reservation" bson:"requires_reservation"`
	FreeAccess          *FreeAccessConfig `json:"free_access,omitempty" bson:"free_access,omitempty"`
	IsActive            bool              `json:"is_active" bson:"is_active"`
}

// Class is a scheduled session of a discipline. Booked is the count of
// currently ACTIVE reservations, maintained atomically by the reservation
// store; it never exceeds Capacity.
type Class struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	DisciplineID string    `json:"discipline_id" bson:"discipline_id"`
	Name         string    `json:"name" bson:"name"`
	StartTime    time.Time `json:"start_time" bson:"start_time"`
	EndTime      time.Time `json:"end_time" bson:"end_time"`
	Capacity     int       `json:"capacity" bson:"capacity"`
	Booked       int       `json:"booked" bson:"booked"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// HasStarted reports whether the class start time has passed.
func (c *Class) HasStarted(now time.Time) bool {
	return !now.Before(c.StartTime)
}

// RunningAt reports whether the class is in progress at t.
func (c *Class) RunningAt(t time.Time) bool {
	return !t.Before(c.StartTime) && t.Before(c.EndTime)
}

// HasOpenSlot reports whether one more reservation fits. The authoritative
// check happens inside the store transaction; this is the advisory pre-check.
func (c *Class) HasOpenSlot() bool {
	return c.Booked < c.Capacity
}
