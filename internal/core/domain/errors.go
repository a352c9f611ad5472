package domain

import "errors"

// Kind classifies an error for callers that need a stable, machine-readable
// category independent of the human-readable message.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindAuthorization Kind = "authorization"
	KindBusinessRule  Kind = "business_rule"
	KindInternal      Kind = "internal"
)

// Reservation lifecycle failures.
var (
	ErrClassStarted         = errors.New("class has already started")
	ErrClassFull            = errors.New("class is full")
	ErrDuplicateReservation = errors.New("member already has an active reservation for this class")
	ErrNoActiveMembership   = errors.New("no active membership for this discipline")
	ErrInsufficientCredits  = errors.New("insufficient credits")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationNotActive = errors.New("reservation is not active")
	ErrNotOwner             = errors.New("reservation belongs to another member")
)

// Entity lookup failures.
var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrDisciplineNotFound = errors.New("discipline not found")
	ErrMembershipNotFound = errors.New("membership not found")
)

// Token failures.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenTampered  = errors.New("token integrity check failed")
	ErrTokenMalformed = errors.New("token malformed")
)

// Check-in failures.
var (
	ErrOutsideOpenHours = errors.New("outside open hours")
	ErrAreaAtCapacity   = errors.New("area is at capacity")
	ErrNoRunningClass   = errors.New("no reservation for a class running now")
)

// Administration failures.
var (
	ErrClassHasReservations = errors.New("class has active reservations")
	ErrDisciplineInUse      = errors.New("discipline has active memberships or scheduled classes")
	ErrForbidden            = errors.New("operation not permitted for this role")
)

// ErrInvalidInput reports malformed input the caller can fix and resend.
var ErrInvalidInput = errors.New("invalid input")

// ErrStoreConflict reports a transaction abort caused by a lost race with a
// concurrent writer. Callers retry the whole operation at most once,
// re-evaluating every guard; they never blindly replay the write.
var ErrStoreConflict = errors.New("concurrent update conflict")

// Auth failures.
var (
	ErrMemberExists       = errors.New("member already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// KindOf maps a domain error to its taxonomy kind. Unknown errors are
// internal: they carry no business meaning and must not leak details.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrReservationNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrClassNotFound),
		errors.Is(err, ErrDisciplineNotFound),
		errors.Is(err, ErrMembershipNotFound):
		return KindNotFound
	case errors.Is(err, ErrClassFull),
		errors.Is(err, ErrDuplicateReservation),
		errors.Is(err, ErrClassHasReservations),
		errors.Is(err, ErrDisciplineInUse),
		errors.Is(err, ErrMemberExists),
		errors.Is(err, ErrStoreConflict):
		return KindConflict
	case errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrInvalidCredentials):
		return KindAuthorization
	case errors.Is(err, ErrClassStarted),
		errors.Is(err, ErrNoActiveMembership),
		errors.Is(err, ErrInsufficientCredits),
		errors.Is(err, ErrReservationNotActive),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenTampered),
		errors.Is(err, ErrOutsideOpenHours),
		errors.Is(err, ErrAreaAtCapacity),
		errors.Is(err, ErrNoRunningClass):
		return KindBusinessRule
	case errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrInvalidInput):
		return KindValidation
	default:
		return KindInternal
	}
}
