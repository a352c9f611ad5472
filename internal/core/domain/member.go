package domain

import "time"

const (
	RoleAdmin   = "ADMIN"
	RoleStaff   = "STAFF"
	RoleMonitor = "MONITOR"
	RoleClient  = "CLIENT"
)

// Member models an authenticated actor. The core only ever reads its ID and
// role; identity verification happens upstream in the auth middleware.
type Member struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email,omitempty" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Action names a core operation for permission checks.
type Action string

const (
	ActionReserve         Action = "reserve"
	ActionCancel          Action = "cancel"
	ActionListOwn         Action = "list_own_reservations"
	ActionListAny         Action = "list_any_reservations"
	ActionIssueToken      Action = "issue_token"
	ActionCheckpointCode  Action = "checkpoint_code"
	ActionCheckIn         Action = "check_in"
	ActionManageClasses   Action = "manage_classes"
	ActionReserveOnBehalf Action = "reserve_on_behalf"
)

// permissions is the single declarative capability table consulted by every
// core operation. Handlers and services never branch on role directly.
var permissions = map[string]map[Action]bool{
	RoleAdmin: {
		ActionReserve: true, ActionCancel: true,
		ActionListOwn: true, ActionListAny: true,
		ActionIssueToken: true, ActionCheckpointCode: true,
		ActionCheckIn: true, ActionManageClasses: true,
		ActionReserveOnBehalf: true,
	},
	RoleStaff: {
		ActionReserve: true, ActionCancel: true,
		ActionListOwn: true, ActionListAny: true,
		ActionIssueToken: true, ActionCheckpointCode: true,
		ActionCheckIn: true,
		ActionReserveOnBehalf: true,
	},
	RoleMonitor: {
		ActionListAny:        true,
		ActionCheckpointCode: true,
		ActionCheckIn:        true,
	},
	RoleClient: {
		ActionReserve: true, ActionCancel: true,
		ActionListOwn:    true,
		ActionIssueToken: true,
		ActionCheckIn:    true,
	},
}

// RoleAllows reports whether the given role may perform the action.
func RoleAllows(role string, action Action) bool {
	return permissions[role][action]
}

// ValidRole reports whether s is one of the four known roles.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleStaff, RoleMonitor, RoleClient:
		return true
	}
	return false
}
