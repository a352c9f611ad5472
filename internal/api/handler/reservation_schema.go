package handler

import "time"

// --- Request / Response types ---

type createReservationRequest struct {
	ClassID string `json:"class_id" validate:"required"`
	// MemberID is optional; when set and different from the caller, the
	// caller needs a staff role.
	MemberID string `json:"member_id"`
}

type reservationResponse struct {
	ReservationID    string `json:"reservation_id"`
	Status           string `json:"status"`
	Discipline       string `json:"discipline"`
	RemainingCredits int    `json:"remaining_credits"`
	Unlimited        bool   `json:"unlimited"`
}

type cancelReservationResponse struct {
	Status           string `json:"status"`
	RemainingCredits int    `json:"remaining_credits"`
	Unlimited        bool   `json:"unlimited"`
}

type reservationListItem struct {
	ReservationID string    `json:"reservation_id"`
	ClassID       string    `json:"class_id"`
	ClassName     string    `json:"class_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	State         string    `json:"state"`
	CreatedAt     time.Time `json:"created_at"`
}

type reservationListResponse struct {
	Reservations []reservationListItem `json:"reservations"`
}
