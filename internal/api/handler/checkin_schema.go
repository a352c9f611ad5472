package handler

import "time"

// --- Request / Response types ---

type checkinRequest struct {
	// Token is the scanned dynamic member token. Exactly one of Token or
	// MemberID must be set.
	Token string `json:"token"`
	// MemberID identifies the member directly for staff manual entry.
	MemberID string `json:"member_id"`
	// CheckpointCode is the rotating signage code captured by app scans.
	CheckpointCode string `json:"checkpoint_code"`
	DisciplineID   string `json:"discipline_id"`
	Type           string `json:"type" validate:"required,oneof=qr_scan app_scan manual"`
}

type checkinResponse struct {
	Status     string `json:"status"`
	MemberID   string `json:"member_id,omitempty"`
	Discipline string `json:"discipline,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type scanUpload struct {
	Token     string    `json:"token"`
	MemberID  string    `json:"member_id"`
	Site      string    `json:"site" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=qr_scan app_scan"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
}

type scanBatchRequest struct {
	Scans []scanUpload `json:"scans" validate:"required,min=1,dive"`
}

type scanBatchResponse struct {
	Accepted int `json:"accepted"`
}

type accessEntryItem struct {
	Discipline string    `json:"discipline,omitempty"`
	Type       string    `json:"type"`
	Granted    bool      `json:"granted"`
	Reason     string    `json:"reason,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type accessHistoryResponse struct {
	Entries []accessEntryItem `json:"entries"`
}
