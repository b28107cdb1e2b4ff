package domain

import "time"

// Action is the direction of a single attendance record.
type Action string

const (
	ActionCheckIn  Action = "check-in"
	ActionCheckOut Action = "check-out"
)

func (a Action) Valid() bool {
	return a == ActionCheckIn || a == ActionCheckOut
}

// AttendanceRecord is one immutable check-in/check-out fact. Records are
// append-only; corrections happen by appending an offsetting action.
type AttendanceRecord struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	SessionID uint      `json:"session_id"`
	UserID    string    `json:"user_id"` // the participant's QR token, not the row ID
	UserName  string    `json:"user_name,omitempty"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Roster is the present/absent partition of a session's participants.
type Roster struct {
	Present []Participant `json:"present"`
	Absent  []Participant `json:"absent"`
}

// AttendanceSummary is the per-participant report line for a session.
type AttendanceSummary struct {
	CheckIns     int `json:"check_ins"`
	CheckOuts    int `json:"check_outs"`
	TotalMinutes int `json:"total_minutes"`
}

// ScanResult reports the outcome of a scan or manual toggle. Queued means the
// write failed and the record was buffered for a later flush instead.
type ScanResult struct {
	Record AttendanceRecord `json:"record"`
	Queued bool             `json:"queued"`
}

// BulkProposal is the pending-confirmation phase of a bulk action.
type BulkProposal struct {
	Token     string        `json:"token"`
	SessionID uint          `json:"session_id"`
	Kind      Action        `json:"kind"`
	Targets   []Participant `json:"targets"`
	CreatedAt time.Time     `json:"created_at"`
}

type BulkFailure struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// BulkResult accumulates per-target outcomes; a bulk action never aborts on
// the first failure.
type BulkResult struct {
	SessionID uint          `json:"session_id"`
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// FlushResult reports an offline queue replay.
type FlushResult struct {
	Flushed   int `json:"flushed"`
	Remaining int `json:"remaining"`
}
