package domain

import "time"

const (
	AttendanceModeAll   = "All"
	AttendanceModeGroup = "Group"
)

type Session struct {
	ID             uint      `json:"id"`
	EventID        uint      `json:"event_id"`
	SessionName    string    `json:"session_name"`
	SessionType    string    `json:"session_type"`
	AttendanceMode string    `json:"attendance_mode"`
	GroupName      string    `json:"group_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
