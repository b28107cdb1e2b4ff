package domain

import (
	"fmt"
	"time"
)

type Participant struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	Name      string    `json:"name"`
	Team      string    `json:"team,omitempty"`
	Group     string    `json:"group,omitempty"`
	QRID      string    `json:"qr_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName is the denormalized snapshot stored on attendance records.
func (p Participant) DisplayName() string {
	if p.Team == "" && p.Group == "" {
		return p.Name
	}

	return fmt.Sprintf("%v (%v - %v)", p.Name, p.Team, p.Group)
}
