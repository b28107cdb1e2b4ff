package service

import "github.com/hadir-app/hadir-api/internal/domain"

// ResolveAction decides what a new scan means for one participant in one
// session. An explicit override (manual roster buttons, bulk actions) wins
// unchanged; otherwise the chronologically last prior record is toggled:
// last check-in means the next scan is a check-out, anything else (empty
// history or last check-out) means check-in.
//
// The prior records must already be ordered by timestamp, append order
// breaking ties. The function is pure; the caller performs the append.
func ResolveAction(prior []domain.AttendanceRecord, override *domain.Action) domain.Action {
	if override != nil {
		return *override
	}

	if len(prior) == 0 {
		return domain.ActionCheckIn
	}

	if prior[len(prior)-1].Action == domain.ActionCheckIn {
		return domain.ActionCheckOut
	}

	return domain.ActionCheckIn
}
