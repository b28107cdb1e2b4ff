package service

import "github.com/hadir-app/hadir-api/internal/domain"

// ComputeRoster folds a session's full record set into the present/absent
// partition of its participants. Records are folded last-write-wins in the
// given order (timestamp ascending, append order breaking ties): a
// participant is present iff their last action is a check-in, everyone else
// is absent. Duplicate consecutive scans collapse to the same status, which
// is what absorbs offline-queue replays and concurrent scanners.
//
// Runs in O(records + participants). Recomputing from the full record set is
// the single source of truth for presence; there is no incremental cache to
// drift from it.
func ComputeRoster(participants []domain.Participant, records []domain.AttendanceRecord) domain.Roster {
	lastAction := make(map[string]domain.Action, len(records))
	for _, rec := range records {
		lastAction[rec.UserID] = rec.Action
	}

	roster := domain.Roster{
		Present: []domain.Participant{},
		Absent:  []domain.Participant{},
	}
	for _, p := range participants {
		if lastAction[p.QRID] == domain.ActionCheckIn {
			roster.Present = append(roster.Present, p)
		} else {
			roster.Absent = append(roster.Absent, p)
		}
	}

	return roster
}
