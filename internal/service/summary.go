package service

import (
	"math"
	"sort"
	"time"

	"github.com/hadir-app/hadir-api/internal/domain"
)

// ComputeSummary produces the per-participant report lines for a session:
// how many check-ins and check-outs each user has, and the total minutes
// spent in the session.
//
// Per user, the i-th check-in is paired with the i-th check-out by position
// in the separately filtered sequences, not by interleaving. A pair whose
// check-out precedes its check-in contributes zero, never negative time. An
// unmatched trailing check-in opens an interval from the last check-in to
// now. Totals are rounded half-up to whole minutes.
func ComputeSummary(records []domain.AttendanceRecord, now time.Time) map[string]domain.AttendanceSummary {
	type timestamps struct {
		checkIns  []time.Time
		checkOuts []time.Time
	}

	ordered := make([]domain.AttendanceRecord, len(records))
	copy(ordered, records)
	// Stable keeps append order as the tiebreak for identical timestamps.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	byUser := make(map[string]*timestamps)
	for _, rec := range ordered {
		ts, ok := byUser[rec.UserID]
		if !ok {
			ts = &timestamps{}
			byUser[rec.UserID] = ts
		}

		switch rec.Action {
		case domain.ActionCheckIn:
			ts.checkIns = append(ts.checkIns, rec.Timestamp)
		case domain.ActionCheckOut:
			ts.checkOuts = append(ts.checkOuts, rec.Timestamp)
		}
	}

	summaries := make(map[string]domain.AttendanceSummary, len(byUser))
	for userID, ts := range byUser {
		var total time.Duration

		pairs := len(ts.checkIns)
		if len(ts.checkOuts) < pairs {
			pairs = len(ts.checkOuts)
		}
		for i := 0; i < pairs; i++ {
			if d := ts.checkOuts[i].Sub(ts.checkIns[i]); d > 0 {
				total += d
			}
		}

		if len(ts.checkIns) > len(ts.checkOuts) {
			lastIn := ts.checkIns[len(ts.checkIns)-1]
			if d := now.Sub(lastIn); d > 0 {
				total += d
			}
		}

		summaries[userID] = domain.AttendanceSummary{
			CheckIns:     len(ts.checkIns),
			CheckOuts:    len(ts.checkOuts),
			TotalMinutes: int(math.Round(total.Minutes())),
		}
	}

	return summaries
}
