package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hadir-app/hadir-api/internal/domain"
)

func record(userID string, action domain.Action, at time.Time) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		SessionID: 1,
		UserID:    userID,
		Action:    action,
		Timestamp: at,
	}
}

func TestResolveAction(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		prior    []domain.AttendanceRecord
		override *domain.Action
		want     domain.Action
	}{
		{
			name:  "no history starts with check-in",
			prior: nil,
			want:  domain.ActionCheckIn,
		},
		{
			name: "last check-in toggles to check-out",
			prior: []domain.AttendanceRecord{
				record("u1", domain.ActionCheckIn, base),
			},
			want: domain.ActionCheckOut,
		},
		{
			name: "last check-out toggles to check-in",
			prior: []domain.AttendanceRecord{
				record("u1", domain.ActionCheckIn, base),
				record("u1", domain.ActionCheckOut, base.Add(time.Hour)),
			},
			want: domain.ActionCheckIn,
		},
		{
			name: "override wins over toggle",
			prior: []domain.AttendanceRecord{
				record("u1", domain.ActionCheckIn, base),
			},
			override: actionPtr(domain.ActionCheckIn),
			want:     domain.ActionCheckIn,
		},
		{
			name:     "override on empty history",
			prior:    nil,
			override: actionPtr(domain.ActionCheckOut),
			want:     domain.ActionCheckOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAction(tt.prior, tt.override)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAction_AlwaysTogglesWithoutOverride(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	var prior []domain.AttendanceRecord
	for i := 0; i < 7; i++ {
		next := ResolveAction(prior, nil)
		if len(prior) > 0 {
			assert.NotEqual(t, prior[len(prior)-1].Action, next)
		}
		prior = append(prior, record("u1", next, base.Add(time.Duration(i)*time.Minute)))
	}

	// Alternating from empty history: ceil(7/2) check-ins, floor(7/2) check-outs.
	ins, outs := 0, 0
	for _, rec := range prior {
		if rec.Action == domain.ActionCheckIn {
			ins++
		} else {
			outs++
		}
	}
	assert.Equal(t, 4, ins)
	assert.Equal(t, 3, outs)
}

func actionPtr(a domain.Action) *domain.Action {
	return &a
}
