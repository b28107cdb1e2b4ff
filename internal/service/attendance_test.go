package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir-api/internal/domain"
)

type stubAttendanceRepo struct {
	records []domain.AttendanceRecord
	nextID  uint

	// failAppend rejects an append when it returns an error.
	failAppend func(record domain.AttendanceRecord) error
}

func (r *stubAttendanceRepo) Append(_ context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	if r.failAppend != nil {
		if err := r.failAppend(record); err != nil {
			return domain.AttendanceRecord{}, err
		}
	}

	r.nextID++
	record.ID = r.nextID
	r.records = append(r.records, record)

	return record, nil
}

func (r *stubAttendanceRepo) FindBySession(_ context.Context, sessionID uint) ([]domain.AttendanceRecord, error) {
	var found []domain.AttendanceRecord
	for _, rec := range r.records {
		if rec.SessionID == sessionID {
			found = append(found, rec)
		}
	}

	return found, nil
}

func (r *stubAttendanceRepo) FindBySessionAndUser(_ context.Context, sessionID uint, userID string) ([]domain.AttendanceRecord, error) {
	var found []domain.AttendanceRecord
	for _, rec := range r.records {
		if rec.SessionID == sessionID && rec.UserID == userID {
			found = append(found, rec)
		}
	}

	return found, nil
}

type stubSessionRepo struct {
	sessions map[uint]domain.Session
}

func (r *stubSessionRepo) Create(_ context.Context, session domain.Session) (domain.Session, error) {
	return session, nil
}

func (r *stubSessionRepo) FindByID(_ context.Context, id uint) (domain.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}

	return session, nil
}

func (r *stubSessionRepo) FindByEventID(_ context.Context, eventID uint) ([]domain.Session, error) {
	var found []domain.Session
	for _, s := range r.sessions {
		if s.EventID == eventID {
			found = append(found, s)
		}
	}

	return found, nil
}

type stubParticipantRepo struct {
	participants []domain.Participant
}

func (r *stubParticipantRepo) Create(_ context.Context, participant domain.Participant) (domain.Participant, error) {
	r.participants = append(r.participants, participant)
	return participant, nil
}

func (r *stubParticipantRepo) FindByQRID(_ context.Context, eventID uint, qrID string) (domain.Participant, error) {
	for _, p := range r.participants {
		if p.EventID == eventID && p.QRID == qrID {
			return p, nil
		}
	}

	return domain.Participant{}, ErrParticipantNotFound
}

func (r *stubParticipantRepo) FindByEventID(_ context.Context, eventID uint) ([]domain.Participant, error) {
	var found []domain.Participant
	for _, p := range r.participants {
		if p.EventID == eventID {
			found = append(found, p)
		}
	}

	return found, nil
}

func newTestService(t *testing.T, repo *stubAttendanceRepo, participants ...domain.Participant) *AttendanceService {
	t.Helper()

	sessions := &stubSessionRepo{sessions: map[uint]domain.Session{
		1: {ID: 1, EventID: 1, SessionName: "Morning", SessionType: "Lecture", AttendanceMode: domain.AttendanceModeAll},
	}}
	queue := NewOfflineQueue(NewFilePendingStore(filepath.Join(t.TempDir(), "pending.json")))

	svc := NewAttendanceService(repo, sessions, &stubParticipantRepo{participants: participants}, queue)

	// Deterministic, strictly increasing clock.
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	return svc
}

func TestRecordScan_TogglesFromHistory(t *testing.T) {
	repo := &stubAttendanceRepo{}
	svc := newTestService(t, repo, domain.Participant{EventID: 1, Name: "Amal", Team: "Red", Group: "A", QRID: "u1"})

	first, err := svc.RecordScan(context.Background(), 1, "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCheckIn, first.Record.Action)
	assert.False(t, first.Queued)
	assert.Equal(t, "Amal (Red - A)", first.Record.UserName)

	second, err := svc.RecordScan(context.Background(), 1, "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCheckOut, second.Record.Action)

	third, err := svc.RecordScan(context.Background(), 1, "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCheckIn, third.Record.Action)
}

func TestRecordScan_UnknownParticipant(t *testing.T) {
	svc := newTestService(t, &stubAttendanceRepo{})

	_, err := svc.RecordScan(context.Background(), 1, "ghost", nil)

	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestRecordScan_UnknownSession(t *testing.T) {
	svc := newTestService(t, &stubAttendanceRepo{})

	_, err := svc.RecordScan(context.Background(), 42, "u1", nil)

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRecordScan_AppendFailureQueuesRecord(t *testing.T) {
	repo := &stubAttendanceRepo{
		failAppend: func(domain.AttendanceRecord) error {
			return errors.New("store unreachable")
		},
	}
	svc := newTestService(t, repo, domain.Participant{EventID: 1, Name: "Amal", QRID: "u1"})

	result, err := svc.RecordScan(context.Background(), 1, "u1", nil)

	require.NoError(t, err, "a failed append is a soft success")
	assert.True(t, result.Queued)
	assert.Equal(t, domain.ActionCheckIn, result.Record.Action)
	assert.Equal(t, 1, svc.queue.Len())

	// Store comes back; flush drains the queue into it.
	repo.failAppend = nil
	flush, err := svc.FlushQueue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, flush.Flushed)
	assert.Equal(t, 0, flush.Remaining)
	assert.Len(t, repo.records, 1)
}

func TestGetRoster_ReflectsScans(t *testing.T) {
	repo := &stubAttendanceRepo{}
	svc := newTestService(t, repo,
		domain.Participant{EventID: 1, Name: "Amal", QRID: "u1"},
		domain.Participant{EventID: 1, Name: "Basma", QRID: "u2"},
	)

	_, err := svc.RecordScan(context.Background(), 1, "u1", nil)
	require.NoError(t, err)

	roster, err := svc.GetRoster(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, roster.Present, 1)
	assert.Equal(t, "u1", roster.Present[0].QRID)
	require.Len(t, roster.Absent, 1)
	assert.Equal(t, "u2", roster.Absent[0].QRID)
}

func TestGetRoster_GroupModeScopesParticipants(t *testing.T) {
	repo := &stubAttendanceRepo{}
	svc := newTestService(t, repo,
		domain.Participant{EventID: 1, Name: "Amal", Group: "A", QRID: "u1"},
		domain.Participant{EventID: 1, Name: "Basma", Group: "B", QRID: "u2"},
	)
	sessions := svc.sessionRepo.(*stubSessionRepo)
	sessions.sessions[2] = domain.Session{
		ID: 2, EventID: 1, SessionName: "Group A only",
		AttendanceMode: domain.AttendanceModeGroup, GroupName: "A",
	}

	roster, err := svc.GetRoster(context.Background(), 2)
	require.NoError(t, err)

	assert.Empty(t, roster.Present)
	require.Len(t, roster.Absent, 1)
	assert.Equal(t, "u1", roster.Absent[0].QRID)
}

func TestGetSummary_ScenarioRoundTrip(t *testing.T) {
	repo := &stubAttendanceRepo{}
	svc := newTestService(t, repo, domain.Participant{EventID: 1, Name: "Amal", QRID: "u1"})

	for i := 0; i < 3; i++ {
		_, err := svc.RecordScan(context.Background(), 1, "u1", nil)
		require.NoError(t, err)
	}

	summary, err := svc.GetSummary(context.Background(), 1)
	require.NoError(t, err)

	require.Contains(t, summary, "u1")
	assert.Equal(t, 2, summary["u1"].CheckIns)
	assert.Equal(t, 1, summary["u1"].CheckOuts)

	roster, err := svc.GetRoster(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, roster.Present, 1, "odd number of toggles leaves the user present")
}
