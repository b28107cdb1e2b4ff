package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hadir-app/hadir-api/internal/domain"
	"github.com/hadir-app/hadir-api/internal/repository"
)

var (
	ErrSessionNotFound     = repository.ErrSessionNotFound
	ErrParticipantNotFound = repository.ErrParticipantNotFound
)

type AttendanceRepository interface {
	Append(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error)
	FindBySession(ctx context.Context, sessionID uint) ([]domain.AttendanceRecord, error)
	FindBySessionAndUser(ctx context.Context, sessionID uint, userID string) ([]domain.AttendanceRecord, error)
}

type AttendanceService struct {
	repo            AttendanceRepository
	sessionRepo     SessionRepository
	participantRepo ParticipantRepository
	queue           *OfflineQueue
	now             func() time.Time

	mu        sync.Mutex
	proposals map[string]domain.BulkProposal
}

func NewAttendanceService(
	repo AttendanceRepository,
	sessionRepo SessionRepository,
	participantRepo ParticipantRepository,
	queue *OfflineQueue,
) *AttendanceService {
	return &AttendanceService{
		repo:            repo,
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		queue:           queue,
		now:             time.Now,
		proposals:       make(map[string]domain.BulkProposal),
	}
}

// RecordScan handles one scanned or manually triggered toggle for the
// participant identified by qrID. Without an override the action is resolved
// from the participant's prior records in the session. A failed append is not
// an error for the caller: the record is buffered in the offline queue and the
// result reports Queued.
func (s *AttendanceService) RecordScan(ctx context.Context, sessionID uint, qrID string, override *domain.Action) (domain.ScanResult, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("s.sessionRepo.FindByID -> %w", err)
	}

	participant, err := s.participantRepo.FindByQRID(ctx, session.EventID, qrID)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("s.participantRepo.FindByQRID -> %w", err)
	}

	prior, err := s.repo.FindBySessionAndUser(ctx, sessionID, qrID)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("s.repo.FindBySessionAndUser -> %w", err)
	}

	record := domain.AttendanceRecord{
		EventID:   session.EventID,
		SessionID: sessionID,
		UserID:    qrID,
		UserName:  participant.DisplayName(),
		Action:    ResolveAction(prior, override),
		Timestamp: s.now(),
	}

	created, err := s.repo.Append(ctx, record)
	if err != nil {
		// Soft success: keep the scan instead of dropping it.
		if qErr := s.queue.Enqueue(record); qErr != nil {
			return domain.ScanResult{}, fmt.Errorf("s.queue.Enqueue -> %w", qErr)
		}

		zap.L().Warn("attendance append failed, record queued for sync",
			zap.Uint("session_id", sessionID),
			zap.String("user_id", qrID),
			zap.Error(err),
		)

		return domain.ScanResult{Record: record, Queued: true}, nil
	}

	return domain.ScanResult{Record: created}, nil
}

// GetRoster recomputes the present/absent partition from the authoritative
// record set. Group-mode sessions only track the participants of their group.
func (s *AttendanceService) GetRoster(ctx context.Context, sessionID uint) (domain.Roster, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("s.sessionRepo.FindByID -> %w", err)
	}

	participants, err := s.sessionParticipants(ctx, session)
	if err != nil {
		return domain.Roster{}, err
	}

	records, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("s.repo.FindBySession -> %w", err)
	}

	return ComputeRoster(participants, records), nil
}

// GetSummary computes the per-participant attendance report for a session.
func (s *AttendanceService) GetSummary(ctx context.Context, sessionID uint) (map[string]domain.AttendanceSummary, error) {
	if _, err := s.sessionRepo.FindByID(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("s.sessionRepo.FindByID -> %w", err)
	}

	records, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySession -> %w", err)
	}

	return ComputeSummary(records, s.now()), nil
}

// GetRecords returns a session's full ordered record list.
func (s *AttendanceService) GetRecords(ctx context.Context, sessionID uint) ([]domain.AttendanceRecord, error) {
	if _, err := s.sessionRepo.FindByID(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("s.sessionRepo.FindByID -> %w", err)
	}

	records, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySession -> %w", err)
	}

	return records, nil
}

// FlushQueue replays buffered records against the store in enqueue order.
func (s *AttendanceService) FlushQueue(ctx context.Context) (domain.FlushResult, error) {
	return s.queue.Flush(ctx, func(ctx context.Context, record domain.AttendanceRecord) error {
		_, err := s.repo.Append(ctx, record)
		return err
	})
}

func (s *AttendanceService) sessionParticipants(ctx context.Context, session domain.Session) ([]domain.Participant, error) {
	participants, err := s.participantRepo.FindByEventID(ctx, session.EventID)
	if err != nil {
		return nil, fmt.Errorf("s.participantRepo.FindByEventID -> %w", err)
	}

	if session.AttendanceMode != domain.AttendanceModeGroup {
		return participants, nil
	}

	scoped := make([]domain.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Group == session.GroupName {
			scoped = append(scoped, p)
		}
	}

	return scoped, nil
}
