package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hadir-app/hadir-api/internal/domain"
	"github.com/hadir-app/hadir-api/internal/repository/dao"
)

type AttendanceDAO interface {
	Insert(ctx context.Context, record dao.AttendanceRecord) (dao.AttendanceRecord, error)
	FindBySessionID(ctx context.Context, sessionID uint) ([]dao.AttendanceRecord, error)
	FindBySessionAndUser(ctx context.Context, sessionID uint, userID string) ([]dao.AttendanceRecord, error)
}

type AttendanceRepository struct {
	dao AttendanceDAO
}

func NewAttendanceRepository(dao AttendanceDAO) *AttendanceRepository {
	return &AttendanceRepository{
		dao: dao,
	}
}

func (r *AttendanceRepository) Append(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	created, err := r.dao.Insert(ctx, dao.AttendanceRecord{
		EventID:   record.EventID,
		SessionID: record.SessionID,
		UserID:    record.UserID,
		UserName:  record.UserName,
		Action:    string(record.Action),
		Timestamp: record.Timestamp,
	})
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AttendanceRepository) FindBySession(ctx context.Context, sessionID uint) ([]domain.AttendanceRecord, error) {
	found, err := r.dao.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySessionID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *AttendanceRepository) FindBySessionAndUser(ctx context.Context, sessionID uint, userID string) ([]domain.AttendanceRecord, error) {
	found, err := r.dao.FindBySessionAndUser(ctx, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySessionAndUser -> %w", err)
	}

	return r.daosToDomain(found), nil
}

// daosToDomain normalizes the loosely-shaped rows coming back from storage.
// Rows with a missing or unknown action are dropped before they can reach the
// presence aggregation.
func (r *AttendanceRepository) daosToDomain(records []dao.AttendanceRecord) []domain.AttendanceRecord {
	converted := make([]domain.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		if !domain.Action(rec.Action).Valid() {
			zap.L().Warn("dropping attendance record with malformed action",
				zap.Uint("id", rec.ID),
				zap.String("action", rec.Action),
			)
			continue
		}

		converted = append(converted, r.daoToDomain(rec))
	}

	return converted
}

func (r *AttendanceRepository) daoToDomain(rec dao.AttendanceRecord) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		ID:        rec.ID,
		EventID:   rec.EventID,
		SessionID: rec.SessionID,
		UserID:    rec.UserID,
		UserName:  rec.UserName,
		Action:    domain.Action(rec.Action),
		Timestamp: rec.Timestamp,
	}
}
