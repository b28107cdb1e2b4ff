package repository

import (
	"context"
	"fmt"

	"github.com/hadir-app/hadir-api/internal/domain"
	"github.com/hadir-app/hadir-api/internal/repository/dao"
)

var (
	ErrParticipantNotFound = dao.ErrParticipantNotFound
	ErrDuplicateQRID       = dao.ErrDuplicateQRID
)

type ParticipantDAO interface {
	Insert(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	FindByQRID(ctx context.Context, eventID uint, qrID string) (dao.Participant, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.Participant, error)
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.Insert(ctx, dao.Participant{
		EventID: participant.EventID,
		Name:    participant.Name,
		Team:    participant.Team,
		Group:   participant.Group,
		QRID:    participant.QRID,
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipantRepository) FindByQRID(ctx context.Context, eventID uint, qrID string) (domain.Participant, error) {
	found, err := r.dao.FindByQRID(ctx, eventID, qrID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByQRID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.Participant, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	participants := make([]domain.Participant, len(found))
	for i, p := range found {
		participants[i] = r.daoToDomain(p)
	}

	return participants, nil
}

func (r *ParticipantRepository) daoToDomain(p dao.Participant) domain.Participant {
	return domain.Participant{
		ID:        p.ID,
		EventID:   p.EventID,
		Name:      p.Name,
		Team:      p.Team,
		Group:     p.Group,
		QRID:      p.QRID,
		CreatedAt: p.CreatedAt,
	}
}
