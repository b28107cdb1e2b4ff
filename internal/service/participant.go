package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hadir-app/hadir-api/internal/domain"
	"github.com/hadir-app/hadir-api/internal/repository"
)

var ErrDuplicateQRID = repository.ErrDuplicateQRID

type ParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindByQRID(ctx context.Context, eventID uint, qrID string) (domain.Participant, error)
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Participant, error)
}

type ParticipantService struct {
	repo      ParticipantRepository
	eventRepo EventRepository
}

func NewParticipantService(repo ParticipantRepository, eventRepo EventRepository) *ParticipantService {
	return &ParticipantService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

// ImportOutcome is the per-row result of a participant import.
type ImportOutcome struct {
	Row         int                 `json:"row"`
	Participant *domain.Participant `json:"participant,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// RegisterParticipant adds one participant to an event. When no QR token is
// supplied a fresh one is generated; a token colliding with an existing
// participant of the same event is rejected, never silently merged.
func (s *ParticipantService) RegisterParticipant(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	if _, err := s.eventRepo.FindByID(ctx, participant.EventID); err != nil {
		return domain.Participant{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if participant.QRID == "" {
		participant.QRID = newQRID()
	}

	created, err := s.repo.Create(ctx, participant)
	if err != nil {
		if errors.Is(err, ErrDuplicateQRID) {
			return domain.Participant{}, ErrDuplicateQRID
		}

		return domain.Participant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ImportParticipants registers a batch of pre-parsed rows. Rows fail
// individually; one bad row never aborts the rest of the sheet.
func (s *ParticipantService) ImportParticipants(ctx context.Context, eventID uint, rows []domain.Participant) ([]ImportOutcome, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	outcomes := make([]ImportOutcome, 0, len(rows))
	for i, row := range rows {
		row.EventID = eventID
		if row.QRID == "" {
			row.QRID = newQRID()
		}

		created, err := s.repo.Create(ctx, row)
		if err != nil {
			outcomes = append(outcomes, ImportOutcome{Row: i, Error: err.Error()})
			continue
		}

		outcomes = append(outcomes, ImportOutcome{Row: i, Participant: &created})
	}

	return outcomes, nil
}

func (s *ParticipantService) GetParticipants(ctx context.Context, eventID uint) ([]domain.Participant, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	participants, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return participants, nil
}

func newQRID() string {
	return "user_" + uuid.NewString()
}
