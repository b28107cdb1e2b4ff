package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadir-app/hadir-api/internal/domain"
)

var ErrGroupNameRequired = errors.New("group name is required for group attendance mode")

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	FindByID(ctx context.Context, id uint) (domain.Session, error)
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Session, error)
}

type SessionService struct {
	repo      SessionRepository
	eventRepo EventRepository
}

func NewSessionService(repo SessionRepository, eventRepo EventRepository) *SessionService {
	return &SessionService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

func (s *SessionService) CreateSession(ctx context.Context, session domain.Session) (domain.Session, error) {
	if _, err := s.eventRepo.FindByID(ctx, session.EventID); err != nil {
		return domain.Session{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	// groupName is meaningful only in Group mode.
	switch session.AttendanceMode {
	case domain.AttendanceModeGroup:
		if session.GroupName == "" {
			return domain.Session{}, ErrGroupNameRequired
		}
	default:
		session.GroupName = ""
	}

	created, err := s.repo.Create(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SessionService) GetSession(ctx context.Context, id uint) (domain.Session, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return session, nil
}

func (s *SessionService) GetSessions(ctx context.Context, eventID uint) ([]domain.Session, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	sessions, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return sessions, nil
}
