package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hadir-app/hadir-api/internal/domain"
)

var (
	ErrEmptyBulkSelection   = errors.New("bulk action has no targets")
	ErrUnknownBulkKind      = errors.New("unknown bulk action kind")
	ErrBulkProposalNotFound = errors.New("bulk proposal not found or expired")
)

// Proposals only exist to back the confirm/cancel round-trip; they are not
// part of the durable data model and expire unconfirmed.
const bulkProposalTTL = 5 * time.Minute

// ProposeBulk prepares a bulk action and returns a proposal that must be
// confirmed before anything is written. A bulk check-out targets the current
// present roster; a bulk check-in targets the caller-selected subset of the
// absent roster.
func (s *AttendanceService) ProposeBulk(ctx context.Context, sessionID uint, kind domain.Action, selected []string) (domain.BulkProposal, error) {
	if !kind.Valid() {
		return domain.BulkProposal{}, ErrUnknownBulkKind
	}

	roster, err := s.GetRoster(ctx, sessionID)
	if err != nil {
		return domain.BulkProposal{}, fmt.Errorf("s.GetRoster -> %w", err)
	}

	var targets []domain.Participant
	switch kind {
	case domain.ActionCheckOut:
		targets = roster.Present
	case domain.ActionCheckIn:
		absent := make(map[string]domain.Participant, len(roster.Absent))
		for _, p := range roster.Absent {
			absent[p.QRID] = p
		}
		for _, qrID := range selected {
			p, ok := absent[qrID]
			if !ok {
				return domain.BulkProposal{}, fmt.Errorf("%w: %v is not on the absent roster", ErrParticipantNotFound, qrID)
			}
			targets = append(targets, p)
		}
	}

	if len(targets) == 0 {
		return domain.BulkProposal{}, ErrEmptyBulkSelection
	}

	proposal := domain.BulkProposal{
		Token:     uuid.NewString(),
		SessionID: sessionID,
		Kind:      kind,
		Targets:   targets,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.pruneExpiredLocked()
	s.proposals[proposal.Token] = proposal
	s.mu.Unlock()

	return proposal, nil
}

// ConfirmBulk executes a proposed bulk action as a sequence of individual
// appends. Appends are sequential, not atomic as a group: a failed item is
// recorded and the batch continues. The returned roster is recomputed from
// the store after the batch so callers reconcile against the authoritative
// record set rather than optimistic local state.
func (s *AttendanceService) ConfirmBulk(ctx context.Context, token string) (domain.BulkResult, domain.Roster, error) {
	s.mu.Lock()
	s.pruneExpiredLocked()
	proposal, ok := s.proposals[token]
	if ok {
		delete(s.proposals, token)
	}
	s.mu.Unlock()

	if !ok {
		return domain.BulkResult{}, domain.Roster{}, ErrBulkProposalNotFound
	}

	result := domain.BulkResult{
		SessionID: proposal.SessionID,
		Succeeded: []string{},
		Failed:    []domain.BulkFailure{},
	}
	for _, target := range proposal.Targets {
		record := domain.AttendanceRecord{
			EventID:   target.EventID,
			SessionID: proposal.SessionID,
			UserID:    target.QRID,
			UserName:  target.DisplayName(),
			Action:    proposal.Kind,
			Timestamp: s.now(),
		}

		if _, err := s.repo.Append(ctx, record); err != nil {
			result.Failed = append(result.Failed, domain.BulkFailure{
				UserID: target.QRID,
				Reason: err.Error(),
			})
			continue
		}

		result.Succeeded = append(result.Succeeded, target.QRID)
	}

	roster, err := s.GetRoster(ctx, proposal.SessionID)
	if err != nil {
		return result, domain.Roster{}, fmt.Errorf("s.GetRoster -> %w", err)
	}

	return result, roster, nil
}

// CancelBulk discards a pending proposal.
func (s *AttendanceService) CancelBulk(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.proposals[token]; !ok {
		return ErrBulkProposalNotFound
	}
	delete(s.proposals, token)

	return nil
}

func (s *AttendanceService) pruneExpiredLocked() {
	cutoff := s.now().Add(-bulkProposalTTL)
	for token, proposal := range s.proposals {
		if proposal.CreatedAt.Before(cutoff) {
			delete(s.proposals, token)
		}
	}
}
