package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/hadir-app/hadir-api/internal/domain"
)

// PendingStore persists the offline queue across restarts.
type PendingStore interface {
	Load() ([]domain.AttendanceRecord, error)
	Save(records []domain.AttendanceRecord) error
}

// filePendingStore keeps the pending list as a JSON file next to the process,
// the backend's equivalent of the scanner UI's localStorage buffer.
type filePendingStore struct {
	path string
}

func NewFilePendingStore(path string) PendingStore {
	return &filePendingStore{path: path}
}

func (s *filePendingStore) Load() ([]domain.AttendanceRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("os.ReadFile -> %w", err)
	}

	var records []domain.AttendanceRecord
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return records, nil
}

func (s *filePendingStore) Save(records []domain.AttendanceRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile -> %w", err)
	}

	return nil
}

// OfflineQueue buffers attendance records whose append failed and replays
// them once the store is reachable again. Replaying a record twice is
// harmless downstream: presence is last-write-wins, so a duplicated action
// leaves the roster unchanged.
type OfflineQueue struct {
	mu      sync.Mutex
	store   PendingStore
	pending []domain.AttendanceRecord
}

func NewOfflineQueue(store PendingStore) *OfflineQueue {
	pending, err := store.Load()
	if err != nil {
		zap.L().Warn("failed to load pending attendance queue, starting empty", zap.Error(err))
		pending = nil
	}

	return &OfflineQueue{
		store:   store,
		pending: pending,
	}
}

func (q *OfflineQueue) Enqueue(record domain.AttendanceRecord) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, record)
	if err := q.store.Save(q.pending); err != nil {
		return fmt.Errorf("q.store.Save -> %w", err)
	}

	return nil
}

func (q *OfflineQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// Flush attempts every pending record in enqueue order. Records that append
// successfully are removed; failed ones stay queued, still in order, for a
// later flush.
func (q *OfflineQueue) Flush(ctx context.Context, appendFn func(context.Context, domain.AttendanceRecord) error) (domain.FlushResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var remaining []domain.AttendanceRecord
	flushed := 0
	for _, record := range q.pending {
		if err := appendFn(ctx, record); err != nil {
			zap.L().Warn("flush failed for pending attendance record, keeping it",
				zap.Uint("session_id", record.SessionID),
				zap.String("user_id", record.UserID),
				zap.Error(err),
			)
			remaining = append(remaining, record)
			continue
		}

		flushed++
	}

	q.pending = remaining
	if err := q.store.Save(q.pending); err != nil {
		return domain.FlushResult{}, fmt.Errorf("q.store.Save -> %w", err)
	}

	return domain.FlushResult{Flushed: flushed, Remaining: len(remaining)}, nil
}
