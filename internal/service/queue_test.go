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

func pendingRecord(userID string) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		EventID:   1,
		SessionID: 1,
		UserID:    userID,
		Action:    domain.ActionCheckIn,
		Timestamp: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestOfflineQueue_FlushRemovesOnlySuccesses(t *testing.T) {
	queue := NewOfflineQueue(NewFilePendingStore(filepath.Join(t.TempDir(), "pending.json")))
	require.NoError(t, queue.Enqueue(pendingRecord("u1")))
	require.NoError(t, queue.Enqueue(pendingRecord("u2")))

	// First flush: u1 succeeds, u2 fails and stays queued.
	result, err := queue.Flush(context.Background(), func(_ context.Context, record domain.AttendanceRecord) error {
		if record.UserID == "u2" {
			return errors.New("still offline")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Flushed)
	assert.Equal(t, 1, result.Remaining)
	assert.Equal(t, 1, queue.Len())

	// Second flush clears the rest.
	result, err = queue.Flush(context.Background(), func(context.Context, domain.AttendanceRecord) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Flushed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, 0, queue.Len())
}

func TestOfflineQueue_FlushPreservesEnqueueOrder(t *testing.T) {
	queue := NewOfflineQueue(NewFilePendingStore(filepath.Join(t.TempDir(), "pending.json")))
	for _, id := range []string{"u1", "u2", "u3"} {
		require.NoError(t, queue.Enqueue(pendingRecord(id)))
	}

	var attempted []string
	_, err := queue.Flush(context.Background(), func(_ context.Context, record domain.AttendanceRecord) error {
		attempted = append(attempted, record.UserID)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"u1", "u2", "u3"}, attempted)
}

func TestOfflineQueue_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.json")

	queue := NewOfflineQueue(NewFilePendingStore(path))
	require.NoError(t, queue.Enqueue(pendingRecord("u1")))
	require.NoError(t, queue.Enqueue(pendingRecord("u2")))

	reloaded := NewOfflineQueue(NewFilePendingStore(path))
	assert.Equal(t, 2, reloaded.Len())

	var attempted []string
	_, err := reloaded.Flush(context.Background(), func(_ context.Context, record domain.AttendanceRecord) error {
		attempted = append(attempted, record.UserID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, attempted)
}

func TestOfflineQueue_EmptyFlushIsNoop(t *testing.T) {
	queue := NewOfflineQueue(NewFilePendingStore(filepath.Join(t.TempDir(), "pending.json")))

	result, err := queue.Flush(context.Background(), func(context.Context, domain.AttendanceRecord) error {
		t.Fatal("append must not be called for an empty queue")
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Flushed)
	assert.Equal(t, 0, result.Remaining)
}

func TestOfflineQueue_MissingFileStartsEmpty(t *testing.T) {
	queue := NewOfflineQueue(NewFilePendingStore(filepath.Join(t.TempDir(), "does-not-exist.json")))

	assert.Equal(t, 0, queue.Len())
}
