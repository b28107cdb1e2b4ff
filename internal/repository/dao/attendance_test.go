package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("could not construct docker pool, skipping dao tests: %s", err)
		return
	}

	if err = pool.Client.Ping(); err != nil {
		log.Printf("could not connect to docker, skipping dao tests: %s", err)
		return
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_PASSWORD=secret",
		"POSTGRES_DB=hadir_test",
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}

	if err = pool.Retry(func() error {
		dsn := fmt.Sprintf(
			"host=localhost port=%s user=postgres password=secret dbname=hadir_test sslmode=disable",
			resource.GetPort("5432/tcp"),
		)

		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		return err
	}); err != nil {
		log.Fatalf("could not connect to postgres container: %s", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %s", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge postgres container: %s", err)
	}

	os.Exit(code)
}

func mustInsertEvent(t *testing.T, name string) Event {
	t.Helper()

	event, err := NewEventDAO(testDB).Insert(context.Background(), Event{Name: name})
	require.NoError(t, err)

	return event
}

func mustInsertSession(t *testing.T, eventID uint, name string) Session {
	t.Helper()

	session, err := NewSessionDAO(testDB).Insert(context.Background(), Session{
		EventID:        eventID,
		SessionName:    name,
		SessionType:    "talk",
		AttendanceMode: "All",
	})
	require.NoError(t, err)

	return session
}

func TestAttendanceDAO_OrdersByTimestampThenID(t *testing.T) {
	if testDB == nil {
		t.Skip("docker not available")
	}

	event := mustInsertEvent(t, "conf")
	session := mustInsertSession(t, event.ID, "keynote")
	dao := NewAttendanceDAO(testDB)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// Insert out of chronological order; two records share a timestamp so the
	// id tiebreak is observable.
	later, err := dao.Insert(context.Background(), AttendanceRecord{
		EventID: event.ID, SessionID: session.ID, UserID: "u1", Action: "check-out", Timestamp: base.Add(time.Hour),
	})
	require.NoError(t, err)
	first, err := dao.Insert(context.Background(), AttendanceRecord{
		EventID: event.ID, SessionID: session.ID, UserID: "u1", Action: "check-in", Timestamp: base,
	})
	require.NoError(t, err)
	tied, err := dao.Insert(context.Background(), AttendanceRecord{
		EventID: event.ID, SessionID: session.ID, UserID: "u2", Action: "check-in", Timestamp: base.Add(time.Hour),
	})
	require.NoError(t, err)

	records, err := dao.FindBySessionID(context.Background(), session.ID)

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, later.ID, records[1].ID)
	assert.Equal(t, tied.ID, records[2].ID)
}

func TestAttendanceDAO_FindBySessionAndUser(t *testing.T) {
	if testDB == nil {
		t.Skip("docker not available")
	}

	event := mustInsertEvent(t, "conf")
	session := mustInsertSession(t, event.ID, "workshop")
	dao := NewAttendanceDAO(testDB)

	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := dao.Insert(context.Background(), AttendanceRecord{
		EventID: event.ID, SessionID: session.ID, UserID: "u1", Action: "check-in", Timestamp: ts,
	})
	require.NoError(t, err)
	_, err = dao.Insert(context.Background(), AttendanceRecord{
		EventID: event.ID, SessionID: session.ID, UserID: "u2", Action: "check-in", Timestamp: ts,
	})
	require.NoError(t, err)

	records, err := dao.FindBySessionAndUser(context.Background(), session.ID, "u1")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "u1", records[0].UserID)
}

func TestParticipantDAO_DuplicateQRID(t *testing.T) {
	if testDB == nil {
		t.Skip("docker not available")
	}

	event := mustInsertEvent(t, "conf")
	otherEvent := mustInsertEvent(t, "other conf")
	dao := NewParticipantDAO(testDB)

	_, err := dao.Insert(context.Background(), Participant{
		EventID: event.ID, Name: "Amal", QRID: "user_dup",
	})
	require.NoError(t, err)

	_, err = dao.Insert(context.Background(), Participant{
		EventID: event.ID, Name: "Badr", QRID: "user_dup",
	})
	assert.ErrorIs(t, err, ErrDuplicateQRID)

	// The same token under a different event is a different participant.
	_, err = dao.Insert(context.Background(), Participant{
		EventID: otherEvent.ID, Name: "Badr", QRID: "user_dup",
	})
	assert.NoError(t, err)
}
