package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// AttendanceRecord rows are append-only. Nothing in this DAO updates or
// deletes them; the read ordering (timestamp, then ID for ties and pending
// server timestamps) is the single ordering authority for reconciliation.
type AttendanceRecord struct {
	ID uint `gorm:"primaryKey"`

	EventID   uint `gorm:"not null"`
	SessionID uint `gorm:"index;not null"`

	UserID   string `gorm:"not null"` // participant QR token
	UserName string

	Action    string    `gorm:"not null"` // "check-in" or "check-out"
	Timestamp time.Time `gorm:"index;not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type AttendanceDAO struct {
	db *gorm.DB
}

func NewAttendanceDAO(db *gorm.DB) *AttendanceDAO {
	return &AttendanceDAO{
		db: db,
	}
}

func (d *AttendanceDAO) Insert(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error) {
	result := d.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		return AttendanceRecord{}, result.Error
	}

	return record, nil
}

func (d *AttendanceDAO) FindBySessionID(ctx context.Context, sessionID uint) ([]AttendanceRecord, error) {
	var records []AttendanceRecord

	result := d.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC, id ASC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (d *AttendanceDAO) FindBySessionAndUser(ctx context.Context, sessionID uint, userID string) ([]AttendanceRecord, error) {
	var records []AttendanceRecord

	result := d.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Order("timestamp ASC, id ASC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}
