package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"mti.co.id/attreport/model"
)

// AttendanceStore is the staging sink backed by tblAttendanceReport.
type AttendanceStore struct {
	db *gorm.DB
}

func NewAttendanceStore(db *gorm.DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

func (s *AttendanceStore) Exists(staffNo string, trDateTime time.Time, clockEvent string) (bool, error) {
	var count int64
	err := s.db.Model(&model.AttendanceRecord{}).
		Where("StaffNo = ? AND TrDateTime = ? AND ClockEvent = ?", staffNo, trDateTime, clockEvent).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check attendance row: %w", err)
	}
	return count > 0, nil
}

func (s *AttendanceStore) Insert(rec *model.AttendanceRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to insert attendance row: %w", err)
	}
	return nil
}

func (s *AttendanceStore) Pending(staffPrefix string) ([]model.AttendanceRecord, error) {
	var rows []model.AttendanceRecord
	err := s.db.
		Where("Processed = ? AND StaffNo LIKE ?", model.StatusPending, staffPrefix+"%").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending attendance rows: %w", err)
	}
	return rows, nil
}

func (s *AttendanceStore) MarkForwarded(staffNo string, trDateTime time.Time) error {
	return s.setProcessed(staffNo, trDateTime, model.StatusForwarded)
}

func (s *AttendanceStore) MarkIgnored(staffNo string, trDateTime time.Time) error {
	return s.setProcessed(staffNo, trDateTime, model.StatusIgnored)
}

func (s *AttendanceStore) setProcessed(staffNo string, trDateTime time.Time, status int32) error {
	err := s.db.Model(&model.AttendanceRecord{}).
		Where("StaffNo = ? AND TrDateTime = ?", staffNo, trDateTime).
		Update("Processed", status).Error
	if err != nil {
		return fmt.Errorf("failed to update processed flag: %w", err)
	}
	return nil
}
