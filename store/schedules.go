package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"mti.co.id/attreport/model"
)

// ScheduleStore looks up per-employee base working hours.
type ScheduleStore struct {
	db *gorm.DB
}

func NewScheduleStore(db *gorm.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

// TimeSchedule returns the employee's single schedule row, or nil
// when none exists.
func (s *ScheduleStore) TimeSchedule(staffNo string) (*model.TimeSchedule, error) {
	var ts model.TimeSchedule
	err := s.db.Where("StaffNo = ?", staffNo).Limit(1).Take(&ts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query time schedule: %w", err)
	}
	return &ts, nil
}
