package store

import (
	"fmt"

	"gorm.io/gorm"
	"mti.co.id/attreport/model"
)

// ClockingStore is the second-stage sink backed by mcg_clocking_tbl
// in the clocking database.
type ClockingStore struct {
	db *gorm.DB
}

func NewClockingStore(db *gorm.DB) *ClockingStore {
	return &ClockingStore{db: db}
}

func (s *ClockingStore) Insert(entry *model.ClockingEntry) error {
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to insert clocking entry: %w", err)
	}
	return nil
}
