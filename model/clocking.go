package model

import "time"

// ClockingEntry is the second-stage representation consumed by the
// clocking system. FunctionKey is 0 for a clock in and 1 for a clock
// out; no other events reach this table. Entries are insert-only.
type ClockingEntry struct {
	TerminalID    string    `gorm:"column:terminal_id"`
	FingerprintID string    `gorm:"column:finger_print_id"`
	DateLog       time.Time `gorm:"column:date_log"`
	TimeLog       string    `gorm:"column:time_log"`
	FunctionKey   int32     `gorm:"column:function_key"`
	DateTime      time.Time `gorm:"column:date_time"`
	StatusClock   string    `gorm:"column:status_clock"`
	InsertDate    time.Time `gorm:"column:insert_date"`
}

func (ClockingEntry) TableName() string {
	return "mcg_clocking_tbl"
}
