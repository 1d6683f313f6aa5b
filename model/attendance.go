package model

import "time"

// Processed flag values on tblAttendanceReport. A row moves
// Pending -> Forwarded on a successful clocking insert, or
// Pending -> Ignored when its event carries no clock action.
// Both transitions are one-way.
const (
	StatusPending   int32 = 0
	StatusForwarded int32 = 1
	StatusIgnored   int32 = 2
)

// AttendanceRecord is a classified scan persisted to the staging table.
// The idempotency key is (StaffNo, TrDateTime, ClockEvent); only the
// Processed flag is ever mutated after insert.
type AttendanceRecord struct {
	CardNo        string    `gorm:"column:CardNo"`
	Name          string    `gorm:"column:Name"`
	Title         string    `gorm:"column:Title"`
	Position      string    `gorm:"column:Position"`
	Department    string    `gorm:"column:Department"`
	CardType      string    `gorm:"column:CardType"`
	Company       string    `gorm:"column:Company"`
	StaffNo       string    `gorm:"column:StaffNo"`
	TrDateTime    time.Time `gorm:"column:TrDateTime"`
	TrDate        time.Time `gorm:"column:TrDate;type:date"`
	DtTransaction string    `gorm:"column:dtTransaction"`
	TrController  string    `gorm:"column:TrController"`
	ClockEvent    string    `gorm:"column:ClockEvent"`
	UnitNo        string    `gorm:"column:UnitNo"`
	InsertedDate  time.Time `gorm:"column:InsertedDate"`
	Processed     int32     `gorm:"column:Processed"`
}

func (AttendanceRecord) TableName() string {
	return "tblAttendanceReport"
}
