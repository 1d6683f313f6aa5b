package model

import "time"

// ScanRecord is one badge read joined with the card holder's details,
// as returned by the transaction retrieval query. It is never written
// back to the source database.
type ScanRecord struct {
	CardNo        string    `gorm:"column:CardNo"`
	Name          string    `gorm:"column:Name"`
	Title         string    `gorm:"column:Title"`
	Position      string    `gorm:"column:Position"`
	Department    string    `gorm:"column:Department"`
	CardType      string    `gorm:"column:CardType"`
	Company       string    `gorm:"column:Company"`
	StaffNo       string    `gorm:"column:StaffNo"`
	TrDateTime    time.Time `gorm:"column:TrDateTime"`
	TrDate        time.Time `gorm:"column:TrDate"`
	DtTransaction string    `gorm:"column:dtTransaction"`
	TrController  string    `gorm:"column:TrController"`
	UnitNo        string    `gorm:"column:UnitNo"`

	// Stamped at retrieval time, carried into the staging row.
	InsertDate time.Time `gorm:"-"`
}
