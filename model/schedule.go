package model

// TimeSchedule is an employee's base working-hours row. TimeIn/TimeOut
// are time-of-day strings ("08:00:00", sometimes with a fractional
// part); either may be null for employees without a resolvable shift.
type TimeSchedule struct {
	StaffNo string  `gorm:"column:StaffNo"`
	TimeIn  *string `gorm:"column:TimeIn"`
	TimeOut *string `gorm:"column:TimeOut"`
}

func (TimeSchedule) TableName() string {
	return "CardDBTimeSchedule"
}
