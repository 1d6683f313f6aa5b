package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"mti.co.id/attreport/model"
)

func dayWindow(t *testing.T, date time.Time, timeIn, timeOut string) *ScheduleWindow {
	t.Helper()
	win, err := buildWindow(date, timeIn, timeOut)
	assert.NoError(t, err)
	return win
}

func TestClassifyTolerance(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	win := dayWindow(t, date, "08:00", "17:00")
	tolerance := 3600 * time.Second

	tests := []struct {
		name     string
		scan     time.Time
		expected ClockEvent
	}{
		{name: "On the hour", scan: date.Add(8 * time.Hour), expected: EventClockIn},
		{name: "Clock in lower boundary", scan: date.Add(7 * time.Hour), expected: EventClockIn},
		{name: "Clock in upper boundary", scan: date.Add(9 * time.Hour), expected: EventClockIn},
		{name: "One second below clock in window", scan: date.Add(7*time.Hour - time.Second), expected: EventOutsideRange},
		{name: "One second above clock in window", scan: date.Add(9*time.Hour + time.Second), expected: EventOutsideRange},
		{name: "Midday", scan: date.Add(12 * time.Hour), expected: EventOutsideRange},
		{name: "Clock out early boundary", scan: date.Add(16 * time.Hour), expected: EventClockOut},
		{name: "At scheduled end", scan: date.Add(17 * time.Hour), expected: EventClockOut},
		{name: "Well after scheduled end", scan: date.Add(23 * time.Hour), expected: EventClockOut},
		{name: "One second before clock out window", scan: date.Add(16*time.Hour - time.Second), expected: EventOutsideRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyTolerance(tt.scan, win, tolerance))
		})
	}
}

func TestClassifyToleranceNoWindow(t *testing.T) {
	scan := time.Date(2025, 3, 10, 23, 50, 0, 0, time.UTC)
	assert.Equal(t, EventNoShiftData, ClassifyTolerance(scan, nil, time.Hour))
}

func TestClassifyToleranceShortShiftPrefersClockIn(t *testing.T) {
	// 30-minute shift: a scan within tolerance of both boundaries must
	// classify as a clock in because that test runs first.
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	win := dayWindow(t, date, "08:00", "08:30")

	scan := date.Add(8*time.Hour + 15*time.Minute)
	assert.Equal(t, EventClockIn, ClassifyTolerance(scan, win, time.Hour))
}

func TestClassifyToleranceOvernight(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	win := dayWindow(t, date, "22:00", "06:00")
	tolerance := 3600 * time.Second

	assert.Equal(t, 11, win.End.Day())

	tests := []struct {
		name     string
		scan     time.Time
		expected ClockEvent
	}{
		{name: "Arrival before shift", scan: date.Add(21*time.Hour + 30*time.Minute), expected: EventClockIn},
		{name: "Early hours mid shift", scan: date.Add(25 * time.Hour), expected: EventOutsideRange},
		{name: "Near the shifted end", scan: date.Add(29*time.Hour + 30*time.Minute), expected: EventClockOut},
		{name: "After the shifted end", scan: date.Add(31 * time.Hour), expected: EventClockOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyTolerance(tt.scan, win, tolerance))
		})
	}
}

func scanAt(staffNo string, ts time.Time) model.ScanRecord {
	return model.ScanRecord{
		StaffNo:    staffNo,
		TrDateTime: ts,
		TrDate:     time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
	}
}

func TestFILOEvents(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		count    int
		expected []ClockEvent
	}{
		{name: "Single scan", count: 1, expected: []ClockEvent{EventClockIn}},
		{name: "Pair", count: 2, expected: []ClockEvent{EventClockIn, EventClockOut}},
		{
			name:  "Five scans",
			count: 5,
			expected: []ClockEvent{
				EventClockIn, EventMidScan, EventMidScan, EventMidScan, EventClockOut,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var scans []model.ScanRecord
			for i := 0; i < tt.count; i++ {
				scans = append(scans, scanAt("MTI001", date.Add(time.Duration(8+i)*time.Hour)))
			}
			g := ScanGroup{StaffNo: "MTI001", Date: date, Scans: scans}
			assert.Equal(t, tt.expected, g.FILOEvents())
		})
	}
}

func TestGroupScansSortsWithinGroup(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	nextDay := date.AddDate(0, 0, 1)

	scans := []model.ScanRecord{
		scanAt("MTI002", date.Add(17 * time.Hour)),
		scanAt("MTI001", date.Add(12 * time.Hour)),
		scanAt("MTI001", date.Add(8 * time.Hour)),
		scanAt("MTI001", nextDay.Add(8 * time.Hour)),
		scanAt("MTI001", date.Add(16 * time.Hour)),
	}

	groups := GroupScans(scans)
	assert.Len(t, groups, 3)

	assert.Equal(t, "MTI001", groups[0].StaffNo)
	assert.Equal(t, date, groups[0].Date)
	assert.Len(t, groups[0].Scans, 3)
	assert.Equal(t, date.Add(8*time.Hour), groups[0].Scans[0].TrDateTime)
	assert.Equal(t, date.Add(16*time.Hour), groups[0].Scans[2].TrDateTime)

	assert.Equal(t, "MTI001", groups[1].StaffNo)
	assert.Equal(t, nextDay, groups[1].Date)

	assert.Equal(t, "MTI002", groups[2].StaffNo)
}
