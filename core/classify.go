package core

import (
	"sort"
	"time"

	"mti.co.id/attreport/model"
	"mti.co.id/attreport/utils"
)

// ClassifyTolerance assigns an event to a single scan against its
// resolved schedule window. A nil window yields NoShiftData.
//
// The clock-in test runs before the clock-out test. For a shift short
// enough that a scan sits within tolerance of both boundaries, the
// scan is a clock in; that evaluation order is part of the contract.
func ClassifyTolerance(scanTime time.Time, win *ScheduleWindow, tolerance time.Duration) ClockEvent {
	if win == nil {
		return EventNoShiftData
	}

	if absDuration(scanTime.Sub(win.Start)) <= tolerance {
		return EventClockIn
	}

	if absDuration(scanTime.Sub(win.End)) <= tolerance || !scanTime.Before(win.End) {
		return EventClockOut
	}

	return EventOutsideRange
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// ScanGroup is one employee's scans for one calendar date, sorted by
// scan time ascending.
type ScanGroup struct {
	StaffNo string
	Date    time.Time
	Scans   []model.ScanRecord
}

type groupKey struct {
	StaffNo string
	Date    time.Time
}

// GroupScans splits scans into (employee, date) groups and sorts each
// group by timestamp so that first/last are well defined.
func GroupScans(scans []model.ScanRecord) []ScanGroup {
	keyed := utils.GroupBy(scans, func(s model.ScanRecord) groupKey {
		return groupKey{StaffNo: s.StaffNo, Date: utils.DateOf(s.TrDate)}
	})

	groups := make([]ScanGroup, 0, len(keyed))
	for key, recs := range keyed {
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].TrDateTime.Before(recs[j].TrDateTime)
		})
		groups = append(groups, ScanGroup{StaffNo: key.StaffNo, Date: key.Date, Scans: recs})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].StaffNo != groups[j].StaffNo {
			return groups[i].StaffNo < groups[j].StaffNo
		}
		return groups[i].Date.Before(groups[j].Date)
	})
	return groups
}

// FILOEvents assigns events to the group under first-in/last-out
// rules: the earliest scan is the clock in, the latest the clock out,
// anything between is a mid scan. A single-scan group is a lone clock
// in. The returned slice is aligned with g.Scans. Schedules are never
// consulted.
func (g *ScanGroup) FILOEvents() []ClockEvent {
	events := make([]ClockEvent, len(g.Scans))
	if len(events) == 0 {
		return events
	}

	for i := range events {
		events[i] = EventMidScan
	}
	events[0] = EventClockIn
	if len(events) > 1 {
		events[len(events)-1] = EventClockOut
	}
	return events
}
