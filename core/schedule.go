package core

import (
	"fmt"
	"time"

	"mti.co.id/attreport/model"
	"mti.co.id/attreport/utils"
)

// ScheduleSource looks up an employee's base working-hours row. The
// lookup is per employee, not per employee per date: the same base
// schedule is assumed to apply to whatever date is being classified.
// A nil row (with nil error) means no schedule exists.
type ScheduleSource interface {
	TimeSchedule(staffNo string) (*model.TimeSchedule, error)
}

// ScheduleWindow is the resolved expected shift for one employee on
// one calendar date. End is always strictly after Start; overnight
// shifts have End on the following day.
type ScheduleWindow struct {
	Start time.Time
	End   time.Time
}

// ManualWindow is a process-wide fixed schedule that bypasses the
// per-employee lookup entirely when configured.
type ManualWindow struct {
	TimeIn  string
	TimeOut string
}

// Resolver turns (employee, date) into a schedule window. Lookups are
// memoized per staff number for the lifetime of the resolver, which is
// safe because the underlying lookup is date-independent; a resolver
// must not outlive a single batch run.
type Resolver struct {
	source ScheduleSource
	manual *ManualWindow
	cache  map[string]*model.TimeSchedule
}

func NewResolver(source ScheduleSource, manual *ManualWindow) *Resolver {
	return &Resolver{
		source: source,
		manual: manual,
		cache:  make(map[string]*model.TimeSchedule),
	}
}

// Resolve returns the expected window for the employee on the given
// date, or nil when no schedule data exists. Missing or partially null
// schedule rows resolve to nil, not to a zero window.
func (r *Resolver) Resolve(staffNo string, date time.Time) (*ScheduleWindow, error) {
	base := utils.DateOf(date)

	if r.manual != nil {
		return buildWindow(base, r.manual.TimeIn, r.manual.TimeOut)
	}

	ts, cached := r.cache[staffNo]
	if !cached {
		var err error
		ts, err = r.source.TimeSchedule(staffNo)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch time schedule for %s: %w", staffNo, err)
		}
		r.cache[staffNo] = ts
	}

	if ts == nil || ts.TimeIn == nil || ts.TimeOut == nil {
		return nil, nil
	}
	return buildWindow(base, *ts.TimeIn, *ts.TimeOut)
}

func buildWindow(base time.Time, timeIn, timeOut string) (*ScheduleWindow, error) {
	start, err := utils.ParseTimeOnDate(base, timeIn)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled start %q: %w", timeIn, err)
	}
	end, err := utils.ParseTimeOnDate(base, timeOut)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled end %q: %w", timeOut, err)
	}

	// Scheduled end at or before the start means the shift crosses
	// midnight; the end belongs to the next day.
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	return &ScheduleWindow{Start: start, End: end}, nil
}
