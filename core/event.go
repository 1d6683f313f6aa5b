package core

// ClockEvent is the classification assigned to a single scan. The
// string values are persisted verbatim in the staging table.
type ClockEvent string

const (
	EventClockIn      ClockEvent = "Clock In"
	EventClockOut     ClockEvent = "Clock Out"
	EventMidScan      ClockEvent = "Mid Scans"
	EventOutsideRange ClockEvent = "Outside Range"
	EventNoShiftData  ClockEvent = "No Shift Data"
)

// FunctionKey maps an event to the clocking system's function code:
// 0 for clock in, 1 for clock out. ok is false for every other event;
// those rows never reach the clocking table.
func (e ClockEvent) FunctionKey() (key int32, ok bool) {
	switch e {
	case EventClockIn:
		return 0, true
	case EventClockOut:
		return 1, true
	}
	return 0, false
}

// Actionable reports whether the event is a real clock in/out, as
// opposed to noise (mid scans, outside range).
func (e ClockEvent) Actionable() bool {
	return e == EventClockIn || e == EventClockOut
}
