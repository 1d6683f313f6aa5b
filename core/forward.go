package core

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"mti.co.id/attreport/model"
	"mti.co.id/attreport/utils"
)

// StatusClockNew is the fixed status literal the clocking system
// expects on freshly inserted entries.
const StatusClockNew = "NEW"

// ClockingStore is the second-stage sink.
type ClockingStore interface {
	Insert(entry *model.ClockingEntry) error
}

// ForwardResult is the fold of one forwarding pass.
type ForwardResult struct {
	Selected  int
	Forwarded int
	Ignored   int
	Failures  []RowFailure
}

// Forwarder pushes pending staging rows into the clocking table.
// Clock in/out rows become clocking entries and flip to forwarded;
// every other pending row is marked ignored so it is never selected
// again. Both transitions are one-way.
type Forwarder struct {
	Staging     StagingStore
	Clocking    ClockingStore
	Log         *zap.Logger
	StaffPrefix string

	Now func() time.Time
}

func (f *Forwarder) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f *Forwarder) Forward() (*ForwardResult, error) {
	rows, err := f.Staging.Pending(f.StaffPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending attendance rows: %w", err)
	}

	result := &ForwardResult{Selected: len(rows)}

	for i := range rows {
		row := rows[i]

		key, ok := ClockEvent(row.ClockEvent).FunctionKey()
		if !ok {
			if err := f.Staging.MarkIgnored(row.StaffNo, row.TrDateTime); err != nil {
				f.Log.Error("failed to mark row ignored",
					zap.String("staff_no", row.StaffNo),
					zap.Time("tr_datetime", row.TrDateTime),
					zap.Error(err))
				result.Failures = append(result.Failures, RowFailure{StaffNo: row.StaffNo, TrDateTime: row.TrDateTime, Err: err})
				continue
			}
			f.Log.Debug("ignoring non-clocking row",
				zap.String("staff_no", row.StaffNo),
				zap.String("clock_event", row.ClockEvent))
			result.Ignored++
			continue
		}

		entry := model.ClockingEntry{
			TerminalID:    row.UnitNo,
			FingerprintID: row.StaffNo,
			DateLog:       utils.DateOf(row.TrDate),
			TimeLog:       row.TrDateTime.Format("15:04"),
			FunctionKey:   key,
			DateTime:      row.TrDateTime,
			StatusClock:   StatusClockNew,
			InsertDate:    f.now(),
		}

		if err := f.Clocking.Insert(&entry); err != nil {
			f.Log.Error("clocking insert failed",
				zap.String("staff_no", row.StaffNo),
				zap.Time("tr_datetime", row.TrDateTime),
				zap.Error(err))
			result.Failures = append(result.Failures, RowFailure{StaffNo: row.StaffNo, TrDateTime: row.TrDateTime, Err: err})
			continue
		}

		// The clocking row is committed at this point. A failure to
		// flip the flag leaves the row pending and re-forwardable on
		// the next run; that window is only closed by the
		// single-writer contract.
		if err := f.Staging.MarkForwarded(row.StaffNo, row.TrDateTime); err != nil {
			f.Log.Error("failed to mark row forwarded",
				zap.String("staff_no", row.StaffNo),
				zap.Time("tr_datetime", row.TrDateTime),
				zap.Error(err))
			result.Failures = append(result.Failures, RowFailure{StaffNo: row.StaffNo, TrDateTime: row.TrDateTime, Err: err})
			continue
		}

		result.Forwarded++
	}

	return result, nil
}
