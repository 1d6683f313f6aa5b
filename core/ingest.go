package core

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"mti.co.id/attreport/model"
)

// TransactionFilter narrows the retrieval query. Controllers empty
// means no controller restriction. Start/End are inclusive at second
// precision.
type TransactionFilter struct {
	Start       time.Time
	End         time.Time
	Controllers []string
	StaffPrefix string
	Status      string
}

// TransactionSource retrieves raw badge scans from the access control
// database.
type TransactionSource interface {
	Transactions(f TransactionFilter) ([]model.ScanRecord, error)
}

// StagingStore is the first-stage sink holding classified records
// pending forwarding.
type StagingStore interface {
	// Exists checks the idempotency key (staff no, scan time, event).
	Exists(staffNo string, trDateTime time.Time, clockEvent string) (bool, error)
	Insert(rec *model.AttendanceRecord) error
	// Pending returns rows still carrying StatusPending for the staff
	// population.
	Pending(staffPrefix string) ([]model.AttendanceRecord, error)
	MarkForwarded(staffNo string, trDateTime time.Time) error
	MarkIgnored(staffNo string, trDateTime time.Time) error
}

// RowFailure records a single row that could not be persisted or
// forwarded. Row failures never abort a batch.
type RowFailure struct {
	StaffNo    string
	TrDateTime time.Time
	Err        error
}

// ClassifyResult holds the classified rows of one run. Records are
// sorted by (staff no, date, scan time) and exclude NoShiftData scans.
type ClassifyResult struct {
	Retrieved int
	Dropped   int
	Records   []model.AttendanceRecord
}

// ValidCount counts real clock in/out rows; the remainder are mid
// scans and outside-range noise.
func (r *ClassifyResult) ValidCount() int {
	n := 0
	for i := range r.Records {
		if ClockEvent(r.Records[i].ClockEvent).Actionable() {
			n++
		}
	}
	return n
}

func (r *ClassifyResult) InvalidCount() int {
	return len(r.Records) - r.ValidCount()
}

// PersistResult is the fold of the idempotent staging inserts.
type PersistResult struct {
	Inserted int
	Skipped  int
	Failures []RowFailure
}

// IngestResult aggregates one full ingestion pass.
type IngestResult struct {
	Retrieved  int
	Classified int
	Valid      int
	Invalid    int
	Persist    PersistResult
}

// Pipeline retrieves scans for a time range, classifies them and
// performs the idempotent first-stage persistence. It assumes it is
// the only writer to the staging table for the duration of a run;
// concurrent runs over overlapping ranges are not supported.
type Pipeline struct {
	Source      TransactionSource
	Resolver    *Resolver
	Staging     StagingStore
	Log         *zap.Logger
	Tolerance   time.Duration
	UseFILO     bool
	Controllers []string
	StaffPrefix string
	ValidStatus string

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Classify retrieves and classifies every qualifying scan in
// [start, end]. NoShiftData scans are dropped here: they belong to
// employees with no resolvable schedule and are not actionable.
func (p *Pipeline) Classify(start, end time.Time) (*ClassifyResult, error) {
	scans, err := p.Source.Transactions(TransactionFilter{
		Start:       start,
		End:         end,
		Controllers: p.Controllers,
		StaffPrefix: p.StaffPrefix,
		Status:      p.ValidStatus,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	sortScans(scans)

	insertDate := p.now()
	result := &ClassifyResult{Retrieved: len(scans)}

	if p.UseFILO {
		for _, g := range GroupScans(scans) {
			events := g.FILOEvents()
			for i := range g.Scans {
				result.Records = append(result.Records, toAttendanceRecord(&g.Scans[i], events[i], insertDate))
			}
		}
	} else {
		for i := range scans {
			win, err := p.Resolver.Resolve(scans[i].StaffNo, scans[i].TrDate)
			if err != nil {
				return nil, err
			}
			event := ClassifyTolerance(scans[i].TrDateTime, win, p.Tolerance)
			if event == EventNoShiftData {
				result.Dropped++
				continue
			}
			result.Records = append(result.Records, toAttendanceRecord(&scans[i], event, insertDate))
		}
	}

	sortRecords(result.Records)
	return result, nil
}

// Persist writes classified rows to the staging table, skipping any
// row whose (staff no, scan time, event) key already exists. The
// check-then-insert pair is not atomic; the single-writer assumption
// above is what keeps it safe.
func (p *Pipeline) Persist(records []model.AttendanceRecord) *PersistResult {
	result := &PersistResult{}

	for i := range records {
		rec := records[i]
		exists, err := p.Staging.Exists(rec.StaffNo, rec.TrDateTime, rec.ClockEvent)
		if err != nil {
			p.Log.Error("staging existence check failed",
				zap.String("staff_no", rec.StaffNo),
				zap.Time("tr_datetime", rec.TrDateTime),
				zap.Error(err))
			result.Failures = append(result.Failures, RowFailure{StaffNo: rec.StaffNo, TrDateTime: rec.TrDateTime, Err: err})
			continue
		}
		if exists {
			p.Log.Debug("skipping insert, staging row already exists",
				zap.String("staff_no", rec.StaffNo),
				zap.Time("tr_datetime", rec.TrDateTime),
				zap.String("clock_event", rec.ClockEvent))
			result.Skipped++
			continue
		}

		if err := p.Staging.Insert(&rec); err != nil {
			p.Log.Error("staging insert failed",
				zap.String("staff_no", rec.StaffNo),
				zap.Time("tr_datetime", rec.TrDateTime),
				zap.Error(err))
			result.Failures = append(result.Failures, RowFailure{StaffNo: rec.StaffNo, TrDateTime: rec.TrDateTime, Err: err})
			continue
		}
		result.Inserted++
	}

	return result
}

// Ingest composes Classify and Persist for one time range.
func (p *Pipeline) Ingest(start, end time.Time) (*IngestResult, error) {
	classified, err := p.Classify(start, end)
	if err != nil {
		return nil, err
	}

	persist := p.Persist(classified.Records)
	return &IngestResult{
		Retrieved:  classified.Retrieved,
		Classified: len(classified.Records),
		Valid:      classified.ValidCount(),
		Invalid:    classified.InvalidCount(),
		Persist:    *persist,
	}, nil
}

func toAttendanceRecord(scan *model.ScanRecord, event ClockEvent, insertDate time.Time) model.AttendanceRecord {
	return model.AttendanceRecord{
		CardNo:        scan.CardNo,
		Name:          scan.Name,
		Title:         scan.Title,
		Position:      scan.Position,
		Department:    scan.Department,
		CardType:      scan.CardType,
		Company:       scan.Company,
		StaffNo:       scan.StaffNo,
		TrDateTime:    scan.TrDateTime,
		TrDate:        scan.TrDate,
		DtTransaction: scan.DtTransaction,
		TrController:  scan.TrController,
		ClockEvent:    string(event),
		UnitNo:        scan.UnitNo,
		InsertedDate:  insertDate,
		Processed:     model.StatusPending,
	}
}

func sortScans(scans []model.ScanRecord) {
	sort.Slice(scans, func(i, j int) bool {
		if scans[i].StaffNo != scans[j].StaffNo {
			return scans[i].StaffNo < scans[j].StaffNo
		}
		if !scans[i].TrDate.Equal(scans[j].TrDate) {
			return scans[i].TrDate.Before(scans[j].TrDate)
		}
		return scans[i].TrDateTime.Before(scans[j].TrDateTime)
	})
}

func sortRecords(records []model.AttendanceRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].StaffNo != records[j].StaffNo {
			return records[i].StaffNo < records[j].StaffNo
		}
		if !records[i].TrDate.Equal(records[j].TrDate) {
			return records[i].TrDate.Before(records[j].TrDate)
		}
		return records[i].TrDateTime.Before(records[j].TrDateTime)
	})
}
