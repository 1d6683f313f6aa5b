package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"mti.co.id/attreport/model"
)

const sheetName = "Attendance"

var headers = []string{
	"Card No", "Name", "Title", "Position", "Department", "Card Type",
	"Company", "Staff No", "Transaction Date Time", "Transaction Date",
	"Transaction Status", "Controller", "Clock Event", "Unit No",
	"Inserted Date",
}

// WriteReport writes one row per classified record into a single-sheet
// workbook at path.
func WriteReport(path string, records []model.AttendanceRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header %s: %w", h, err)
		}
	}

	for i := range records {
		rec := &records[i]
		values := []interface{}{
			rec.CardNo, rec.Name, rec.Title, rec.Position, rec.Department,
			rec.CardType, rec.Company, rec.StaffNo,
			rec.TrDateTime.Format("2006-01-02 15:04:05"),
			rec.TrDate.Format("2006-01-02"),
			rec.DtTransaction, rec.TrController, rec.ClockEvent, rec.UnitNo,
			rec.InsertedDate.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

// ReportFileName reflects the requested range: a single date, an
// explicit range, or a timestamped name for the rolling 24-hour mode.
func ReportFileName(dateArg, startArg, endArg string, now time.Time) string {
	switch {
	case dateArg != "":
		return fmt.Sprintf("attreport_%s.xlsx", dateArg)
	case startArg != "" || endArg != "":
		start := startArg
		if start == "" {
			start = endArg
		}
		end := endArg
		if end == "" {
			end = startArg
		}
		return fmt.Sprintf("attreport_%s_to_%s.xlsx", start, end)
	default:
		return fmt.Sprintf("attreport_24h_%s.xlsx", now.Format("20060102_150405"))
	}
}
