package reports

import (
	"github.com/xuri/excelize/v2"

	"dayflow/internal/domain/attendance"
)

const attendanceSheet = "Attendance"

// ExportAttendanceXLSX writes one row per record under a styled header.
func ExportAttendanceXLSX(records []attendance.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(attendanceSheet)
	if err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Employee ID", "Name", "Date", "Check In", "Check Out", "Status", "Work Hours"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(attendanceSheet, cell, v)
	}
	for r, rec := range records {
		values := []any{
			rec.EmployeeCode,
			rec.EmployeeName,
			rec.Date.Format("2006-01-02"),
			deref(rec.CheckIn),
			deref(rec.CheckOut),
			string(rec.Status),
			hours(rec.WorkHours),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(attendanceSheet, cell, v)
		}
	}

	_ = f.SetColWidth(attendanceSheet, "A", "A", 14)
	_ = f.SetColWidth(attendanceSheet, "B", "B", 28)
	_ = f.SetColWidth(attendanceSheet, "C", "F", 12)
	_ = f.SetColWidth(attendanceSheet, "G", "G", 12)

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetCellStyle(attendanceSheet, "A1", "G1", style)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func hours(value *float64) any {
	if value == nil {
		return ""
	}
	return *value
}

