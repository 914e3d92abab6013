package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayslip lays out a single-page A4 payslip for r.
func RenderPayslip(r Record, currency string) ([]byte, error) {
	period := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", r.EmployeeCode, period.Format("2006-01")), true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", r.EmployeeName, r.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period.Format("January 2006")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", r.Status))
	if r.PaidOn != nil {
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Paid on: %s", r.PaidOn.Format("2006-01-02")))
	}
	pdf.Ln(10)

	lines := []struct {
		label  string
		amount string
	}{
		{"Basic salary", r.BasicSalary.StringFixed(2)},
		{"Allowances", r.Allowances.StringFixed(2)},
		{"Deductions", r.Deductions.StringFixed(2)},
	}
	for _, line := range lines {
		pdf.CellFormat(80, 8, line.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, line.amount+" "+currency, "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 8, "Net salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, r.NetSalary.StringFixed(2)+" "+currency, "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
