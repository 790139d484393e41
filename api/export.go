/*
export.go - Monthly payroll report download

PURPOSE:
  Renders the month's payroll table as a downloadable file, one row per
  employee plus a totals row. Two formats share the same row builder:
  - csv:  encoding/csv, UTF-8, streamed to the response
  - xlsx: excelize workbook, streamed to the response

COLUMNS:
  employee id, name, hourly rate, normal/overtime/holiday hours,
  normal/overtime/holiday pay, total earnings, advances, food expenses,
  grand total. All numbers rounded to 2 decimal places.

SEE ALSO:
  - payroll/calc.go: the figures behind the rows
  - server.go: route wiring
*/
package api

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/warp/payroll-engine/payroll"
)

var exportHeader = []string{
	"Employee ID", "Full Name", "Hourly Rate",
	"Normal Hours", "Overtime Hours", "Holiday Hours",
	"Normal Pay", "Overtime Pay", "Holiday Pay",
	"Total Earnings", "Advances", "Food Expenses", "Grand Total",
}

// ExportPayroll downloads the monthly payroll report.
// GET /api/admin/export?month=YYYY-MM&format=csv|xlsx
func (h *Handler) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	totals, err := h.Store.MonthlyTotalsAll(r.Context(), month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate payroll", err)
		return
	}
	summaries := payroll.ComputeAll(totals)

	switch format {
	case "csv":
		h.exportCSV(w, month, summaries)
	case "xlsx":
		h.exportXLSX(w, month, summaries)
	default:
		writeError(w, http.StatusBadRequest, "Unknown format (use csv or xlsx)", nil)
	}
}

func (h *Handler) exportCSV(w http.ResponseWriter, month string, summaries []payroll.PayrollSummary) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="payroll_%s.csv"`, month))

	cw := csv.NewWriter(w)
	cw.Write(exportHeader)
	for _, s := range summaries {
		cw.Write(csvRow(s))
	}
	cw.Write(csvTotalsRow(summaries))
	cw.Flush()
	if err := cw.Error(); err != nil {
		// Headers are gone already; the download is truncated.
		log.Printf("csv export for %s aborted: %v", month, err)
	}
}

func (h *Handler) exportXLSX(w http.ResponseWriter, month string, summaries []payroll.PayrollSummary) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll " + month
	index, err := f.NewSheet(sheet)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build workbook", err)
		return
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, header := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for rowIdx, s := range summaries {
		setNumberRow(f, sheet, rowIdx+2, s)
	}
	writeTotalsRow(f, sheet, len(summaries)+2, summaries)

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="payroll_%s.xlsx"`, month))
	if err := f.Write(w); err != nil {
		// Headers are gone already; the download is truncated.
		log.Printf("xlsx export for %s aborted: %v", month, err)
	}
}

func setNumberRow(f *excelize.File, sheet string, row int, s payroll.PayrollSummary) {
	values := []any{
		s.EmployeeID,
		s.FullName,
		money(s.HourlyRate),
		money(s.NormalHours),
		money(s.OvertimeHours),
		money(s.HolidayHours),
		money(s.NormalPay),
		money(s.OvertimePay),
		money(s.HolidayPay),
		money(s.TotalEarnings),
		money(s.Advances),
		money(s.FoodExpenses),
		money(s.GrandTotal),
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func writeTotalsRow(f *excelize.File, sheet string, row int, summaries []payroll.PayrollSummary) {
	t := sumSummaries(summaries)
	values := []any{
		"", "TOTAL", "",
		money(t.NormalHours),
		money(t.OvertimeHours),
		money(t.HolidayHours),
		money(t.NormalPay),
		money(t.OvertimePay),
		money(t.HolidayPay),
		money(t.TotalEarnings),
		money(t.Advances),
		money(t.FoodExpenses),
		money(t.GrandTotal),
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func csvRow(s payroll.PayrollSummary) []string {
	return []string{
		s.EmployeeID,
		s.FullName,
		format2(s.HourlyRate),
		format2(s.NormalHours),
		format2(s.OvertimeHours),
		format2(s.HolidayHours),
		format2(s.NormalPay),
		format2(s.OvertimePay),
		format2(s.HolidayPay),
		format2(s.TotalEarnings),
		format2(s.Advances),
		format2(s.FoodExpenses),
		format2(s.GrandTotal),
	}
}

func csvTotalsRow(summaries []payroll.PayrollSummary) []string {
	t := sumSummaries(summaries)
	return []string{
		"", "TOTAL", "",
		format2(t.NormalHours),
		format2(t.OvertimeHours),
		format2(t.HolidayHours),
		format2(t.NormalPay),
		format2(t.OvertimePay),
		format2(t.HolidayPay),
		format2(t.TotalEarnings),
		format2(t.Advances),
		format2(t.FoodExpenses),
		format2(t.GrandTotal),
	}
}

// sumSummaries folds the report rows into one totals row. The id, name
// and rate columns are meaningless in the fold and stay zero.
func sumSummaries(summaries []payroll.PayrollSummary) payroll.PayrollSummary {
	var t payroll.PayrollSummary
	for _, s := range summaries {
		t.NormalHours = t.NormalHours.Add(s.NormalHours)
		t.OvertimeHours = t.OvertimeHours.Add(s.OvertimeHours)
		t.HolidayHours = t.HolidayHours.Add(s.HolidayHours)
		t.NormalPay = t.NormalPay.Add(s.NormalPay)
		t.OvertimePay = t.OvertimePay.Add(s.OvertimePay)
		t.HolidayPay = t.HolidayPay.Add(s.HolidayPay)
		t.TotalEarnings = t.TotalEarnings.Add(s.TotalEarnings)
		t.Advances = t.Advances.Add(s.Advances)
		t.FoodExpenses = t.FoodExpenses.Add(s.FoodExpenses)
		t.GrandTotal = t.GrandTotal.Add(s.GrandTotal)
	}
	return t
}

func format2(d decimal.Decimal) string {
	return strconv.FormatFloat(money(d), 'f', 2, 64)
}
