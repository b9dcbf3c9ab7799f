// Package export renders approved-timesheet reports as spreadsheet files.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

const (
	DetailSheet  = "Timesheets"
	SummarySheet = "Summary"

	timestampLayout = "2006-01-02 15:04"
)

var detailHeader = []any{
	"Contractor", "Client", "Site Address", "Week Start", "Week End",
	"Basic Hours", "Saturday Hours", "Sunday Hours", "Total Hours",
	"Hourly Rate", "Total Pay", "Submitted On", "Approved On",
}

var summaryHeader = []any{
	"Contractor", "Basic Hours", "Saturday Hours", "Sunday Hours", "Total Hours",
}

var _ ports.ReportWriter = (*XLSXWriter)(nil)

// XLSXWriter writes an ApprovedReport as a two-sheet Excel workbook.
type XLSXWriter struct{}

func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

func (w *XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (w *XLSXWriter) FileExtension() string {
	return "xlsx"
}

func (w *XLSXWriter) Write(out io.Writer, report ports.ApprovedReport) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", DetailSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	detailRows := make([][]any, 0, len(report.Details))
	for _, t := range report.Details {
		detailRows = append(detailRows, detailRow(t))
	}
	if err := writeSheet(f, DetailSheet, detailHeader, detailRows, bold); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	summaryRows := make([][]any, 0, len(report.Summary))
	for _, s := range report.Summary {
		summaryRows = append(summaryRows, []any{
			s.Contractor,
			number(s.BasicHours),
			number(s.SaturdayHours),
			number(s.SundayHours),
			number(s.TotalHours),
		})
	}
	if err := writeSheet(f, SummarySheet, summaryHeader, summaryRows, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}

func detailRow(t *domain.Timesheet) []any {
	approvedOn := ""
	if t.ApprovedOn != nil {
		approvedOn = t.ApprovedOn.UTC().Format(timestampLayout)
	}
	return []any{
		t.ContractorName,
		t.Client,
		t.SiteAddress,
		t.WeekStart.Format(domain.DateLayout),
		t.WeekEnd.Format(domain.DateLayout),
		number(t.BasicHours),
		number(t.SaturdayHours),
		number(t.SundayHours),
		number(t.TotalHours),
		number(t.HourlyRate),
		number(t.TotalPay),
		t.SubmittedOn.UTC().Format(timestampLayout),
		approvedOn,
	}
}

// number converts to float64 for the spreadsheet cell. Totals were already
// computed exactly; the cell is for display.
func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// FileName returns the download name for a report generated at t.
func FileName(t time.Time, ext string) string {
	return fmt.Sprintf("approved_timesheets_%s.%s", t.UTC().Format("20060102"), ext)
}
