package xlsxexport

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"apprev/internal/domain"
	"apprev/internal/validator"
)

// Sheet names of the exported error-log workbook.
const (
	SheetErrors       = "Validation Errors"
	SheetMissing      = "Missing Fields"
	SheetRequirements = "Requirement Findings"
	SheetAddresses    = "Address Consistency"
)

// ErrorLog bundles everything the exported workbook renders.
type ErrorLog struct {
	ReportName      string
	Errors          []validator.ErrorEntry
	Missing         []validator.MissingField
	Findings        []domain.RequirementFinding
	Inconsistencies []validator.AddressInconsistency
}

// Build renders the error log into an XLSX workbook and returns its
// bytes, ready for upload.
func Build(logData *ErrorLog) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: header style: %w", err)
	}

	if err := writeSheet(f, headerStyle, SheetErrors,
		[]string{"Section", "Field", "Message"},
		func() [][]any {
			rows := make([][]any, 0, len(logData.Errors))
			for _, e := range logData.Errors {
				rows = append(rows, []any{e.Section, e.Field, e.Message})
			}
			return rows
		}()); err != nil {
		return nil, err
	}

	if err := writeSheet(f, headerStyle, SheetMissing,
		[]string{"Section", "Field"},
		func() [][]any {
			rows := make([][]any, 0, len(logData.Missing))
			for _, m := range logData.Missing {
				rows = append(rows, []any{m.Section, m.Field})
			}
			return rows
		}()); err != nil {
		return nil, err
	}

	if err := writeSheet(f, headerStyle, SheetRequirements,
		[]string{"Check", "Requirement", "Status", "Detail"},
		func() [][]any {
			rows := make([][]any, 0, len(logData.Findings))
			for _, r := range logData.Findings {
				rows = append(rows, []any{string(r.CheckType), r.Name, r.Status, r.Detail})
			}
			return rows
		}()); err != nil {
		return nil, err
	}

	if err := writeSheet(f, headerStyle, SheetAddresses,
		[]string{"Comparable", "Sales Grid Address", "Location Map Address", "Photo Address"},
		func() [][]any {
			rows := make([][]any, 0, len(logData.Inconsistencies))
			for _, a := range logData.Inconsistencies {
				rows = append(rows, []any{a.Comparable, a.SalesGrid, a.LocationMap, a.ComparablePhoto})
			}
			return rows
		}()); err != nil {
		return nil, err
	}

	// excelize names its first sheet "Sheet1"; the errors sheet takes
	// its place.
	if err := f.SetSheetName("Sheet1", SheetErrors); err != nil {
		return nil, fmt.Errorf("xlsxexport: rename default sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsxexport: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet creates a sheet (unless it is the default one), writes the
// styled header, and fills the data rows.
func writeSheet(f *excelize.File, headerStyle int, name string, headers []string, rows [][]any) error {
	if name != SheetErrors {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsxexport: new sheet %s: %w", name, err)
		}
	} else {
		name = "Sheet1"
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("xlsxexport: header cell: %w", err)
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("xlsxexport: header value: %w", err)
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("xlsxexport: header style: %w", err)
		}
	}

	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("xlsxexport: data cell: %w", err)
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return fmt.Errorf("xlsxexport: data value: %w", err)
			}
		}
	}
	return nil
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a report name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the exported workbook.
// Format: {sanitized_report_name}_error_log_{YYYY-MM-DD}.xlsx
func BuildFilename(reportName string) string {
	sanitized := SanitizeFilename(reportName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_error_log_%s.xlsx", sanitized, date)
}
