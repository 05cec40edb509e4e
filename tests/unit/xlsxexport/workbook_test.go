package xlsxexport_test

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"apprev/internal/domain"
	"apprev/internal/validator"
	"apprev/internal/xlsxexport"
)

func TestBuild_AllSheetsPresent(t *testing.T) {
	data, err := xlsxexport.Build(&xlsxexport.ErrorLog{
		ReportName: "1004 - 123 Main St",
		Errors: []validator.ErrorEntry{
			{Section: "Contract", Field: "Contract Price $", Message: "'Contract Price $' should not be blank."},
		},
		Missing: []validator.MissingField{
			{Section: "Site", Field: "Zoning Compliance"},
		},
		Findings: []domain.RequirementFinding{
			{CheckType: domain.CheckState, Name: "Smoke/CO detector comment", Status: "Not Fulfilled", Detail: "No comment found."},
		},
		Inconsistencies: []validator.AddressInconsistency{
			{Comparable: "Comp #1", SalesGrid: "123 Main St", LocationMap: "123 Main Street"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, xlsxexport.SheetErrors)
	assert.Contains(t, sheets, xlsxexport.SheetMissing)
	assert.Contains(t, sheets, xlsxexport.SheetRequirements)
	assert.Contains(t, sheets, xlsxexport.SheetAddresses)

	header, err := f.GetCellValue(xlsxexport.SheetErrors, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Section", header)

	msg, err := f.GetCellValue(xlsxexport.SheetErrors, "C2")
	require.NoError(t, err)
	assert.Equal(t, "'Contract Price $' should not be blank.", msg)

	status, err := f.GetCellValue(xlsxexport.SheetRequirements, "C2")
	require.NoError(t, err)
	assert.Equal(t, "Not Fulfilled", status)

	addr, err := f.GetCellValue(xlsxexport.SheetAddresses, "C2")
	require.NoError(t, err)
	assert.Equal(t, "123 Main Street", addr)
}

func TestBuild_EmptyLog(t *testing.T) {
	data, err := xlsxexport.Build(&xlsxexport.ErrorLog{ReportName: "empty"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	value, err := f.GetCellValue(xlsxexport.SheetErrors, "A2")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "1004_-_123_Main_St", xlsxexport.SanitizeFilename("1004 - 123 Main St"))
	assert.Equal(t, "report_pdf", xlsxexport.SanitizeFilename("report.pdf"))
	assert.Equal(t, "already-clean_name", xlsxexport.SanitizeFilename("already-clean_name"))

	long := xlsxexport.SanitizeFilename(string(bytes.Repeat([]byte("a"), 150)))
	assert.Len(t, long, 100)
}

func TestBuildFilename(t *testing.T) {
	name := xlsxexport.BuildFilename("1004 - 123 Main St")
	expected := fmt.Sprintf("1004_-_123_Main_St_error_log_%s.xlsx", time.Now().Format("2006-01-02"))
	assert.Equal(t, expected, name)
}
