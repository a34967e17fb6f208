package handlers_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/linesmerrill/prosecution-case-api/api/handlers"
	"github.com/linesmerrill/prosecution-case-api/casework"
)

func TestReport_ReportHandler(t *testing.T) {
	ta := newTestApp(t)

	rr := ta.do(t, "GET", "/api/v1/reports", leadEmail, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var rep casework.Report
	decode(t, rr, &rep)
	assert.Equal(t, 6, rep.TotalCases)
	assert.Equal(t, 1, rep.CompletedCases)
	assert.Equal(t, 5, rep.OpenCases)
	assert.Equal(t, 2, rep.UnassignedCases)
	assert.Equal(t, 3, rep.InCustody)
	assert.Equal(t, 2, rep.CaselessPrisoners)
	assert.Len(t, rep.Stations, len(casework.Stations))
}

func TestReport_ReportHandlerForbiddenForPolice(t *testing.T) {
	ta := newTestApp(t)

	rr := ta.do(t, "GET", "/api/v1/reports", policeEmail, nil)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestReport_ExportReportHandler(t *testing.T) {
	ta := newTestApp(t)

	rr := ta.do(t, "GET", "/api/v1/reports/export", adminEmail, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, handlers.XLSXContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="prosecution-report-2024-03-10.xlsx"`, rr.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		handlers.SummarySheet, handlers.ProsecutorsSheet, handlers.StationsSheet, handlers.CasesSheet,
	}, f.GetSheetList())
	assert.Equal(t, handlers.SummarySheet, f.GetSheetName(f.GetActiveSheetIndex()))

	rows, err := f.GetRows(handlers.CasesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 7)
	assert.Equal(t, "Case Number", rows[0][0])

	total, err := f.GetCellValue(handlers.SummarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "6", total)

	prosecutors, err := f.GetRows(handlers.ProsecutorsSheet)
	require.NoError(t, err)
	assert.Len(t, prosecutors, 8)
}
