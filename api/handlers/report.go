package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/config"
)

// XLSXContentType is the media type of the report export
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Report handles report-related requests
type Report struct {
	State State
	Now   func() time.Time
}

// ReportHandler returns the office-wide report
func (re Report) ReportHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, casework.BuildReport(re.State.Current(), re.Now()))
}

// ExportReportHandler returns the report and the full case list as an xlsx workbook
func (re Report) ExportReportHandler(w http.ResponseWriter, r *http.Request) {
	now := re.Now()
	cols := re.State.Current()
	b, err := GenerateReportWorkbook(casework.BuildReport(cols, now), cols.Cases)
	if err != nil {
		config.ErrorStatus("failed to export report", http.StatusInternalServerError, w, err)
		return
	}

	filename := fmt.Sprintf("prosecution-report-%s.xlsx", casework.Today(now))
	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		zap.S().Errorw("failed to write report export", "error", err)
	}
}
