package handlers

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// Workbook sheet names
const (
	SummarySheet     = "Summary"
	ProsecutorsSheet = "Prosecutors"
	StationsSheet    = "Stations"
	CasesSheet       = "Cases"
)

type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]interface{}
}

// GenerateReportWorkbook renders the report and cases into an xlsx file
func GenerateReportWorkbook(rep casework.Report, cases []models.Case) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close happens after the buffer is filled
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []sheet{summarySheet(rep), prosecutorsSheet(rep), stationsSheet(rep), casesSheet(cases)}
	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return nil, err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(SummarySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to find summary sheet: %w", err)
	}
	f.SetActiveSheet(index)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	for col, header := range s.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(s.name, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(s.name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range s.rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(s.name, cell, v); err != nil {
				return fmt.Errorf("failed to set cell %s on %s: %w", cell, s.name, err)
			}
		}
	}

	// freeze the header row
	return f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func summarySheet(rep casework.Report) sheet {
	s := sheet{
		name:    SummarySheet,
		headers: []string{"Metric", "Value"},
		widths:  []float64{30, 25},
		rows: [][]interface{}{
			{"Generated At", rep.GeneratedAt},
			{"Total Cases", rep.TotalCases},
			{"Open Cases", rep.OpenCases},
			{"Completed Cases", rep.CompletedCases},
			{"RTD Cases", rep.RTDCases},
			{"Urgent Cases", rep.UrgentCases},
			{"Unassigned Cases", rep.UnassignedCases},
			{"Total Prisoners", rep.TotalPrisoners},
			{"In Custody", rep.InCustody},
			{"Caseless Prisoners", rep.CaselessPrisoners},
		},
	}
	statuses := make([]string, 0, len(rep.ByStatus))
	for status := range rep.ByStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		s.rows = append(s.rows, []interface{}{"Status: " + status, rep.ByStatus[status]})
	}
	return s
}

func prosecutorsSheet(rep casework.Report) sheet {
	s := sheet{
		name:    ProsecutorsSheet,
		headers: []string{"Prosecutor ID", "Name", "Specialization", "Total Cases", "Active Load", "Max Cases", "Available", "Level"},
		widths:  []float64{15, 25, 20, 12, 12, 12, 12, 12},
	}
	for _, p := range rep.Prosecutors {
		available := "No"
		if p.Available {
			available = "Yes"
		}
		s.rows = append(s.rows, []interface{}{
			p.ProsecutorID, p.Name, p.Specialization, p.TotalCases, p.ActiveLoad, p.MaxCases, available, p.Level,
		})
	}
	return s
}

func stationsSheet(rep casework.Report) sheet {
	s := sheet{
		name:    StationsSheet,
		headers: []string{"Station", "Name", "Cases", "In Custody", "Caseless Prisoners"},
		widths:  []float64{15, 20, 10, 12, 20},
	}
	for _, st := range rep.Stations {
		s.rows = append(s.rows, []interface{}{st.Station, st.Name, st.Cases, st.InCustody, st.CaselessPrisoners})
	}
	return s
}

func casesSheet(cases []models.Case) sheet {
	s := sheet{
		name: CasesSheet,
		headers: []string{
			"Case Number", "Suspect", "Crime Type", "Station", "Status", "Custody",
			"Prosecutor", "Arrest Date", "Article 38 Deadline", "Prisoner ID", "Updated At",
		},
		widths: []float64{22, 25, 12, 12, 20, 10, 25, 14, 20, 22, 22},
	}
	for _, c := range cases {
		s.rows = append(s.rows, []interface{}{
			c.CaseNumber, c.SuspectName, c.CrimeType, casework.StationName(c.Station), string(c.Status),
			string(c.CustodyType), c.AssignedProsecutorName, c.ArrestDate, c.Article38Deadline, c.PrisonerID, c.UpdatedAt,
		})
	}
	return s
}
