package casework

import (
	"sort"
	"time"

	"github.com/linesmerrill/prosecution-case-api/models"
)

// CaselessPrisoner pairs a held prisoner with how long they have waited for a case
type CaselessPrisoner struct {
	models.Prisoner
	DaysInCustody int `json:"daysInCustody"`
}

// UrgentCase pairs an urgent case with the days left before its deadline
type UrgentCase struct {
	models.Case
	DaysRemaining int `json:"daysRemaining"`
}

// Dashboard is the landing view for a signed-in user
type Dashboard struct {
	User              models.User        `json:"user"`
	TotalCases        int                `json:"totalCases"`
	PendingCases      int                `json:"pendingCases"`
	CompletedCases    int                `json:"completedCases"`
	RTDCases          int                `json:"rtdCases"`
	UrgentCases       []UrgentCase       `json:"urgentCases"`
	CaselessPrisoners []CaselessPrisoner `json:"caselessPrisoners"`
	UnreadAlerts      []models.Alert     `json:"unreadAlerts"`
	ActiveLoad        *int               `json:"activeLoad,omitempty"`
	MaxActiveLoad     int                `json:"maxActiveLoad"`
}

func isPending(s models.CaseStatus) bool {
	switch s {
	case models.StatusSentToProsecution, models.StatusReceived, models.StatusAssigned,
		models.StatusInvestigating, models.StatusSentToCourt:
		return true
	}
	return false
}

// WithDaysInCustody annotates caseless prisoners, longest waiting first
func WithDaysInCustody(prisoners []models.Prisoner, asOf time.Time) []CaselessPrisoner {
	out := make([]CaselessPrisoner, 0, len(prisoners))
	for _, p := range prisoners {
		out = append(out, CaselessPrisoner{Prisoner: p, DaysInCustody: DaysInCustody(p, asOf)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysInCustody > out[j].DaysInCustody })
	return out
}

// WithDaysRemaining annotates urgent cases, closest deadline first
func WithDaysRemaining(cases []models.Case, asOf time.Time) []UrgentCase {
	out := make([]UrgentCase, 0, len(cases))
	for _, c := range cases {
		days, _ := DaysUntil(c.Article38Deadline, asOf)
		out = append(out, UrgentCase{Case: c, DaysRemaining: days})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysRemaining < out[j].DaysRemaining })
	return out
}

// BuildDashboard computes the dashboard over the cases the user can see
func BuildDashboard(user models.User, cols Collections, asOf time.Time) Dashboard {
	mine := VisibleCases(user, cols.Cases)

	d := Dashboard{
		User:          user,
		TotalCases:    len(mine),
		MaxActiveLoad: MaxActiveLoad,
	}
	var rtd []models.Case
	for _, c := range mine {
		if isPending(c.Status) {
			d.PendingCases++
		}
		if c.Status == models.StatusCompleted {
			d.CompletedCases++
		}
		if c.CustodyType == models.CustodyRTD {
			rtd = append(rtd, c)
		}
	}
	d.RTDCases = len(rtd)
	d.UrgentCases = WithDaysRemaining(UrgentCases(rtd, asOf), asOf)
	d.CaselessPrisoners = WithDaysInCustody(CaselessPrisoners(VisiblePrisoners(user, cols.Prisoners)), asOf)
	d.UnreadAlerts = UnreadAlerts(cols.Alerts)
	if d.UnreadAlerts == nil {
		d.UnreadAlerts = []models.Alert{}
	}

	if user.Role == models.RoleProsecutor && user.ProsecutorID != "" {
		load := ProsecutorLoad(cols.Cases, user.ProsecutorID)
		d.ActiveLoad = &load
	}
	return d
}

// StationSummary counts one station's cases and prisoners
type StationSummary struct {
	Station           string `json:"station"`
	Name              string `json:"name"`
	Cases             int    `json:"cases"`
	InCustody         int    `json:"inCustody"`
	CaselessPrisoners int    `json:"caselessPrisoners"`
}

// Report is the office-wide management view
type Report struct {
	GeneratedAt       string           `json:"generatedAt"`
	TotalCases        int              `json:"totalCases"`
	CompletedCases    int              `json:"completedCases"`
	OpenCases         int              `json:"openCases"`
	RTDCases          int              `json:"rtdCases"`
	UrgentCases       int              `json:"urgentCases"`
	UnassignedCases   int              `json:"unassignedCases"`
	TotalPrisoners    int              `json:"totalPrisoners"`
	InCustody         int              `json:"inCustody"`
	CaselessPrisoners int              `json:"caselessPrisoners"`
	ByStatus          map[string]int   `json:"byStatus"`
	Prosecutors       []Workload       `json:"prosecutors"`
	Stations          []StationSummary `json:"stations"`
}

// BuildReport computes the report over every case and prisoner
func BuildReport(cols Collections, asOf time.Time) Report {
	r := Report{
		GeneratedAt:     Timestamp(asOf),
		TotalCases:      len(cols.Cases),
		UrgentCases:     len(UrgentCases(cols.Cases, asOf)),
		UnassignedCases: len(UnassignedCases(cols.Cases)),
		TotalPrisoners:  len(cols.Prisoners),
		ByStatus:        map[string]int{},
		Prosecutors:     Workloads(cols.Users, cols.Cases),
	}
	for _, c := range cols.Cases {
		r.ByStatus[string(c.Status)]++
		if c.Status == models.StatusCompleted {
			r.CompletedCases++
		}
		if c.CustodyType == models.CustodyRTD {
			r.RTDCases++
		}
	}
	r.OpenCases = r.TotalCases - r.CompletedCases

	for _, p := range cols.Prisoners {
		if p.Status == models.PrisonerInCustody {
			r.InCustody++
		}
	}
	r.CaselessPrisoners = len(CaselessPrisoners(cols.Prisoners))

	for _, s := range Stations {
		sum := StationSummary{Station: s.ID, Name: s.Name}
		for _, c := range cols.Cases {
			if c.Station == s.ID {
				sum.Cases++
			}
		}
		for _, p := range cols.Prisoners {
			if p.ArrestingStation != s.ID || p.Status != models.PrisonerInCustody {
				continue
			}
			sum.InCustody++
			if p.RelatedCaseID == "" {
				sum.CaselessPrisoners++
			}
		}
		r.Stations = append(r.Stations, sum)
	}
	return r
}
