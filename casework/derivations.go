package casework

import (
	"sort"
	"time"

	"github.com/linesmerrill/prosecution-case-api/models"
)

// MaxActiveLoad is the number of open cases at which a prosecutor stops being available
const MaxActiveLoad = 25

// UrgentWithinDays is how close an RTD deadline has to be for a case to be urgent
const UrgentWithinDays = 7

// ProsecutorLoad counts the open cases assigned to prosecutorID
func ProsecutorLoad(cases []models.Case, prosecutorID string) int {
	load := 0
	for _, c := range cases {
		if c.AssignedProsecutorID == prosecutorID && c.Status != models.StatusCompleted {
			load++
		}
	}
	return load
}

// IsAvailable reports whether a prosecutor with this load can take another case
func IsAvailable(load int) bool {
	return load < MaxActiveLoad
}

// ProsecutorCases returns every case ever assigned to prosecutorID, open or not
func ProsecutorCases(cases []models.Case, prosecutorID string) []models.Case {
	var out []models.Case
	for _, c := range cases {
		if c.AssignedProsecutorID == prosecutorID {
			out = append(out, c)
		}
	}
	return out
}

// CaselessPrisoners returns prisoners still held without a linked case
func CaselessPrisoners(prisoners []models.Prisoner) []models.Prisoner {
	var out []models.Prisoner
	for _, p := range prisoners {
		if p.Status == models.PrisonerInCustody && p.RelatedCaseID == "" {
			out = append(out, p)
		}
	}
	return out
}

// DaysInCustody counts days since arrest. An unparseable arrest date counts as zero.
func DaysInCustody(p models.Prisoner, asOf time.Time) int {
	arrested, ok := ParseDate(p.ArrestDate)
	if !ok {
		return 0
	}
	return DaysBetween(arrested, asOf)
}

// DaysUntil counts days from asOf to date; ok is false when date cannot be parsed
func DaysUntil(date string, asOf time.Time) (int, bool) {
	t, ok := ParseDate(date)
	if !ok {
		return 0, false
	}
	return DaysBetween(asOf, t), true
}

// IsUrgent is true for a held (RTD) case whose article 38 deadline is at most a week away.
// Deadlines already passed are urgent too.
func IsUrgent(c models.Case, asOf time.Time) bool {
	if c.CustodyType != models.CustodyRTD || c.Article38Deadline == "" {
		return false
	}
	days, ok := DaysUntil(c.Article38Deadline, asOf)
	return ok && days <= UrgentWithinDays
}

// UrgentCases filters cases down to the urgent ones
func UrgentCases(cases []models.Case, asOf time.Time) []models.Case {
	var out []models.Case
	for _, c := range cases {
		if IsUrgent(c, asOf) {
			out = append(out, c)
		}
	}
	return out
}

// UnassignedCases are cases waiting for a team leader to pick a prosecutor
func UnassignedCases(cases []models.Case) []models.Case {
	var out []models.Case
	for _, c := range cases {
		if c.Status == models.StatusSentToProsecution || c.Status == models.StatusReceived {
			out = append(out, c)
		}
	}
	return out
}

// VisibleCases narrows cases to what the user works on: police see their station,
// prosecutors their assignments, everyone else all cases.
func VisibleCases(user models.User, cases []models.Case) []models.Case {
	switch {
	case user.Role == models.RolePolice:
		var out []models.Case
		for _, c := range cases {
			if c.Station == user.Station {
				out = append(out, c)
			}
		}
		return out
	case user.Role == models.RoleProsecutor && user.ProsecutorID != "":
		return ProsecutorCases(cases, user.ProsecutorID)
	}
	return cases
}

// VisiblePrisoners narrows prisoners for police to their own station
func VisiblePrisoners(user models.User, prisoners []models.Prisoner) []models.Prisoner {
	if user.Role != models.RolePolice {
		return prisoners
	}
	var out []models.Prisoner
	for _, p := range prisoners {
		if p.ArrestingStation == user.Station {
			out = append(out, p)
		}
	}
	return out
}

// FindCase looks a case up by record id
func FindCase(cases []models.Case, id string) (models.Case, bool) {
	for _, c := range cases {
		if c.ID == id {
			return c, true
		}
	}
	return models.Case{}, false
}

// FindCaseByNumber looks a case up by its case number
func FindCaseByNumber(cases []models.Case, number string) (models.Case, bool) {
	for _, c := range cases {
		if c.CaseNumber == number {
			return c, true
		}
	}
	return models.Case{}, false
}

// FindPrisoner looks a prisoner up by record id
func FindPrisoner(prisoners []models.Prisoner, id string) (models.Prisoner, bool) {
	for _, p := range prisoners {
		if p.ID == id {
			return p, true
		}
	}
	return models.Prisoner{}, false
}

// FindPrisonerByBusinessID looks a prisoner up by prisonerId
func FindPrisonerByBusinessID(prisoners []models.Prisoner, prisonerID string) (models.Prisoner, bool) {
	for _, p := range prisoners {
		if p.PrisonerID == prisonerID {
			return p, true
		}
	}
	return models.Prisoner{}, false
}

// FindAlert looks an alert up by record id
func FindAlert(alerts []models.Alert, id string) (models.Alert, bool) {
	for _, a := range alerts {
		if a.ID == id {
			return a, true
		}
	}
	return models.Alert{}, false
}

// Prosecutors returns the prosecutor users ordered by code
func Prosecutors(users []models.User) []models.User {
	var out []models.User
	for _, u := range users {
		if u.Role == models.RoleProsecutor && u.ProsecutorID != "" {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProsecutorID < out[j].ProsecutorID })
	return out
}

// FindProsecutor looks a prosecutor up by code
func FindProsecutor(users []models.User, prosecutorID string) (models.User, bool) {
	for _, u := range Prosecutors(users) {
		if u.ProsecutorID == prosecutorID {
			return u, true
		}
	}
	return models.User{}, false
}

// FilterAlerts keeps alerts of the given type; an empty type or "all" keeps everything
func FilterAlerts(alerts []models.Alert, t models.AlertType) []models.Alert {
	if t == "" || t == "all" {
		return alerts
	}
	var out []models.Alert
	for _, a := range alerts {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// UnreadAlerts keeps alerts nobody has dismissed yet
func UnreadAlerts(alerts []models.Alert) []models.Alert {
	var out []models.Alert
	for _, a := range alerts {
		if !a.IsRead {
			out = append(out, a)
		}
	}
	return out
}
