package casework

import (
	"fmt"
	"time"

	"github.com/linesmerrill/prosecution-case-api/models"
)

// OnPrisonerCreated builds the single info alert raised for every newly registered prisoner
func OnPrisonerCreated(p models.Prisoner, alertID string, now time.Time) models.Alert {
	return models.Alert{
		ID:                alertID,
		Type:              models.AlertInfo,
		Title:             "new prisoner",
		Message:           fmt.Sprintf("%s registered without a case", p.FullName),
		RelatedPrisonerID: p.PrisonerID,
		CreatedAt:         Timestamp(now),
		IsRead:            false,
	}
}

// DeadlineAlert builds the urgent alert for an RTD case close to its article 38 deadline
func DeadlineAlert(c models.Case, alertID string, now time.Time) models.Alert {
	days, _ := DaysUntil(c.Article38Deadline, now)
	msg := fmt.Sprintf("case %s (%s) reaches its article 38 deadline in %d days", c.CaseNumber, c.SuspectName, days)
	if days < 0 {
		msg = fmt.Sprintf("case %s (%s) passed its article 38 deadline %d days ago", c.CaseNumber, c.SuspectName, -days)
	}
	return models.Alert{
		ID:            alertID,
		Type:          models.AlertUrgent,
		Title:         "deadline approaching",
		Message:       msg,
		RelatedCaseID: c.ID,
		CreatedAt:     Timestamp(now),
		IsRead:        false,
	}
}

// HasDeadlineAlert reports whether an urgent alert already exists for the case
func HasDeadlineAlert(alerts []models.Alert, caseID string) bool {
	for _, a := range alerts {
		if a.Type == models.AlertUrgent && a.RelatedCaseID == caseID {
			return true
		}
	}
	return false
}
