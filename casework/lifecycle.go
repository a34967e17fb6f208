package casework

import (
	"errors"
	"time"

	"github.com/linesmerrill/prosecution-case-api/models"
)

// ActionKind names a workflow action a prosecutor can take on a case
type ActionKind string

// Workflow actions
const (
	ActionAssign      ActionKind = "assign"
	ActionInvestigate ActionKind = "investigate"
	ActionArticle38   ActionKind = "article38"
	ActionArticle42   ActionKind = "article42"
	ActionCharge      ActionKind = "charge"
	ActionCourt       ActionKind = "court"
	ActionComplete    ActionKind = "complete"
)

var (
	// ErrUnknownAction is returned for an action kind outside the workflow table
	ErrUnknownAction = errors.New("unknown action")
	// ErrMissingPayload is returned when an action lacks a required field
	ErrMissingPayload = errors.New("missing action payload")
	// ErrInvalidDate is returned for a date that is neither YYYY-MM-DD nor RFC3339
	ErrInvalidDate = errors.New("invalid date")
)

// ActionPayload carries the free-text inputs some actions need
type ActionPayload struct {
	ProsecutorID   string `json:"prosecutorId,omitempty"`
	ProsecutorName string `json:"prosecutorName,omitempty"`
	Reason         string `json:"reason,omitempty"`
	ChargeType     string `json:"chargeType,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
}

// Actions lists every kind in workflow order
var Actions = []ActionKind{
	ActionAssign,
	ActionInvestigate,
	ActionArticle38,
	ActionArticle42,
	ActionCharge,
	ActionCourt,
	ActionComplete,
}

// CanAct reports whether a role may run workflow actions
func CanAct(role models.Role) bool {
	switch role {
	case models.RoleProsecutor, models.RoleTeamLeader, models.RoleAdmin:
		return true
	}
	return false
}

// ApplyAction computes the patch an action makes to a case. It never looks at the
// current status, so actions may be repeated or run out of order, including on a
// completed case. The returned history is the full existing history plus one entry.
func ApplyAction(c models.Case, kind ActionKind, actorName string, payload ActionPayload, now time.Time) (models.CasePatch, error) {
	today := Today(now)
	patch := models.CasePatch{}

	var status models.CaseStatus
	var step int
	var details string

	switch kind {
	case ActionAssign:
		if payload.ProsecutorID == "" {
			return models.CasePatch{}, ErrMissingPayload
		}
		status, step, details = models.StatusAssigned, 2, "sent to prosecutor"
		patch.AssignedProsecutorID = &payload.ProsecutorID
		patch.AssignedProsecutorName = &payload.ProsecutorName
	case ActionInvestigate:
		status, step, details = models.StatusInvestigating, 3, "investigation started"
	case ActionArticle38:
		status, step, details = models.StatusArticle38, 4, "article 38: "+payload.Reason
		patch.Article38Date = &today
		patch.Article38Reason = &payload.Reason
		if payload.Deadline != "" {
			deadline, ok := ParseDate(payload.Deadline)
			if !ok {
				return models.CasePatch{}, ErrInvalidDate
			}
			d := deadline.Format(DateLayout)
			patch.Article38Deadline = &d
		}
	case ActionArticle42:
		status, step, details = models.StatusArticle42, 4, "article 42: "+payload.Reason
		patch.Article42Reason = &payload.Reason
	case ActionCharge:
		status, step, details = models.StatusFormalCharge, 4, "formal charge: "+payload.ChargeType
		patch.ChargeType = &payload.ChargeType
	case ActionCourt:
		status, step, details = models.StatusSentToCourt, 5, "sent to court"
		patch.CourtDate = &today
	case ActionComplete:
		status, step, details = models.StatusCompleted, 7, "case completed"
	default:
		return models.CasePatch{}, ErrUnknownAction
	}

	history := make([]models.HistoryEntry, 0, len(c.History)+1)
	history = append(history, c.History...)
	history = append(history, models.HistoryEntry{
		Date:    today,
		Action:  string(kind),
		User:    actorName,
		Details: details,
	})

	updatedAt := Timestamp(now)
	patch.Status = &status
	patch.CurrentStep = &step
	patch.History = history
	patch.UpdatedAt = &updatedAt
	return patch, nil
}

// ApplyPatch returns c with every non-nil field of patch applied, the way the
// store merges it.
func ApplyPatch(c models.Case, patch models.CasePatch) models.Case {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&c.CaseNumber, patch.CaseNumber)
	setString(&c.SuspectName, patch.SuspectName)
	if patch.SuspectAge != nil {
		c.SuspectAge = *patch.SuspectAge
	}
	setString(&c.SuspectGender, patch.SuspectGender)
	setString(&c.CrimeType, patch.CrimeType)
	setString(&c.CrimeDescription, patch.CrimeDescription)
	setString(&c.CrimeLevel, patch.CrimeLevel)
	setString(&c.Station, patch.Station)
	setString(&c.PoliceOfficer, patch.PoliceOfficer)
	setString(&c.ArrestDate, patch.ArrestDate)
	setString(&c.ReleaseDate, patch.ReleaseDate)
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	setString(&c.SentToProsecutionDate, patch.SentToProsecutionDate)
	if patch.CurrentStep != nil {
		c.CurrentStep = *patch.CurrentStep
	}
	setString(&c.AssignedProsecutorID, patch.AssignedProsecutorID)
	setString(&c.AssignedProsecutorName, patch.AssignedProsecutorName)
	setString(&c.Article38Date, patch.Article38Date)
	setString(&c.Article38Deadline, patch.Article38Deadline)
	setString(&c.Article38Reason, patch.Article38Reason)
	setString(&c.Article42Reason, patch.Article42Reason)
	setString(&c.ChargeType, patch.ChargeType)
	if patch.CustodyType != nil {
		c.CustodyType = *patch.CustodyType
	}
	setString(&c.CourtDate, patch.CourtDate)
	setString(&c.CourtDecision, patch.CourtDecision)
	setString(&c.PrisonerID, patch.PrisonerID)
	setString(&c.UpdatedAt, patch.UpdatedAt)
	if patch.History != nil {
		c.History = patch.History
	}
	return c
}
