package casework_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/models"
)

func TestOnPrisonerCreated(t *testing.T) {
	p := models.Prisoner{ID: "p1", PrisonerID: "PRN-2024-PS07-726", FullName: "Abebe Kebede", Status: models.PrisonerInCustody}

	a := casework.OnPrisonerCreated(p, "a1", testNow)

	assert.Equal(t, models.Alert{
		ID:                "a1",
		Type:              models.AlertInfo,
		Title:             "new prisoner",
		Message:           "Abebe Kebede registered without a case",
		RelatedPrisonerID: "PRN-2024-PS07-726",
		CreatedAt:         "2024-03-10T09:30:00Z",
		IsRead:            false,
	}, a)
}

func TestDeadlineAlert(t *testing.T) {
	c := models.Case{ID: "c1", CaseNumber: "C-2024-PS03-808", SuspectName: "Yonas Bekele",
		CustodyType: models.CustodyRTD, Article38Deadline: "2024-03-13"}

	a := casework.DeadlineAlert(c, "a2", testNow)
	assert.Equal(t, models.AlertUrgent, a.Type)
	assert.Equal(t, "c1", a.RelatedCaseID)
	assert.Equal(t, "case C-2024-PS03-808 (Yonas Bekele) reaches its article 38 deadline in 3 days", a.Message)

	c.Article38Deadline = "2024-03-05"
	a = casework.DeadlineAlert(c, "a3", testNow)
	assert.Equal(t, "case C-2024-PS03-808 (Yonas Bekele) passed its article 38 deadline 5 days ago", a.Message)
}

func TestHasDeadlineAlert(t *testing.T) {
	alerts := []models.Alert{
		{ID: "1", Type: models.AlertInfo, RelatedCaseID: "c1"},
		{ID: "2", Type: models.AlertUrgent, RelatedCaseID: "c2"},
	}

	assert.False(t, casework.HasDeadlineAlert(alerts, "c1"))
	assert.True(t, casework.HasDeadlineAlert(alerts, "c2"))
}
