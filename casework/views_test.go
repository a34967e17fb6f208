package casework_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/models"
)

func seededCollections() casework.Collections {
	set := casework.SeedData(testNow)
	return casework.Collections{Cases: set.Cases, Prisoners: set.Prisoners, Alerts: set.Alerts, Users: set.Users}
}

func TestBuildDashboard_TeamLeaderSeesEverything(t *testing.T) {
	cols := seededCollections()

	d := casework.BuildDashboard(lead, cols, testNow)

	assert.Equal(t, len(cols.Cases), d.TotalCases)
	assert.Equal(t, 1, d.CompletedCases)
	assert.Equal(t, 4, d.PendingCases)
	assert.Equal(t, 4, d.RTDCases)
	require.Len(t, d.UrgentCases, 1)
	assert.Equal(t, "case-3", d.UrgentCases[0].ID)
	assert.Equal(t, 3, d.UrgentCases[0].DaysRemaining)
	require.Len(t, d.CaselessPrisoners, 2)
	assert.Equal(t, "prisoner-2", d.CaselessPrisoners[0].ID)
	assert.Equal(t, 10, d.CaselessPrisoners[0].DaysInCustody)
	assert.Len(t, d.UnreadAlerts, 2)
	assert.Nil(t, d.ActiveLoad)
}

func TestBuildDashboard_PoliceSeeOwnStation(t *testing.T) {
	cols := seededCollections()
	user := models.User{Role: models.RolePolice, Station: "station-7"}

	d := casework.BuildDashboard(user, cols, testNow)

	assert.Equal(t, 0, d.TotalCases)
	require.Len(t, d.CaselessPrisoners, 1)
	assert.Equal(t, "Abebe Kebede", d.CaselessPrisoners[0].FullName)
	assert.Empty(t, d.UrgentCases)
}

func TestBuildDashboard_ProsecutorLoad(t *testing.T) {
	cols := seededCollections()
	user, ok := casework.FindProsecutor(cols.Users, "PROS-01")
	require.True(t, ok)

	d := casework.BuildDashboard(user, cols, testNow)

	assert.Equal(t, 1, d.TotalCases)
	require.NotNil(t, d.ActiveLoad)
	assert.Equal(t, 1, *d.ActiveLoad)
	assert.Equal(t, casework.MaxActiveLoad, d.MaxActiveLoad)
}

func TestBuildReport(t *testing.T) {
	cols := seededCollections()

	r := casework.BuildReport(cols, testNow)

	assert.Equal(t, 6, r.TotalCases)
	assert.Equal(t, 1, r.CompletedCases)
	assert.Equal(t, 5, r.OpenCases)
	assert.Equal(t, 4, r.RTDCases)
	assert.Equal(t, 1, r.UrgentCases)
	assert.Equal(t, 2, r.UnassignedCases)
	assert.Equal(t, 4, r.TotalPrisoners)
	assert.Equal(t, 3, r.InCustody)
	assert.Equal(t, 2, r.CaselessPrisoners)
	assert.Equal(t, 1, r.ByStatus[string(models.StatusInvestigating)])
	assert.Len(t, r.Prosecutors, 7)
	require.Len(t, r.Stations, 7)

	assert.Equal(t, casework.StationSummary{Station: "station-7", Name: "Kebena", Cases: 0, InCustody: 1, CaselessPrisoners: 1}, r.Stations[6])
	assert.Equal(t, casework.StationSummary{Station: "station-3", Name: "Piassa", Cases: 1, InCustody: 1, CaselessPrisoners: 0}, r.Stations[2])
}
