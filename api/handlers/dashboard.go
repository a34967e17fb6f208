package handlers

import (
	"net/http"
	"time"

	"github.com/linesmerrill/prosecution-case-api/casework"
)

// Dashboard serves the landing view
type Dashboard struct {
	State State
	Now   func() time.Time
}

// DashboardHandler returns the dashboard for the signed-in user
func (d Dashboard) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, casework.BuildDashboard(u, d.State.Current(), d.Now()))
}
