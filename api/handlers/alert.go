package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/prosecution-case-api/api"
	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/config"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// Alert exists for dependency injection
type Alert struct {
	State   State
	Service *casework.Service
}

// AlertsHandler returns alerts newest first, optionally filtered by ?type= and ?unread=true
func (a Alert) AlertsHandler(w http.ResponseWriter, r *http.Request) {
	alerts := casework.FilterAlerts(a.State.Current().Alerts, models.AlertType(r.URL.Query().Get("type")))
	if r.URL.Query().Get("unread") == "true" {
		alerts = casework.UnreadAlerts(alerts)
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// MarkAlertReadHandler marks an alert as read
func (a Alert) MarkAlertReadHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["alert_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if !a.Service.MarkAlertRead(ctx, a.State.Current(), id) {
		config.ErrorStatus("failed to mark alert as read", http.StatusNotFound, w, fmt.Errorf("alert %q not found", id))
		return
	}
	writeJSON(w, http.StatusAccepted, accepted{Message: "alert marked as read", ID: id})
}
