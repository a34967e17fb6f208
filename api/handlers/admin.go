package handlers

import (
	"net/http"

	"github.com/linesmerrill/prosecution-case-api/api"
	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/config"
)

// Admin holds the maintenance endpoints
type Admin struct {
	Service *casework.Service
	Metrics *api.MetricsCollector
}

// SeedHandler writes the demo data set
func (a Admin) SeedHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := a.Service.Seed(ctx); err != nil {
		config.ErrorStatus("failed to seed database", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "database seeded"})
}

// MetricsHandler returns per-route request metrics
func (a Admin) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Metrics.Summary())
}
