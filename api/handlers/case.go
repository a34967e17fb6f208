package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/prosecution-case-api/api"
	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/config"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// Case exists for dependency injection
type Case struct {
	State   State
	Service *casework.Service
	Now     func() time.Time
}

type caseActionRequest struct {
	Action  casework.ActionKind    `json:"action"`
	Payload casework.ActionPayload `json:"payload"`
}

// CasesHandler returns the cases visible to the signed-in user, optionally
// filtered by ?status= and ?station=
func (c Case) CasesHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")
	station := r.URL.Query().Get("station")

	out := []models.Case{}
	for _, cs := range casework.VisibleCases(u, c.State.Current().Cases) {
		if status != "" && string(cs.Status) != status {
			continue
		}
		if station != "" && cs.Station != station {
			continue
		}
		out = append(out, cs)
	}
	writeJSON(w, http.StatusOK, out)
}

// CaseByIDHandler returns a single case
func (c Case) CaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	caseID := mux.Vars(r)["case_id"]

	cs, found := casework.FindCase(casework.VisibleCases(u, c.State.Current().Cases), caseID)
	if !found {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, fmt.Errorf("case %q not found", caseID))
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// CreateCaseHandler registers a case from the police intake form
func (c Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in models.Case
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	created, err := c.Service.CreateCase(ctx, u, in)
	if err != nil {
		writeServiceError("failed to create case", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCaseHandler patches the editable fields of a case
func (c Case) UpdateCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]
	var edit models.CaseEdit
	// status, step and history are not editable here
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&edit); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if !c.Service.UpdateCase(ctx, c.State.Current(), caseID, edit) {
		config.ErrorStatus("failed to update case", http.StatusNotFound, w, fmt.Errorf("case %q not found", caseID))
		return
	}
	writeJSON(w, http.StatusAccepted, accepted{Message: "case update accepted", ID: caseID})
}

// CaseActionHandler runs a workflow action and returns the case as it will read
// once the write lands
func (c Case) CaseActionHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	caseID := mux.Vars(r)["case_id"]
	var req caseActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	cols := c.State.Current()
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	patch, err := c.Service.ApplyAction(ctx, cols, u, caseID, req.Action, req.Payload)
	if err != nil {
		writeServiceError("failed to apply case action", w, err)
		return
	}
	if patch == nil {
		config.ErrorStatus("failed to apply case action", http.StatusNotFound, w, fmt.Errorf("case %q not found", caseID))
		return
	}

	cs, _ := casework.FindCase(cols.Cases, caseID)
	zap.S().Debugw("case action accepted", "caseId", caseID, "action", req.Action)
	writeJSON(w, http.StatusAccepted, casework.ApplyPatch(cs, *patch))
}
