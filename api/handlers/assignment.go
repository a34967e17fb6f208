package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/prosecution-case-api/api"
	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/config"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// Assignment serves the team leader's assignment board
type Assignment struct {
	State   State
	Service *casework.Service
}

type assignmentBoard struct {
	Unassigned  []models.Case       `json:"unassigned"`
	Prosecutors []casework.Workload `json:"prosecutors"`
}

type recommendation struct {
	CaseID       string   `json:"caseId"`
	ProsecutorID string   `json:"prosecutorId"`
	Name         string   `json:"name"`
	Preferred    []string `json:"preferred"`
}

type assignRequest struct {
	CaseID       string `json:"caseId"`
	ProsecutorID string `json:"prosecutorId"`
}

// UnassignedHandler returns unassigned cases along with every prosecutor's load
func (a Assignment) UnassignedHandler(w http.ResponseWriter, r *http.Request) {
	cols := a.State.Current()
	board := assignmentBoard{
		Unassigned:  casework.UnassignedCases(cols.Cases),
		Prosecutors: casework.Workloads(cols.Users, cols.Cases),
	}
	if board.Unassigned == nil {
		board.Unassigned = []models.Case{}
	}
	if board.Prosecutors == nil {
		board.Prosecutors = []casework.Workload{}
	}
	writeJSON(w, http.StatusOK, board)
}

// RecommendationHandler suggests a prosecutor for a case
func (a Assignment) RecommendationHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]
	cols := a.State.Current()
	c, ok := casework.FindCase(cols.Cases, caseID)
	if !ok {
		config.ErrorStatus("failed to recommend a prosecutor", http.StatusNotFound, w, fmt.Errorf("case %q not found", caseID))
		return
	}

	code := casework.Recommend(c, casework.Prosecutors(cols.Users), cols.Cases)
	rec := recommendation{
		CaseID:       c.ID,
		ProsecutorID: code,
		Preferred:    casework.PreferredProsecutors(c.CrimeType),
	}
	if p, ok := casework.FindProsecutor(cols.Users, code); ok {
		rec.Name = p.Name
	}
	if rec.Preferred == nil {
		rec.Preferred = []string{}
	}
	writeJSON(w, http.StatusOK, rec)
}

// AssignHandler hands a case to a prosecutor
func (a Assignment) AssignHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	cols := a.State.Current()
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	patch, err := a.Service.Assign(ctx, cols, u, req.CaseID, req.ProsecutorID)
	if err != nil {
		writeServiceError("failed to assign case", w, err)
		return
	}
	if patch == nil {
		config.ErrorStatus("failed to assign case", http.StatusNotFound, w,
			fmt.Errorf("case %q or prosecutor %q not found", req.CaseID, req.ProsecutorID))
		return
	}

	c, _ := casework.FindCase(cols.Cases, req.CaseID)
	writeJSON(w, http.StatusAccepted, casework.ApplyPatch(c, *patch))
}
