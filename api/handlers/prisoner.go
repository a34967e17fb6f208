package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/prosecution-case-api/api"
	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/config"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// Prisoner exists for dependency injection
type Prisoner struct {
	State   State
	Service *casework.Service
	Now     func() time.Time
}

type prisonerCreated struct {
	Prisoner models.Prisoner `json:"prisoner"`
	Alert    models.Alert    `json:"alert"`
}

type linkCaseRequest struct {
	CaseID string `json:"caseId"`
}

type releaseRequest struct {
	Reason string `json:"reason"`
}

type transferRequest struct {
	TransferTo string `json:"transferTo"`
}

func prisonerNotFound(message, id string, w http.ResponseWriter) {
	config.ErrorStatus(message, http.StatusNotFound, w, fmt.Errorf("prisoner %q not found", id))
}

// PrisonersHandler returns the prisoners visible to the signed-in user
func (p Prisoner) PrisonersHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	out := casework.VisiblePrisoners(u, p.State.Current().Prisoners)
	if out == nil {
		out = []models.Prisoner{}
	}
	writeJSON(w, http.StatusOK, out)
}

// CaselessPrisonersHandler returns held prisoners without a case, longest waiting first
func (p Prisoner) CaselessPrisonersHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	held := casework.CaselessPrisoners(casework.VisiblePrisoners(u, p.State.Current().Prisoners))
	writeJSON(w, http.StatusOK, casework.WithDaysInCustody(held, p.Now()))
}

// CreatePrisonerHandler registers a detained person
func (p Prisoner) CreatePrisonerHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in models.Prisoner
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	created, alert, err := p.Service.CreatePrisoner(ctx, u, in)
	if err != nil {
		writeServiceError("failed to register prisoner", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, prisonerCreated{Prisoner: created, Alert: alert})
}

// UpdatePrisonerHandler patches a prisoner record
func (p Prisoner) UpdatePrisonerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["prisoner_id"]
	var edit models.PrisonerEdit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&edit); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if !p.Service.UpdatePrisoner(ctx, p.State.Current(), id, edit) {
		prisonerNotFound("failed to update prisoner", id, w)
		return
	}
	writeJSON(w, http.StatusAccepted, accepted{Message: "prisoner update accepted", ID: id})
}

// AddVisitorHandler appends to a prisoner's visitor log
func (p Prisoner) AddVisitorHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["prisoner_id"]
	var visit models.VisitorLog
	if err := json.NewDecoder(r.Body).Decode(&visit); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	found, err := p.Service.AddVisitor(ctx, p.State.Current(), id, visit)
	if err != nil {
		writeServiceError("failed to add visitor", w, err)
		return
	}
	if !found {
		prisonerNotFound("failed to add visitor", id, w)
		return
	}
	writeJSON(w, http.StatusAccepted, accepted{Message: "visitor recorded", ID: id})
}

// LinkCaseHandler links a prisoner to a case on both records
func (p Prisoner) LinkCaseHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["prisoner_id"]
	var req linkCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if !p.Service.LinkCaseToPrisoner(ctx, p.State.Current(), id, req.CaseID) {
		config.ErrorStatus("failed to link case", http.StatusNotFound, w,
			fmt.Errorf("prisoner %q or case %q not found", id, req.CaseID))
		return
	}
	writeJSON(w, http.StatusAccepted, accepted{Message: "case linked", ID: id})
}

// ReleasePrisonerHandler releases a prisoner from custody
func (p Prisoner) ReleasePrisonerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["prisoner_id"]
	var req releaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	found, err := p.Service.ReleasePrisoner(ctx, p.State.Current(), id, req.Reason)
	if err != nil {
		writeServiceError("failed to release prisoner", w, err)
		return
	}
	if !found {
		prisonerNotFound("failed to release prisoner", id, w)
		return
	}
	writeJSON(w, http.StatusAccepted, accepted{Message: "prisoner released", ID: id})
}

// TransferPrisonerHandler transfers a prisoner to another facility
func (p Prisoner) TransferPrisonerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["prisoner_id"]
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	found, err := p.Service.TransferPrisoner(ctx, p.State.Current(), id, req.TransferTo)
	if err != nil {
		writeServiceError("failed to transfer prisoner", w, err)
		return
	}
	if !found {
		prisonerNotFound("failed to transfer prisoner", id, w)
		return
	}
	writeJSON(w, http.StatusAccepted, accepted{Message: "prisoner transferred", ID: id})
}
