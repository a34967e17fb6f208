package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linesmerrill/prosecution-case-api/api"
	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/config"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// State is the latest observed view of the store
type State interface {
	Current() casework.Collections
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	u, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("no authenticated user", http.StatusUnauthorized, w, nil)
	}
	return u, ok
}

// writeServiceError maps casework errors to a status code
func writeServiceError(message string, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, casework.ErrUnknownAction),
		errors.Is(err, casework.ErrMissingPayload),
		errors.Is(err, casework.ErrMissingField),
		errors.Is(err, casework.ErrInvalidDate):
		config.ErrorStatus(message, http.StatusBadRequest, w, err)
	case errors.Is(err, casework.ErrPrisonerNotInCustody):
		config.ErrorStatus(message, http.StatusConflict, w, err)
	default:
		config.ErrorStatus(message, http.StatusInternalServerError, w, err)
	}
}

type accepted struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
