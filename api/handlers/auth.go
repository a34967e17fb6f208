package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/linesmerrill/prosecution-case-api/api"
	"github.com/linesmerrill/prosecution-case-api/config"
)

// Login handles sign in
type Login struct {
	Auth *api.Auth
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler returns the user matching the posted credentials
func (l Login) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	u, err := l.Auth.Login(req.Email, req.Password)
	if err != nil {
		config.ErrorStatus("failed to sign in", http.StatusUnauthorized, w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
