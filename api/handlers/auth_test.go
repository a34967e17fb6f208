package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/prosecution-case-api/api/testhelpers"
	"github.com/linesmerrill/prosecution-case-api/models"
)

func TestLogin_LoginHandler(t *testing.T) {
	ta := newTestApp(t)

	rr := ta.do(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": leadEmail, "password": testhelpers.Password,
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	var u models.User
	decode(t, rr, &u)
	assert.Equal(t, "teamleader-1", u.ID)
	assert.Equal(t, models.RoleTeamLeader, u.Role)
}

func TestLogin_LoginHandlerWrongPassword(t *testing.T) {
	ta := newTestApp(t)

	rr := ta.do(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": leadEmail, "password": "nope",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, models.ErrorMessageResponse{Response: models.MessageError{
		Message: "failed to sign in", Error: "invalid email or password",
	}}, errorBody(t, rr))
}

func TestLogin_LoginHandlerFailedToDecode(t *testing.T) {
	ta := newTestApp(t)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader("{"))
	rr := httptest.NewRecorder()

	ta.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "failed to decode request body", errorBody(t, rr).Response.Message)
}

func TestRoutesRequireCredentials(t *testing.T) {
	ta := newTestApp(t)

	rr := ta.do(t, "GET", "/api/v1/cases", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error": "unauthorized"}`, rr.Body.String())
}

func TestHealthCheck(t *testing.T) {
	ta := newTestApp(t)

	rr := ta.do(t, "GET", "/health", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
}
