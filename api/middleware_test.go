package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/prosecution-case-api/api"
	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/models"
)

func newAuth(t *testing.T) *api.Auth {
	t.Helper()
	a, err := api.NewAuth(context.Background(), casework.StaticUsers, "password123")
	require.NoError(t, err)
	return a
}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	u, _ := api.UserFromContext(r.Context())
	w.Write([]byte(u.ID))
}

func TestMiddleware_ValidCredentials(t *testing.T) {
	a := newAuth(t)
	req := httptest.NewRequest("GET", "/api/v1/cases", nil)
	req.SetBasicAuth("pros02@prosecution.gov.et", "password123")
	rr := httptest.NewRecorder()

	a.Middleware(http.HandlerFunc(whoAmI)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "prosecutor-2", rr.Body.String())
}

func TestMiddleware_WrongPassword(t *testing.T) {
	a := newAuth(t)
	req := httptest.NewRequest("GET", "/api/v1/cases", nil)
	req.SetBasicAuth("pros02@prosecution.gov.et", "letmein")
	rr := httptest.NewRecorder()

	a.Middleware(http.HandlerFunc(whoAmI)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error": "unauthorized"}`, rr.Body.String())
}

func TestMiddleware_NoCredentials(t *testing.T) {
	a := newAuth(t)
	rr := httptest.NewRecorder()

	a.Middleware(http.HandlerFunc(whoAmI)).ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/cases", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin(t *testing.T) {
	a := newAuth(t)

	u, err := a.Login("admin@prosecution.gov.et", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, err = a.Login("admin@prosecution.gov.et", "nope")
	assert.ErrorIs(t, err, casework.ErrAuthFailed)
}

func TestMiddleware_SeesUsersAddedAfterStartup(t *testing.T) {
	var mu sync.Mutex
	users := casework.StaticUsers()
	a, err := api.NewAuth(context.Background(), func() []models.User {
		mu.Lock()
		defer mu.Unlock()
		return users
	}, "password123")
	require.NoError(t, err)

	_, err = a.Login("pros08@prosecution.gov.et", "password123")
	require.ErrorIs(t, err, casework.ErrAuthFailed)

	mu.Lock()
	users = append(users, models.User{ID: "prosecutor-8", Email: "pros08@prosecution.gov.et", Name: "Pros. Selam Haile", Role: models.RoleProsecutor, ProsecutorID: "PROS-08"})
	mu.Unlock()

	req := httptest.NewRequest("GET", "/api/v1/cases", nil)
	req.SetBasicAuth("pros08@prosecution.gov.et", "password123")
	rr := httptest.NewRecorder()
	a.Middleware(http.HandlerFunc(whoAmI)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "prosecutor-8", rr.Body.String())
}

func TestRequireRoles(t *testing.T) {
	handler := api.RequireRoles(models.RoleTeamLeader, models.RoleAdmin)(http.HandlerFunc(whoAmI))

	tests := []struct {
		name string
		user *models.User
		code int
	}{
		{"admin allowed", &models.User{ID: "admin-1", Role: models.RoleAdmin}, http.StatusOK},
		{"police forbidden", &models.User{ID: "police-1", Role: models.RolePolice}, http.StatusForbidden},
		{"anonymous unauthorized", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/reports", nil)
			if tt.user != nil {
				req = req.WithContext(api.WithUser(req.Context(), *tt.user))
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.code, rr.Code)
		})
	}
}

func TestHealthCheckHandler(t *testing.T) {
	rr := httptest.NewRecorder()

	api.HealthCheckHandler(rr, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
}

func TestWithQueryTimeout(t *testing.T) {
	ctx, cancel := api.WithQueryTimeout(context.Background())
	defer cancel()

	_, ok := ctx.Deadline()
	assert.True(t, ok)
}
