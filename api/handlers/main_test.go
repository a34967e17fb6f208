package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/prosecution-case-api/api"
	"github.com/linesmerrill/prosecution-case-api/api/handlers"
	"github.com/linesmerrill/prosecution-case-api/api/testhelpers"
	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/config"
	"github.com/linesmerrill/prosecution-case-api/models"
)

const (
	policeEmail     = "police1@police.gov.et"
	prosecutorEmail = "pros01@prosecution.gov.et"
	leadEmail       = "teamleader@prosecution.gov.et"
	adminEmail      = "admin@prosecution.gov.et"
)

type testApp struct {
	*testhelpers.Env
	App    *handlers.App
	Router *mux.Router
}

// newTestApp wires the full router over a seeded in-memory store
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	env := testhelpers.NewEnv(t)
	env.Seed(t)

	auth, err := api.NewAuth(context.Background(), casework.StaticUsers, testhelpers.Password)
	require.NoError(t, err)

	a := &handlers.App{
		Config: config.Config{
			CloudinaryAPISecret:    "cloud-secret",
			CloudinaryUploadPreset: "prisoners",
		},
		Store:    env.Store,
		Observer: env.Observer,
		Service:  env.Service,
		Auth:     auth,
		Metrics:  api.NewMetricsCollector(),
		Now:      func() time.Time { return testhelpers.Now },
	}
	return &testApp{Env: env, App: a, Router: a.New()}
}

func (ta *testApp) do(t *testing.T, method, path, email string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, path, r)
	require.NoError(t, err)
	if email != "" {
		req = testhelpers.AsUser(req, email)
	}
	rr := httptest.NewRecorder()
	ta.Router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorMessageResponse {
	t.Helper()
	var body models.ErrorMessageResponse
	decode(t, rr, &body)
	return body
}

// withUser builds a request carrying an authenticated user, for calling handlers directly
func withUser(t *testing.T, method, path string, body []byte, u models.User) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	return req.WithContext(api.WithUser(req.Context(), u))
}

func staticUser(t *testing.T, email string) models.User {
	t.Helper()
	for _, u := range casework.StaticUsers() {
		if u.Email == email {
			return u
		}
	}
	t.Fatalf("no static user %s", email)
	return models.User{}
}
