package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/prosecution-case-api/api"
)

func TestMetricsCollector_Record(t *testing.T) {
	mc := api.NewMetricsCollector()

	mc.Record("GET", "/api/v1/cases", http.StatusOK, 10*time.Millisecond)
	mc.Record("GET", "/api/v1/cases", http.StatusOK, 30*time.Millisecond)
	mc.Record("POST", "/api/v1/cases", http.StatusBadRequest, 5*time.Millisecond)

	s := mc.Summary()
	assert.Equal(t, int64(3), s.TotalRequests)
	assert.Equal(t, int64(1), s.TotalErrors)
	require.Len(t, s.Routes, 2)
	assert.Equal(t, "GET", s.Routes[0].Method)
	assert.Equal(t, 20*time.Millisecond, s.Routes[0].AvgTime)
	assert.Equal(t, 10*time.Millisecond, s.Routes[0].MinTime)
	assert.Equal(t, 30*time.Millisecond, s.Routes[0].MaxTime)
	assert.Equal(t, int64(1), s.Routes[1].ErrorCount)
}

func TestMetricsMiddleware_GroupsByRouteTemplate(t *testing.T) {
	mc := api.NewMetricsCollector()
	r := mux.NewRouter()
	r.Use(mc.MetricsMiddleware)
	r.HandleFunc("/api/v1/cases/{case_id}", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, api.RequestID(r.Context()))
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/cases/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	}

	s := mc.Summary()
	require.Len(t, s.Routes, 1)
	assert.Equal(t, "/api/v1/cases/{case_id}", s.Routes[0].Path)
	assert.Equal(t, int64(2), s.Routes[0].Count)
	assert.Equal(t, int64(2), s.TotalErrors)
}
