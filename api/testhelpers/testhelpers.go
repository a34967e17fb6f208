package testhelpers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/databases"
)

// Password is the shared password used by every test environment
const Password = "password123"

// Now is the fixed clock of every test environment
var Now = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

// Env wires an in-memory store, an observer and a write service
type Env struct {
	Store    databases.RecordStore
	Observer *casework.Observer
	Service  *casework.Service
}

// NewEnv builds an Env whose writes become visible before the write returns
func NewEnv(t *testing.T) *Env {
	t.Helper()
	ctx := context.Background()
	store, err := databases.NewStore(ctx, databases.NewMemoryBackend(), databases.NewLocalNotifier())
	require.NoError(t, err)
	observer, err := casework.NewObserver(ctx, store)
	require.NoError(t, err)
	t.Cleanup(observer.Close)

	svc := casework.NewService(store)
	svc.Now = func() time.Time { return Now }
	svc.Intn = func(int) int { return 42 }
	n := 0
	svc.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return &Env{Store: store, Observer: observer, Service: svc}
}

// Seed writes the demo data and fails the test on error
func (e *Env) Seed(t *testing.T) {
	t.Helper()
	require.NoError(t, e.Service.Seed(context.Background()))
}

// AsUser sets basic credentials for email with the shared password
func AsUser(r *http.Request, email string) *http.Request {
	r.SetBasicAuth(email, Password)
	return r
}
