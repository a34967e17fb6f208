package api

import (
	"context"
	"net/http"
	"time"

	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"

	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// credentialCacheTTL bounds how long a validated basic credential skips bcrypt
const credentialCacheTTL = 10 * time.Minute

// Auth validates basic credentials against the static user list and the shared
// office password
type Auth struct {
	// Users returns the current user list; it is called on every check so users
	// written after startup are recognised
	Users        func() []models.User
	PasswordHash []byte

	authenticator auth.Authenticator
}

// NewAuth hashes the shared password and sets up go-guardian
func NewAuth(ctx context.Context, users func() []models.User, sharedPassword string) (*Auth, error) {
	hash, err := casework.HashPassword(sharedPassword)
	if err != nil {
		return nil, err
	}
	a := &Auth{Users: users, PasswordHash: hash}
	a.SetupGoGuardian(ctx)
	return a, nil
}

// SetupGoGuardian sets up the go-guardian basic strategy with a FIFO credential cache
func (a *Auth) SetupGoGuardian(ctx context.Context) {
	a.authenticator = auth.New()
	cache := store.NewFIFO(ctx, credentialCacheTTL)
	basicStrategy := basic.New(a.ValidateUser, cache)
	a.authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
}

// ValidateUser checks an email and password pair
func (a *Auth) ValidateUser(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	u, err := casework.Authenticate(a.Users(), email, password, a.PasswordHash)
	if err != nil {
		return nil, err
	}
	return auth.NewDefaultUser(u.Email, u.ID, []string{string(u.Role)}, nil), nil
}

// Login checks credentials directly, without the cache
func (a *Auth) Login(email, password string) (models.User, error) {
	return casework.Authenticate(a.Users(), email, password, a.PasswordHash)
}

func (a *Auth) lookup(email string) (models.User, bool) {
	for _, u := range a.Users() {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// Middleware adds some basic header authentication around accessing the routes
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		info, err := a.authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL,
				"requestId", RequestID(r.Context()))
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		u, ok := a.lookup(info.UserName())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugw("user authenticated", "user", u.Email, "role", u.Role)
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// RequireRoles rejects users whose role is not listed
func RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "unauthorized"}`))
				return
			}
			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			zap.S().Warnw("forbidden",
				"url", r.URL,
				"user", u.Email,
				"role", u.Role)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "forbidden"}`))
		})
	}
}
