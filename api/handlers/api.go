package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/prosecution-case-api/api"
	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/config"
	"github.com/linesmerrill/prosecution-case-api/databases"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// App stores the router and store wiring, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Store    databases.RecordStore
	Observer *casework.Observer
	Service  *casework.Service
	Auth     *api.Auth
	Metrics  *api.MetricsCollector
	Now      func() time.Time

	closers []func(context.Context) error
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Now == nil {
		a.Now = time.Now
	}
	r := mux.NewRouter()

	login := Login{Auth: a.Auth}
	dash := Dashboard{State: a.Observer, Now: a.Now}
	c := Case{State: a.Observer, Service: a.Service, Now: a.Now}
	asg := Assignment{State: a.Observer, Service: a.Service}
	p := Prisoner{State: a.Observer, Service: a.Service, Now: a.Now}
	photo := Photo{APISecret: a.Config.CloudinaryAPISecret, UploadPreset: a.Config.CloudinaryUploadPreset, Now: a.Now}
	al := Alert{State: a.Observer, Service: a.Service}
	report := Report{State: a.Observer, Now: a.Now}
	stream := Stream{Store: a.Store}
	admin := Admin{Service: a.Service, Metrics: a.Metrics}

	// healthchex
	r.HandleFunc("/health", api.HealthCheckHandler)
	r.Use(a.Metrics.MetricsMiddleware)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	// role gates
	intake := api.RequireRoles(models.RolePolice, models.RoleTeamLeader, models.RoleAdmin)
	police := api.RequireRoles(models.RolePolice)
	prosecution := api.RequireRoles(models.RoleProsecutor, models.RoleTeamLeader, models.RoleAdmin)
	leads := api.RequireRoles(models.RoleTeamLeader, models.RoleAdmin)
	admins := api.RequireRoles(models.RoleAdmin)

	apiCreate.Handle("/auth/login", http.HandlerFunc(login.LoginHandler)).Methods("POST")

	apiCreate.Handle("/dashboard", a.Auth.Middleware(http.HandlerFunc(dash.DashboardHandler))).Methods("GET")

	apiCreate.Handle("/cases", a.Auth.Middleware(http.HandlerFunc(c.CasesHandler))).Methods("GET")
	apiCreate.Handle("/cases", a.Auth.Middleware(intake(http.HandlerFunc(c.CreateCaseHandler)))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}", a.Auth.Middleware(http.HandlerFunc(c.CaseByIDHandler))).Methods("GET")
	apiCreate.Handle("/cases/{case_id}", a.Auth.Middleware(http.HandlerFunc(c.UpdateCaseHandler))).Methods("PATCH")
	apiCreate.Handle("/cases/{case_id}/actions", a.Auth.Middleware(prosecution(http.HandlerFunc(c.CaseActionHandler)))).Methods("POST")

	apiCreate.Handle("/assignments/unassigned", a.Auth.Middleware(leads(http.HandlerFunc(asg.UnassignedHandler)))).Methods("GET")
	apiCreate.Handle("/assignments/recommendation/{case_id}", a.Auth.Middleware(leads(http.HandlerFunc(asg.RecommendationHandler)))).Methods("GET")
	apiCreate.Handle("/assignments", a.Auth.Middleware(leads(http.HandlerFunc(asg.AssignHandler)))).Methods("POST")

	apiCreate.Handle("/prisoners", a.Auth.Middleware(http.HandlerFunc(p.PrisonersHandler))).Methods("GET")
	apiCreate.Handle("/prisoners", a.Auth.Middleware(police(http.HandlerFunc(p.CreatePrisonerHandler)))).Methods("POST")
	apiCreate.Handle("/prisoners/caseless", a.Auth.Middleware(http.HandlerFunc(p.CaselessPrisonersHandler))).Methods("GET")
	apiCreate.Handle("/prisoners/photo-signature", a.Auth.Middleware(police(http.HandlerFunc(photo.PhotoSignatureHandler)))).Methods("POST")
	apiCreate.Handle("/prisoners/{prisoner_id}", a.Auth.Middleware(http.HandlerFunc(p.UpdatePrisonerHandler))).Methods("PATCH")
	apiCreate.Handle("/prisoners/{prisoner_id}/visitors", a.Auth.Middleware(http.HandlerFunc(p.AddVisitorHandler))).Methods("POST")
	apiCreate.Handle("/prisoners/{prisoner_id}/link-case", a.Auth.Middleware(http.HandlerFunc(p.LinkCaseHandler))).Methods("POST")
	apiCreate.Handle("/prisoners/{prisoner_id}/release", a.Auth.Middleware(http.HandlerFunc(p.ReleasePrisonerHandler))).Methods("POST")
	apiCreate.Handle("/prisoners/{prisoner_id}/transfer", a.Auth.Middleware(http.HandlerFunc(p.TransferPrisonerHandler))).Methods("POST")

	apiCreate.Handle("/alerts", a.Auth.Middleware(http.HandlerFunc(al.AlertsHandler))).Methods("GET")
	apiCreate.Handle("/alerts/{alert_id}/read", a.Auth.Middleware(prosecution(http.HandlerFunc(al.MarkAlertReadHandler)))).Methods("PUT")

	apiCreate.Handle("/reports", a.Auth.Middleware(leads(http.HandlerFunc(report.ReportHandler)))).Methods("GET")
	apiCreate.Handle("/reports/export", a.Auth.Middleware(leads(http.HandlerFunc(report.ExportReportHandler)))).Methods("GET")

	apiCreate.Handle("/stream/{collection}", a.Auth.Middleware(http.HandlerFunc(stream.StreamHandler))).Methods("GET")

	apiCreate.Handle("/admin/seed", a.Auth.Middleware(admins(http.HandlerFunc(admin.SeedHandler)))).Methods("POST")
	apiCreate.Handle("/admin/metrics", a.Auth.Middleware(admins(http.HandlerFunc(admin.MetricsHandler)))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the store and create a router
func (a *App) Initialize(ctx context.Context) error {
	backend, err := a.openBackend(ctx)
	if err != nil {
		// if we fail to open the backend, then kill the pod
		zap.S().Errorw("failed to open store backend", "driver", a.Config.StoreDriver, "error", err)
		return err
	}

	var notifier databases.Notifier = databases.NewLocalNotifier()
	if a.Config.RedisAddr != "" {
		client := databases.NewRedisClient(a.Config.RedisAddr, a.Config.RedisPassword, a.Config.RedisDB)
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		notifier = databases.NewRedisNotifier(client)
		zap.S().Infow("sharing store changes over redis", "addr", a.Config.RedisAddr)
	}

	a.Store, err = databases.NewStore(ctx, backend, notifier)
	if err != nil {
		zap.S().Errorw("failed to create store", "error", err)
		return err
	}
	a.Observer, err = casework.NewObserver(ctx, a.Store)
	if err != nil {
		zap.S().Errorw("failed to observe store", "error", err)
		return err
	}
	a.closers = append(a.closers, func(context.Context) error {
		a.Observer.Close()
		return nil
	})

	a.Service = casework.NewService(a.Store)
	a.Auth, err = api.NewAuth(ctx, func() []models.User { return a.Observer.Current().Users }, a.Config.SharedPassword)
	if err != nil {
		zap.S().Errorw("failed to set up authentication", "error", err)
		return err
	}
	a.Metrics = api.NewMetricsCollector()

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) openBackend(ctx context.Context) (databases.Backend, error) {
	switch a.Config.StoreDriver {
	case config.StoreDriverMemory:
		zap.S().Info("prosecution-case-api is using the in-memory store")
		return databases.NewMemoryBackend(), nil
	case config.StoreDriverMongo:
		client, err := databases.NewClient(&a.Config)
		if err != nil {
			return nil, err
		}
		if err := client.Connect(ctx); err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		zap.S().Info("prosecution-case-api has connected to the database")
		return databases.NewMongoBackend(databases.NewDatabase(&a.Config, client)), nil
	case config.StoreDriverSQLite:
		backend, err := databases.OpenSQLite(a.Config.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return backend.Close() })
		zap.S().Infow("prosecution-case-api is using sqlite", "path", a.Config.SQLitePath)
		return backend, nil
	case config.StoreDriverPostgres:
		backend, err := databases.OpenPostgres(a.Config.PostgresDSN, a.Config.PostgresMaxConns)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return backend.Close() })
		zap.S().Info("prosecution-case-api is using postgres")
		return backend, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", a.Config.StoreDriver)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// Close releases the store connections in reverse order of opening
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			zap.S().Warnw("failed to close resource", "error", err)
		}
	}
	a.closers = nil
}
