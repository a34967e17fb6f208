package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/prosecution-case-api/api/handlers"
	"github.com/linesmerrill/prosecution-case-api/api/scheduler"
	"github.com/linesmerrill/prosecution-case-api/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(ctx); err != nil { //initialize store and router
		zap.S().Fatalw("failed to initialize", "error", err)
	}
	defer a.Close(context.Background())

	var mailer scheduler.Mailer
	if a.Config.SendgridAPIKey != "" {
		mailer = scheduler.NewSendgridMailer(a.Config.SendgridAPIKey, "Prosecution Office", a.Config.DigestFromEmail)
	}
	s := scheduler.NewScheduler(a.Observer, a.Service, mailer, a.Config.DigestCron, a.Config.DeadlineAlerts)
	if err := s.Start(); err != nil {
		zap.S().Fatalw("failed to start scheduler", "error", err)
	}
	defer s.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%v", a.Config.Port),
		Handler: a.Router,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.S().Infow("prosecution-case-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
		"store", a.Config.StoreDriver,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.S().Errorw("server stopped", "error", err)
	}
}
