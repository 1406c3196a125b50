package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/denizokt/spendtrack/internal/config"
	"github.com/denizokt/spendtrack/internal/logging"
	"github.com/denizokt/spendtrack/internal/scheduler"
	"github.com/denizokt/spendtrack/internal/server"
	"github.com/denizokt/spendtrack/internal/storage/postgres"
)

func main() {
	log := logging.Setup()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("init database")
	}
	defer store.Close()

	jobs := scheduler.New(log)
	if err := registerRecurringJobs(jobs, log); err != nil {
		log.WithError(err).Fatal("register recurring jobs")
	}
	jobs.Start()
	defer jobs.Stop()

	srv := server.New(cfg, store, log)

	go func() {
		log.Infof("spendtrack listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Error("graceful shutdown error")
	}
}

// registerRecurringJobs binds the three aggregation schedules. The
// bodies only log for now; AddOrUpdate keeps re-registration on
// restart idempotent.
func registerRecurringJobs(jobs *scheduler.Scheduler, log *logrus.Logger) error {
	entries := []struct {
		name    string
		cadence string
	}{
		{"daily-expense-aggregation", "daily"},
		{"weekly-expense-aggregation", "weekly"},
		{"monthly-expense-aggregation", "monthly"},
	}
	for _, entry := range entries {
		name := entry.name
		if err := jobs.AddOrUpdate(name, entry.cadence, func() {
			log.WithField("job", name).Info("expense aggregation triggered")
		}); err != nil {
			return err
		}
	}
	return nil
}
