package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"roster/internal/audit"
	"roster/internal/country"
	countryservice "roster/internal/country/service"
	"roster/internal/person"
	personservice "roster/internal/person/service"
	"roster/internal/platform/config"
	"roster/internal/platform/httpserver"
	"roster/internal/platform/logger"
	"roster/internal/platform/metrics"
	httptransport "roster/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("roster stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	stores, err := openStores(ctx, cfg, log, m)
	if err != nil {
		return err
	}
	defer stores.close()

	sink, err := openAuditSink(ctx, cfg.Audit, log)
	if err != nil {
		return err
	}
	defer sink.close()
	queue := audit.NewQueue(cfg.Audit.QueueSize)
	publisher := audit.NewPublisher(queue, log)

	countries, err := country.NewService(stores.countries,
		countryservice.WithLogger(log),
		countryservice.WithMetrics(m),
		countryservice.WithAuditPublisher(publisher),
	)
	if err != nil {
		return err
	}
	persons, err := person.NewService(stores.persons, countries,
		personservice.WithLogger(log),
		personservice.WithMetrics(m),
		personservice.WithAuditPublisher(publisher),
	)
	if err != nil {
		return err
	}

	if len(cfg.SeedCountries) > 0 {
		added, err := countries.SeedCountries(ctx, cfg.SeedCountries)
		if err != nil {
			return fmt.Errorf("seed countries: %w", err)
		}
		log.Info("seeded countries", "added", added, "configured", len(cfg.SeedCountries))
	}

	router := httptransport.NewRouter(httptransport.Config{
		Logger:   log,
		Metrics:  m,
		Gatherer: reg,
		Timeout:  cfg.Server.RequestTimeout,
	},
		country.NewHandler(countries, log),
		person.NewHandler(persons, log),
	)
	srv := httpserver.New(cfg.Server.Addr, router)

	// The audit worker outlives the HTTP server so events from requests
	// finishing during shutdown are still delivered.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		_ = audit.NewWorker(sink.store, queue, log).Run(workerCtx)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting roster", "addr", cfg.Server.Addr, "store", cfg.Store.Kind)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	err = g.Wait()
	stopWorker()
	<-workerDone
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
