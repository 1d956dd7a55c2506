package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"roster/internal/audit"
	"roster/internal/platform/config"
	"roster/internal/platform/metrics"
	"roster/internal/platform/redis"
	"roster/internal/storage"
)

// backing holds the stores the services run on and whatever has to be
// closed when the process exits.
type backing struct {
	countries storage.CountryStore
	persons   storage.PersonStore
	closers   []func() error
}

func (b *backing) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i]()
	}
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger, m *metrics.Metrics) (*backing, error) {
	b := &backing{}
	var records storage.RecordStore

	switch cfg.Store.Kind {
	case config.StorePostgres:
		db, err := storage.OpenPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, db.Close)
		applied, err := storage.Migrate(db)
		if err != nil {
			b.close()
			return nil, err
		}
		log.Info("migrations applied", "count", applied)
		records = storage.NewPostgres(db)
	case config.StoreSQLite:
		if dir := filepath.Dir(cfg.Store.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		gdb, err := storage.OpenSQLite(cfg.Store.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		b.closers = append(b.closers, sqlDB.Close)
		records = storage.NewGorm(gdb)
	default:
		records = storage.NewInMemory()
	}

	b.countries = records
	b.persons = records

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		b.close()
		return nil, err
	}
	if rc != nil {
		b.closers = append(b.closers, rc.Close)
		b.countries = storage.NewCountryCache(records, rc.Client, cfg.Redis.CacheTTL,
			storage.WithCacheLogger(log),
			storage.WithCacheMetrics(m),
		)
		log.Info("country cache enabled", "ttl", cfg.Redis.CacheTTL)
	}
	return b, nil
}

// auditSink is where the audit worker delivers events.
type auditSink struct {
	store audit.Store
	close func()
}

func openAuditSink(ctx context.Context, cfg config.Audit, log *slog.Logger) (*auditSink, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return &auditSink{store: audit.NewLogStore(log), close: func() {}}, nil
	}
	ks, err := audit.NewKafkaStore(cfg.KafkaBrokers, cfg.Topic)
	if err != nil {
		return nil, err
	}
	if err := ks.EnsureTopic(ctx, 1, 1); err != nil {
		ks.Close()
		return nil, err
	}
	log.Info("audit events go to kafka", "topic", cfg.Topic)
	return &auditSink{store: ks, close: ks.Close}, nil
}
