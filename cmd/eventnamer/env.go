package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"event-naming-service/internal/adapters/eventstore"
	"event-naming-service/internal/adapters/gazetteer"
	"event-naming-service/internal/config"
	"event-naming-service/internal/domain"
	"event-naming-service/internal/platform/db"
	"event-naming-service/internal/ports"
	"event-naming-service/internal/services"
)

// store bundles the event store with its seeding side and its cleanup.
type store struct {
	ports.EventStore
	Seeder ports.EventSeeder
	// InitSchema creates the backend tables if they are missing.
	InitSchema func(ctx context.Context) error
	Close      func()
}

func openStore(ctx context.Context, c config.StoreConfig, log *zap.Logger) (*store, error) {
	switch driver := strings.ToLower(strings.TrimSpace(c.Driver)); driver {
	case "sqlite", "":
		conn, err := db.OpenSqlite(c.Path)
		if err != nil {
			return nil, eris.Wrap(err, "open store")
		}
		s := eventstore.NewSqliteEventStore(conn)
		return &store{
			EventStore: s,
			Seeder:     s,
			InitSchema: func(context.Context) error { return eventstore.InitSqliteSchema(conn) },
			Close:      func() { _ = conn.Close() },
		}, nil

	case "postgres":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return nil, eris.New("open store: database url is required for the postgres driver")
		}
		pool, err := db.OpenPostgres(ctx, c.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "open store")
		}
		s := eventstore.NewPostgresEventStore(pool, log)
		return &store{
			EventStore: s,
			Seeder:     s,
			InitSchema: func(ctx context.Context) error { return eventstore.InitPostgresSchema(ctx, pool) },
			Close:      pool.Close,
		}, nil

	case "memory":
		s := eventstore.NewMemoryEventStore()
		return &store{
			EventStore: s,
			Seeder:     s,
			InitSchema: func(context.Context) error { return nil },
			Close:      func() {},
		}, nil

	default:
		return nil, eris.Errorf("open store: unknown driver %q", driver)
	}
}

// resolution validates the resolution options, then loads the gazetteer.
// Config errors surface before any file is read.
func resolution(log *zap.Logger) (config.ResolutionConfig, domain.Gazetteer, error) {
	res, err := cfg.ResolutionConfig()
	if err != nil {
		return config.ResolutionConfig{}, nil, eris.Wrap(err, "resolution config")
	}

	if strings.TrimSpace(cfg.Gazetteer.Path) == "" {
		return config.ResolutionConfig{}, nil, eris.New("gazetteer path is required (--locations-file)")
	}

	gaz, _, err := gazetteer.LoadFile(cfg.Gazetteer.Path, res.MinPopulation, log)
	if err != nil {
		return config.ResolutionConfig{}, nil, eris.Wrap(err, "load gazetteer")
	}

	return res, gaz, nil
}

func newNamer(s ports.EventStore, gaz domain.Gazetteer, res config.ResolutionConfig, log *zap.Logger) *services.EventNamer {
	return &services.EventNamer{
		Store:     s,
		Gazetteer: gaz,
		Config:    res,
		Logger:    log,
		DryRun:    cfg.Naming.DryRun,
		Annotate:  cfg.Naming.Annotate,
	}
}
