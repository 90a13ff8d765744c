package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/market/internal/domain"
	"github.com/vladislavdragonenkov/market/internal/service/market"
	"github.com/vladislavdragonenkov/market/internal/service/persistence"
	"github.com/vladislavdragonenkov/market/internal/storage/memory"
	"github.com/vladislavdragonenkov/market/internal/storage/pebbledb"
	"github.com/vladislavdragonenkov/market/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Profiles domain.ProfileStore
	Items    domain.ItemStore
	Orders   domain.OrderStore
	Reviews  domain.ReviewStore
	Timeline domain.TimelineRepository
	Outbox   domain.OutboxRepository

	Sink        domain.SnapshotStore
	Service     *market.Service
	Persistence *persistence.Manager
	Logger      *log.Entry
}

// NewDependencies создаёт хранилища, приёмник снапшотов и сервисный слой.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	sink, err := openSnapshotSink(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Profiles: memory.NewIdentityStore(),
		Items:    memory.NewCatalog(),
		Orders:   memory.NewOrderLedger(),
		Reviews:  memory.NewReviewBook(),
		Timeline: memory.NewTimelineRepository(),
		Outbox:   memory.NewOutboxRepository(),
		Sink:     sink,
		Logger:   logger,
	}

	deps.Service = market.NewService(market.Stores{
		Profiles: deps.Profiles,
		Items:    deps.Items,
		Orders:   deps.Orders,
		Reviews:  deps.Reviews,
		Timeline: deps.Timeline,
		Outbox:   deps.Outbox,
	}, logger.WithField("layer", "market"))

	deps.Persistence = persistence.NewManager(persistence.Stores{
		Profiles: deps.Profiles,
		Items:    deps.Items,
		Orders:   deps.Orders,
		Reviews:  deps.Reviews,
		Timeline: deps.Timeline,
	}, sink, logger.WithField("layer", "persistence"))

	return deps, nil
}

// openSnapshotSink открывает приёмник снапшотов по настроенному драйверу.
func openSnapshotSink(ctx context.Context, cfg Config, logger *log.Entry) (domain.SnapshotStore, error) {
	switch cfg.SnapshotDriver {
	case SnapshotDriverMemory:
		logger.Warn("memory snapshot driver keeps no state across restarts")
		return memory.NewSnapshotStore(), nil
	case SnapshotDriverPebble, "":
		sink, err := pebbledb.Open(cfg.PebblePath)
		if err != nil {
			return nil, fmt.Errorf("open pebble snapshot store: %w", err)
		}
		logger.WithField("path", cfg.PebblePath).Info("pebble snapshot store opened")
		return sink, nil
	case SnapshotDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres snapshot store: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			logger.Info("postgres migrations applied")
		}
		return postgres.NewSnapshotStore(store), nil
	default:
		return nil, fmt.Errorf("unknown snapshot driver: %q", cfg.SnapshotDriver)
	}
}
