package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/market/internal/health"
	"github.com/vladislavdragonenkov/market/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/market/internal/service/market"
	"github.com/vladislavdragonenkov/market/internal/service/outbox"
	"github.com/vladislavdragonenkov/market/internal/version"
)

// App связывает хранилища, сервисный слой и цикл snapshot/restore.
// Транспортный адаптер подключается к Service снаружи; App гарантирует, что
// состояние восстановлено до того, как Service станет доступен, и что снапшот
// снимается после остановки HTTP-сервера, когда новые вызовы уже не приходят.
type App struct {
	cfg    Config
	deps   *Dependencies
	logger *log.Entry
}

// New создаёт приложение и восстанавливает состояние из последнего снапшота.
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := deps.Persistence.Restore(ctx); err != nil {
		_ = deps.Sink.Close()
		return nil, fmt.Errorf("restore state: %w", err)
	}

	return &App{cfg: cfg, deps: deps, logger: logger}, nil
}

// Service возвращает сервисный слой для транспортного адаптера хоста.
func (a *App) Service() *market.Service {
	return a.deps.Service
}

// Run блокируется до отмены ctx: поднимает HTTP метрик и health-проверок,
// запускает outbox worker (если настроен Kafka), на остановке снимает снапшот
// и закрывает ресурсы.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger

	producer, _ := initKafkaProducer(a.cfg.KafkaBrokers, logger)

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	var workerDone chan struct{}
	if producer != nil {
		publisher := kafka.NewOutboxPublisher(producer, "")
		worker := outbox.NewWorker(
			a.deps.Outbox,
			publisher,
			outbox.WithLogger(logger.WithField("layer", "outbox")),
			outbox.WithPollInterval(a.cfg.OutboxPollInterval),
			outbox.WithBatchSize(a.cfg.OutboxBatchSize),
			outbox.WithMaxAttempts(a.cfg.OutboxMaxAttempts),
		)
		workerDone = make(chan struct{})
		go func() {
			worker.Run(workerCtx)
			close(workerDone)
		}()
	}

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("snapshot-sink",
		healthcheck.SnapshotSinkChecker("snapshot-sink", a.deps.Sink))

	metricsSrv := startMetricsServer(a.cfg.MetricsAddr, logger, healthHandler)

	<-ctx.Done()
	logger.Info("получен сигнал остановки, останавливаем сервис")

	// Сначала перестаём принимать работу, затем снимаем снапшот.
	shutdownHTTP(metricsSrv, logger)
	stopWorker()
	if workerDone != nil {
		<-workerDone
	}
	closeKafka(producer, logger)

	snapCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.deps.Persistence.Snapshot(snapCtx); err != nil {
		_ = a.deps.Sink.Close()
		return fmt.Errorf("snapshot on shutdown: %w", err)
	}
	if err := a.deps.Sink.Close(); err != nil {
		return fmt.Errorf("close snapshot store: %w", err)
	}

	logger.Info("сервис остановлен")
	return nil
}

// Run создаёт приложение и блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	a, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

// startMetricsServer запускает HTTP-обработчик метрик и health-проверок.
func startMetricsServer(addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}
