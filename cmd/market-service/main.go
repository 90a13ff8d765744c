package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/market/internal/app"
	"github.com/vladislavdragonenkov/market/internal/version"
)

// Переменные окружения, через которые переопределяется конфигурация сервиса.
const (
	envMetricsAddr         = "MARKET_METRICS_ADDR"
	envSnapshotDriver      = "MARKET_SNAPSHOT_DRIVER"
	envPebblePath          = "MARKET_PEBBLE_PATH"
	envPostgresDSN         = "MARKET_POSTGRES_DSN"
	envPostgresAutoMigrate = "MARKET_POSTGRES_AUTO_MIGRATE"
	envKafkaBrokers        = "MARKET_KAFKA_BROKERS"
	envOutboxPollInterval  = "MARKET_OUTBOX_POLL_INTERVAL"
	envOutboxBatchSize     = "MARKET_OUTBOX_BATCH_SIZE"
	envOutboxMaxAttempts   = "MARKET_OUTBOX_MAX_ATTEMPTS"
)

// envLookup абстрагирует os.LookupEnv, чтобы чтение конфигурации можно было тестировать.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию приложения из переменных окружения.
// Некорректные значения не роняют сервис: вместо них остаются значения по
// умолчанию, а причина попадает в список предупреждений.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	if v, ok := lookup(envMetricsAddr); ok && strings.TrimSpace(v) != "" {
		cfg.MetricsAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup(envSnapshotDriver); ok && strings.TrimSpace(v) != "" {
		cfg.SnapshotDriver = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(envPebblePath); ok && strings.TrimSpace(v) != "" {
		cfg.PebblePath = strings.TrimSpace(v)
	}
	if v, ok := lookup(envPostgresDSN); ok && strings.TrimSpace(v) != "" {
		cfg.PostgresDSN = strings.TrimSpace(v)
	}
	if v, ok := lookup(envPostgresAutoMigrate); ok {
		parsed, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envPostgresAutoMigrate, err))
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}
	if v, ok := lookup(envKafkaBrokers); ok && strings.TrimSpace(v) != "" {
		cfg.KafkaBrokers = strings.TrimSpace(v)
	}
	if v, ok := lookup(envOutboxPollInterval); ok {
		parsed, err := parseDuration(v, func(d time.Duration) bool { return d > 0 }, "must be > 0")
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envOutboxPollInterval, err))
		} else {
			cfg.OutboxPollInterval = parsed
		}
	}
	if v, ok := lookup(envOutboxBatchSize); ok {
		parsed, err := parseInt(v, func(n int) bool { return n > 0 }, "must be > 0")
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envOutboxBatchSize, err))
		} else {
			cfg.OutboxBatchSize = parsed
		}
	}
	if v, ok := lookup(envOutboxMaxAttempts); ok {
		parsed, err := parseInt(v, func(n int) bool { return n > 0 }, "must be > 0")
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envOutboxMaxAttempts, err))
		} else {
			cfg.OutboxMaxAttempts = parsed
		}
	}

	return cfg, warnings
}

// parseBool понимает расширенный набор булевых значений (yes/no, on/off).
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

// parseInt разбирает целое значение и проверяет его дополнительным предикатом.
func parseInt(raw string, valid func(int) bool, constraint string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid int value %q", raw)
	}
	if !valid(value) {
		return 0, fmt.Errorf("value %d is out of range: %s", value, constraint)
	}
	return value, nil
}

// parseDuration разбирает длительность и проверяет её дополнительным предикатом.
func parseDuration(raw string, valid func(time.Duration) bool, constraint string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration value %q", raw)
	}
	if !valid(value) {
		return 0, fmt.Errorf("value %s is out of range: %s", value, constraint)
	}
	return value, nil
}

func main() {
	setupLogger()

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, warning := range warnings {
		log.Warnf("конфигурация: %s, используется значение по умолчанию", warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"metrics_addr":    cfg.MetricsAddr,
		"snapshot_driver": cfg.SnapshotDriver,
		"version":         version.GetVersion(),
		"commit":          version.GetCommit(),
		"built":           version.GetDate(),
	}).Info("запускаем MarketService")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("MarketService остановлен")
}
