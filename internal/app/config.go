package app

import "time"

// Драйверы приёмника снапшотов.
const (
	SnapshotDriverMemory   = "memory"
	SnapshotDriverPebble   = "pebble"
	SnapshotDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// MetricsAddr — адрес HTTP-сервера метрик и health-проверок.
	MetricsAddr string

	// SnapshotDriver — memory, pebble или postgres.
	SnapshotDriver string
	// PebblePath — каталог pebble-базы для драйвера pebble.
	PebblePath string
	// PostgresDSN — строка подключения для драйвера postgres.
	PostgresDSN string
	// PostgresAutoMigrate применяет up-миграции при старте.
	PostgresAutoMigrate bool

	// KafkaBrokers — список брокеров через запятую; пустая строка отключает
	// публикацию событий.
	KafkaBrokers string

	// Настройки outbox worker.
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
}

// DefaultConfig возвращает базовую конфигурацию.
func DefaultConfig() Config {
	return Config{
		MetricsAddr:        ":9090",
		SnapshotDriver:     SnapshotDriverPebble,
		PebblePath:         "data/snapshots",
		OutboxPollInterval: time.Second,
		OutboxBatchSize:    100,
		OutboxMaxAttempts:  3,
	}
}
