package app

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MetricsAddr != ":9090" {
		t.Errorf("metrics addr = %q, want :9090", cfg.MetricsAddr)
	}
	if cfg.SnapshotDriver != SnapshotDriverPebble {
		t.Errorf("snapshot driver = %q, want pebble", cfg.SnapshotDriver)
	}
	if cfg.PebblePath == "" {
		t.Error("pebble path should have a default")
	}
	if cfg.OutboxPollInterval != time.Second {
		t.Errorf("outbox poll interval = %v, want 1s", cfg.OutboxPollInterval)
	}
	if cfg.OutboxBatchSize <= 0 {
		t.Error("outbox batch size should be positive")
	}
	if cfg.OutboxMaxAttempts <= 0 {
		t.Error("outbox max attempts should be positive")
	}
}
