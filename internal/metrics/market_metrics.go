package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MarketMetrics содержит метрики операций над хранилищем маркетплейса.
type MarketMetrics struct {
	// Счётчик операций по имени и результату (ok / not_found / unauthorized / ...).
	operations *prometheus.CounterVec

	// Счётчики резервирования.
	itemsReserved      prometheus.Counter
	reservationsFailed prometheus.Counter

	// Метрики цикла snapshot/restore.
	snapshotDuration prometheus.Histogram
	restoreDuration  prometheus.Histogram
	snapshotEntities *prometheus.GaugeVec

	// Счётчик событий, поставленных в outbox.
	outboxEvents prometheus.Counter
}

// NewMarketMetrics создаёт метрики в default registry.
func NewMarketMetrics() *MarketMetrics {
	return newMarketMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newMarketMetricsWithRegisterer(registerer prometheus.Registerer) *MarketMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &MarketMetrics{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "market_operations_total",
			Help: "Total number of store operations grouped by operation and result kind",
		}, []string{"operation", "result"}),
		itemsReserved: registerCounter(registerer, prometheus.CounterOpts{
			Name: "market_items_reserved_total",
			Help: "Total number of items successfully reserved for orders",
		}),
		reservationsFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "market_reservations_failed_total",
			Help: "Total number of failed all-or-nothing reservations",
		}),
		snapshotDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "market_snapshot_duration_seconds",
			Help:    "Duration of store snapshot serialization and persistence",
			Buckets: prometheus.DefBuckets,
		}),
		restoreDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "market_restore_duration_seconds",
			Help:    "Duration of store restore from the latest snapshot",
			Buckets: prometheus.DefBuckets,
		}),
		snapshotEntities: registerGaugeVec(registerer, prometheus.GaugeOpts{
			Name: "market_snapshot_entities",
			Help: "Number of entities captured by the latest snapshot, per store",
		}, []string{"store"}),
		outboxEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "market_outbox_events_total",
			Help: "Total number of domain events enqueued into the outbox",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGaugeVec(registerer prometheus.Registerer, opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	collector := prometheus.NewGaugeVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.GaugeVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOperation фиксирует завершение операции с меткой результата.
func (m *MarketMetrics) RecordOperation(operation, result string) {
	m.operations.WithLabelValues(operation, result).Inc()
}

// RecordReservation фиксирует успешное резервирование count позиций.
func (m *MarketMetrics) RecordReservation(count int) {
	m.itemsReserved.Add(float64(count))
}

// RecordReservationFailed фиксирует отказ резервирования.
func (m *MarketMetrics) RecordReservationFailed() {
	m.reservationsFailed.Inc()
}

// RecordSnapshot записывает длительность снапшота и размеры хранилищ.
func (m *MarketMetrics) RecordSnapshot(duration time.Duration, profiles, items, orders, reviews int) {
	m.snapshotDuration.Observe(duration.Seconds())
	m.snapshotEntities.WithLabelValues("profiles").Set(float64(profiles))
	m.snapshotEntities.WithLabelValues("items").Set(float64(items))
	m.snapshotEntities.WithLabelValues("orders").Set(float64(orders))
	m.snapshotEntities.WithLabelValues("reviews").Set(float64(reviews))
}

// RecordRestore записывает длительность восстановления.
func (m *MarketMetrics) RecordRestore(duration time.Duration) {
	m.restoreDuration.Observe(duration.Seconds())
}

// RecordOutboxEvent увеличивает счётчик событий outbox.
func (m *MarketMetrics) RecordOutboxEvent() {
	m.outboxEvents.Inc()
}
