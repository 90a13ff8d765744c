package market

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/market/internal/domain"
	messaging "github.com/vladislavdragonenkov/market/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/market/internal/metrics"
)

// Service — транзакционное ядро маркетплейса: профили, каталог, заказы,
// отзывы. Один мьютекс сериализует все операции целиком, поэтому каждая
// операция наблюдает согласованное состояние всех хранилищ и либо применяет
// все свои эффекты, либо ни одного.
type Service struct {
	mu sync.Mutex

	profiles domain.ProfileStore
	items    domain.ItemStore
	orders   domain.OrderStore
	reviews  domain.ReviewStore
	timeline domain.TimelineRepository
	outbox   domain.OutboxRepository

	logger  *log.Entry
	metrics *metrics.MarketMetrics
}

// Stores группирует хранилища, которыми владеет сервис.
type Stores struct {
	Profiles domain.ProfileStore
	Items    domain.ItemStore
	Orders   domain.OrderStore
	Reviews  domain.ReviewStore
	Timeline domain.TimelineRepository
	Outbox   domain.OutboxRepository
}

// NewService создаёт рабочий экземпляр сервиса.
func NewService(stores Stores, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "market")
	}
	return &Service{
		profiles: stores.Profiles,
		items:    stores.Items,
		orders:   stores.Orders,
		reviews:  stores.Reviews,
		timeline: stores.Timeline,
		outbox:   stores.Outbox,
		logger:   logger,
		metrics:  metrics.NewMarketMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(stores Stores, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "market")
	}
	return &Service{
		profiles: stores.Profiles,
		items:    stores.Items,
		orders:   stores.Orders,
		reviews:  stores.Reviews,
		timeline: stores.Timeline,
		outbox:   stores.Outbox,
		logger:   logger,
		metrics:  nil,
	}
}

// observe фиксирует результат операции в метриках и логирует внутренние сбои.
func (s *Service) observe(operation string, err error) {
	if s.metrics != nil {
		s.metrics.RecordOperation(operation, domain.ErrorKind(err))
	}
	if err != nil && domain.ErrorKind(err) == "internal" {
		s.logger.WithError(err).WithField("operation", operation).Error("operation failed")
	}
}

// validationError сворачивает результат Validate в одну ошибку.
func validationError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// emitItemEvent кладёт типизированное событие каталога в outbox.
func (s *Service) emitItemEvent(eventType messaging.EventType, item domain.Item, metadata map[string]interface{}) {
	event := messaging.NewItemEvent(eventType, item.ID, item.SellerID.String(), metadata)
	s.emitEvent(eventType, "item", formatID(item.ID), event)
}

// emitOrderEvent кладёт типизированное событие заказа в outbox.
func (s *Service) emitOrderEvent(eventType messaging.EventType, order domain.Order, metadata map[string]interface{}) {
	event := messaging.NewOrderEvent(eventType, order.ID, order.BuyerID.String(), string(order.Status), metadata)
	s.emitEvent(eventType, "order", formatID(order.ID), event)
}

// emitEvent кладёт закодированное событие в outbox для последующей публикации.
// Отказ эмиссии не откатывает операцию: событие носит уведомительный характер.
func (s *Service) emitEvent(eventType messaging.EventType, aggregateType, aggregateID string, payload interface{}) {
	if s.outbox == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"event":        eventType,
			"aggregate_id": aggregateID,
		}).Error("marshal event failed")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     string(eventType),
		Payload:       data,
	}
	if _, err := s.outbox.Enqueue(msg); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"event":        eventType,
			"aggregate_id": aggregateID,
		}).Error("enqueue event failed")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordOutboxEvent()
	}
}

// appendTimeline добавляет событие в историю заказа.
func (s *Service) appendTimeline(orderID uint64, eventType, detail string) {
	if s.timeline == nil {
		return
	}
	event := domain.TimelineEvent{
		OrderID:  orderID,
		Type:     eventType,
		Detail:   detail,
		Occurred: time.Now().UTC(),
	}
	if err := s.timeline.Append(event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": orderID,
			"event":    eventType,
		}).Warn("append timeline event failed")
	}
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
