package market

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/market/internal/domain"
	messaging "github.com/vladislavdragonenkov/market/internal/messaging/kafka"
)

// CreateOrder резервирует перечисленные товары и создаёт заказ.
// Резервирование атомарно: если хотя бы один товар отсутствует или уже
// недоступен, ни один товар не меняется и заказ не создаётся.
// Сумма заказа фиксируется из цен товаров на момент резервирования.
func (s *Service) CreateOrder(caller domain.CallerID, itemIDs []uint64, shippingAddress string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.createOrder(caller, itemIDs, shippingAddress)
	s.observe("create_order", err)
	return order, err
}

func (s *Service) createOrder(caller domain.CallerID, itemIDs []uint64, shippingAddress string) (domain.Order, error) {
	if caller.IsAnonymous() {
		return domain.Order{}, domain.ErrAnonymousCaller
	}
	if _, err := s.profiles.Get(caller); err != nil {
		return domain.Order{}, err
	}
	if len(itemIDs) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}

	reserved, err := s.items.Reserve(itemIDs)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordReservationFailed()
		}
		return domain.Order{}, err
	}
	if s.metrics != nil {
		s.metrics.RecordReservation(len(reserved))
	}

	var total int64
	for _, item := range reserved {
		total += item.PriceMinor
	}

	now := time.Now().UTC()
	order := s.orders.Insert(domain.Order{
		BuyerID:         caller,
		ItemIDs:         append([]uint64(nil), itemIDs...),
		TotalMinor:      total,
		Status:          domain.OrderStatusPending,
		ShippingAddress: shippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	})

	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"buyer":       caller.String(),
		"items":       len(order.ItemIDs),
		"total_minor": order.TotalMinor,
	}).Info("order created")
	s.appendTimeline(order.ID, "OrderCreated", "")
	s.emitOrderEvent(messaging.EventTypeOrderCreated, order, map[string]interface{}{
		"item_ids":    order.ItemIDs,
		"total_minor": order.TotalMinor,
	})
	return order, nil
}

// UpdateOrderStatus записывает новый статус заказа. Разрешено покупателю и
// продавцу любой позиции заказа. Проверяется только принадлежность статуса
// перечислению; допустимость самого перехода намеренно не ограничивается.
func (s *Service) UpdateOrderStatus(caller domain.CallerID, orderID uint64, status domain.OrderStatus) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.updateOrderStatus(caller, orderID, status)
	s.observe("update_order_status", err)
	return order, err
}

func (s *Service) updateOrderStatus(caller domain.CallerID, orderID uint64, status domain.OrderStatus) (domain.Order, error) {
	if caller.IsAnonymous() {
		return domain.Order{}, domain.ErrAnonymousCaller
	}

	order, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !s.isOrderParty(caller, order) {
		return domain.Order{}, domain.ErrNotOrderParty
	}
	if !domain.KnownOrderStatus(status) {
		return domain.Order{}, domain.ErrUnknownOrderStatus
	}

	previous := order.Status
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	if err := s.orders.Replace(order); err != nil {
		return domain.Order{}, err
	}

	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"from":     previous,
		"to":       status,
	}).Info("order status changed")
	s.appendTimeline(order.ID, "OrderStatusChanged", string(status))
	s.emitOrderEvent(messaging.EventTypeOrderStatusChanged, order, map[string]interface{}{
		"from": string(previous),
	})
	return order, nil
}

// GetOrder возвращает заказ. Доступно покупателю и продавцам позиций.
func (s *Service) GetOrder(caller domain.CallerID, orderID uint64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.getOrder(caller, orderID)
	s.observe("get_order", err)
	return order, err
}

func (s *Service) getOrder(caller domain.CallerID, orderID uint64) (domain.Order, error) {
	if caller.IsAnonymous() {
		return domain.Order{}, domain.ErrAnonymousCaller
	}
	order, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !s.isOrderParty(caller, order) {
		return domain.Order{}, domain.ErrNotOrderParty
	}
	return order, nil
}

// GetMyOrders возвращает заказы вызывающего как покупателя.
func (s *Service) GetMyOrders(caller domain.CallerID) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller.IsAnonymous() {
		s.observe("get_my_orders", domain.ErrAnonymousCaller)
		return nil, domain.ErrAnonymousCaller
	}

	s.observe("get_my_orders", nil)
	return s.orders.ListByBuyer(caller), nil
}

// GetOrdersForSeller возвращает заказы, содержащие хотя бы один товар
// вызывающего как продавца.
func (s *Service) GetOrdersForSeller(caller domain.CallerID) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller.IsAnonymous() {
		s.observe("get_orders_for_seller", domain.ErrAnonymousCaller)
		return nil, domain.ErrAnonymousCaller
	}

	sellerItems := s.items.ListBySeller(caller)
	itemIDs := make([]uint64, 0, len(sellerItems))
	for _, item := range sellerItems {
		itemIDs = append(itemIDs, item.ID)
	}

	s.observe("get_orders_for_seller", nil)
	return s.orders.ListContaining(itemIDs), nil
}

// OrderTimeline возвращает историю событий заказа. Доступно сторонам заказа.
func (s *Service) OrderTimeline(caller domain.CallerID, orderID uint64) ([]domain.TimelineEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.orderTimeline(caller, orderID)
	s.observe("order_timeline", err)
	return events, err
}

func (s *Service) orderTimeline(caller domain.CallerID, orderID uint64) ([]domain.TimelineEvent, error) {
	if _, err := s.getOrder(caller, orderID); err != nil {
		return nil, err
	}
	if s.timeline == nil {
		return []domain.TimelineEvent{}, nil
	}
	return s.timeline.List(orderID)
}

// isOrderParty сообщает, является ли вызывающий покупателем заказа или
// продавцом хотя бы одной его позиции.
func (s *Service) isOrderParty(caller domain.CallerID, order domain.Order) bool {
	if order.BuyerID == caller {
		return true
	}
	for _, itemID := range order.ItemIDs {
		item, err := s.items.Get(itemID)
		if err != nil {
			continue
		}
		if item.SellerID == caller {
			return true
		}
	}
	return false
}
