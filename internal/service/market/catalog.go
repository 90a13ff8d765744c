package market

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/market/internal/domain"
	messaging "github.com/vladislavdragonenkov/market/internal/messaging/kafka"
)

// AddItem публикует новый товар от имени вызывающего. Вызывающий обязан
// иметь профиль с флагом продавца. Товар создаётся доступным.
func (s *Service) AddItem(caller domain.CallerID, item domain.Item) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.addItem(caller, item)
	s.observe("add_item", err)
	return created, err
}

func (s *Service) addItem(caller domain.CallerID, item domain.Item) (domain.Item, error) {
	if caller.IsAnonymous() {
		return domain.Item{}, domain.ErrAnonymousCaller
	}

	profile, err := s.profiles.Get(caller)
	if err != nil {
		return domain.Item{}, err
	}
	if !profile.IsSeller {
		return domain.Item{}, domain.ErrNotASeller
	}

	item.ID = 0
	item.SellerID = caller
	item.Available = true
	item.CreatedAt = time.Now().UTC()
	if err := validationError(item.Validate()); err != nil {
		return domain.Item{}, err
	}

	created := s.items.Insert(item)

	s.logger.WithFields(log.Fields{
		"item_id": created.ID,
		"seller":  caller.String(),
	}).Info("item listed")
	s.emitItemEvent(messaging.EventTypeItemListed, created, map[string]interface{}{
		"name":        created.Name,
		"price_minor": created.PriceMinor,
		"category":    created.Category,
	})
	return created, nil
}

// UpdateItem применяет merge-patch к товару вызывающего. Продавец, момент
// создания и идентификатор неизменяемы.
func (s *Service) UpdateItem(caller domain.CallerID, itemID uint64, patch domain.ItemPatch) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.updateItem(caller, itemID, patch)
	s.observe("update_item", err)
	return updated, err
}

func (s *Service) updateItem(caller domain.CallerID, itemID uint64, patch domain.ItemPatch) (domain.Item, error) {
	if caller.IsAnonymous() {
		return domain.Item{}, domain.ErrAnonymousCaller
	}

	item, err := s.items.Get(itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if item.SellerID != caller {
		return domain.Item{}, domain.ErrNotItemSeller
	}

	updated := patch.Apply(item)
	if err := validationError(updated.Validate()); err != nil {
		return domain.Item{}, err
	}
	if err := s.items.Replace(updated); err != nil {
		return domain.Item{}, err
	}

	s.emitItemEvent(messaging.EventTypeItemUpdated, updated, map[string]interface{}{
		"available": updated.Available,
	})
	return updated, nil
}

// GetItem возвращает товар по идентификатору. Чтение публичное.
func (s *Service) GetItem(id uint64) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.items.Get(id)
	s.observe("get_item", err)
	return item, err
}

// ListItems возвращает все товары в порядке возрастания идентификаторов.
func (s *Service) ListItems() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observe("list_items", nil)
	return s.items.List()
}

// ListItemsByCategory возвращает товары указанной категории.
func (s *Service) ListItemsByCategory(category string) []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observe("list_items_by_category", nil)
	return s.items.ListByCategory(category)
}

// ListItemsBySeller возвращает товары указанного продавца.
func (s *Service) ListItemsBySeller(seller domain.CallerID) []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observe("list_items_by_seller", nil)
	return s.items.ListBySeller(seller)
}

// SearchItems ищет подстроку в имени или описании без учёта регистра.
func (s *Service) SearchItems(query string) []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observe("search_items", nil)
	return s.items.Search(query)
}
