package market

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/market/internal/domain"
	messaging "github.com/vladislavdragonenkov/market/internal/messaging/kafka"
)

// AddReview добавляет отзыв вызывающего о товаре. Повторный отзыв того же
// автора о том же товаре отклоняется; отзывы не редактируются и не удаляются.
func (s *Service) AddReview(caller domain.CallerID, itemID uint64, rating int, comment string) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, err := s.addReview(caller, itemID, rating, comment)
	s.observe("add_review", err)
	return review, err
}

func (s *Service) addReview(caller domain.CallerID, itemID uint64, rating int, comment string) (domain.Review, error) {
	if caller.IsAnonymous() {
		return domain.Review{}, domain.ErrAnonymousCaller
	}
	if _, err := s.items.Get(itemID); err != nil {
		return domain.Review{}, err
	}

	review := domain.Review{
		ReviewerID: caller,
		ItemID:     itemID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
	if err := validationError(review.Validate()); err != nil {
		return domain.Review{}, err
	}
	if err := s.reviews.Append(review); err != nil {
		return domain.Review{}, err
	}

	s.logger.WithFields(log.Fields{
		"item_id":  itemID,
		"reviewer": caller.String(),
		"rating":   rating,
	}).Info("review added")
	s.emitEvent(messaging.EventTypeReviewAdded, "review", formatID(itemID), map[string]interface{}{
		"reviewer_id": caller.String(),
		"rating":      rating,
	})
	return review, nil
}

// GetReviews возвращает отзывы о товаре в порядке добавления. Чтение
// публичное; для неизвестного товара возвращается пустой список.
func (s *Service) GetReviews(itemID uint64) []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observe("get_reviews", nil)
	return s.reviews.ListByItem(itemID)
}
