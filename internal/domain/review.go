package domain

import "time"

const (
	// RatingMin — минимально допустимый рейтинг.
	RatingMin = 1
	// RatingMax — максимально допустимый рейтинг.
	RatingMax = 5
)

// Review — отзыв о товаре. Пара (ReviewerID, ItemID) уникальна,
// отзывы append-only: операций обновления и удаления не существует.
type Review struct {
	ReviewerID CallerID  `json:"reviewer_id"`
	ItemID     uint64    `json:"item_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate проверяет инварианты отзыва.
func (r *Review) Validate() []error {
	var errs []error

	if r.ReviewerID.IsAnonymous() {
		errs = append(errs, ErrAnonymousCaller)
	}
	if r.Rating < RatingMin || r.Rating > RatingMax {
		errs = append(errs, ErrRatingOutOfRange)
	}

	return errs
}
