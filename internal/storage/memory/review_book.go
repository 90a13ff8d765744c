package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/market/internal/domain"
)

// reviewBookInMemory хранит независимый append-only список отзывов на товар.
type reviewBookInMemory struct {
	mu      sync.RWMutex
	reviews map[uint64][]domain.Review
}

// NewReviewBook возвращает in-memory книгу отзывов.
func NewReviewBook() domain.ReviewStore {
	return &reviewBookInMemory{reviews: make(map[uint64][]domain.Review)}
}

// Append добавляет отзыв в конец списка товара. Повторный отзыв того же
// автора на тот же товар отклоняется с ErrDuplicateReview.
func (b *reviewBookInMemory) Append(review domain.Review) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, existing := range b.reviews[review.ItemID] {
		if existing.ReviewerID == review.ReviewerID {
			return domain.ErrDuplicateReview
		}
	}

	b.reviews[review.ItemID] = append(b.reviews[review.ItemID], review)
	return nil
}

// ListByItem возвращает копию списка отзывов товара в порядке добавления;
// пустой срез, если отзывов нет.
func (b *reviewBookInMemory) ListByItem(itemID uint64) []domain.Review {
	b.mu.RLock()
	defer b.mu.RUnlock()

	reviews := b.reviews[itemID]
	result := make([]domain.Review, len(reviews))
	copy(result, reviews)
	return result
}

// SnapshotReviews возвращает последовательности отзывов, упорядоченные по id товара.
func (b *reviewBookInMemory) SnapshotReviews() []domain.ReviewEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := make([]domain.ReviewEntry, 0, len(b.reviews))
	for itemID, reviews := range b.reviews {
		copied := make([]domain.Review, len(reviews))
		copy(copied, reviews)
		entries = append(entries, domain.ReviewEntry{ItemID: itemID, Reviews: copied})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ItemID < entries[j].ItemID })
	return entries
}

// RestoreReviews перестраивает книгу из снапшота, сохраняя порядок списков.
func (b *reviewBookInMemory) RestoreReviews(entries []domain.ReviewEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reviews = make(map[uint64][]domain.Review, len(entries))
	for _, entry := range entries {
		copied := make([]domain.Review, len(entry.Reviews))
		copy(copied, entry.Reviews)
		b.reviews[entry.ItemID] = copied
	}
}

var _ domain.ReviewStore = (*reviewBookInMemory)(nil)
