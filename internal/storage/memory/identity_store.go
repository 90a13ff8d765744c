package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/market/internal/domain"
)

// identityStoreInMemory — хранилище профилей пользователей, ключ — CallerID.
type identityStoreInMemory struct {
	mu       sync.RWMutex
	profiles map[domain.CallerID]domain.UserProfile
}

// NewIdentityStore возвращает in-memory хранилище профилей.
func NewIdentityStore() domain.ProfileStore {
	return &identityStoreInMemory{
		profiles: make(map[domain.CallerID]domain.UserProfile),
	}
}

// Upsert создаёт или заменяет профиль. При обновлении исходный момент
// создания сохраняется: CreatedAt неизменяем после первой записи.
func (s *identityStoreInMemory) Upsert(profile domain.UserProfile) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	s.profiles[profile.ID] = profile
	return profile, nil
}

// Get возвращает профиль или ErrProfileNotFound.
func (s *identityStoreInMemory) Get(id domain.CallerID) (domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[id]
	if !ok {
		return domain.UserProfile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}

// SnapshotProfiles возвращает последовательность (ключ, профиль),
// упорядоченную по идентификатору для детерминизма снапшота.
func (s *identityStoreInMemory) SnapshotProfiles() []domain.ProfileEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.ProfileEntry, 0, len(s.profiles))
	for id, profile := range s.profiles {
		entries = append(entries, domain.ProfileEntry{ID: id, Profile: profile})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID.String() < entries[j].ID.String()
	})
	return entries
}

// RestoreProfiles перестраивает map из последовательности снапшота.
// Повторное восстановление из того же снапшота даёт идентичное состояние.
func (s *identityStoreInMemory) RestoreProfiles(entries []domain.ProfileEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = make(map[domain.CallerID]domain.UserProfile, len(entries))
	for _, entry := range entries {
		s.profiles[entry.ID] = entry.Profile
	}
}

var _ domain.ProfileStore = (*identityStoreInMemory)(nil)
