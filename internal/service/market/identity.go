package market

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/market/internal/domain"
	messaging "github.com/vladislavdragonenkov/market/internal/messaging/kafka"
)

// UpsertProfile создаёт или обновляет профиль вызывающего. Идентификатор
// профиля всегда берётся из caller, поле profile.ID игнорируется.
// При обновлении исходный CreatedAt сохраняется.
func (s *Service) UpsertProfile(caller domain.CallerID, profile domain.UserProfile) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.upsertProfile(caller, profile)
	s.observe("upsert_profile", err)
	return saved, err
}

func (s *Service) upsertProfile(caller domain.CallerID, profile domain.UserProfile) (domain.UserProfile, error) {
	if caller.IsAnonymous() {
		return domain.UserProfile{}, domain.ErrAnonymousCaller
	}

	profile.ID = caller
	if err := validationError(profile.Validate()); err != nil {
		return domain.UserProfile{}, err
	}

	saved, err := s.profiles.Upsert(profile)
	if err != nil {
		return domain.UserProfile{}, err
	}

	s.logger.WithFields(log.Fields{
		"caller": caller.String(),
		"seller": saved.IsSeller,
	}).Info("profile upserted")
	s.emitEvent(messaging.EventTypeProfileUpserted, "profile", caller.String(), map[string]interface{}{
		"display_name": saved.DisplayName,
		"is_seller":    saved.IsSeller,
	})
	return saved, nil
}

// GetProfile возвращает профиль по идентификатору. Чтение публичное.
func (s *Service) GetProfile(id domain.CallerID) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.profiles.Get(id)
	s.observe("get_profile", err)
	return profile, err
}

// GetOwnProfile возвращает профиль вызывающего.
func (s *Service) GetOwnProfile(caller domain.CallerID) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller.IsAnonymous() {
		s.observe("get_own_profile", domain.ErrAnonymousCaller)
		return domain.UserProfile{}, domain.ErrAnonymousCaller
	}

	profile, err := s.profiles.Get(caller)
	s.observe("get_own_profile", err)
	return profile, err
}
