package domain

import "time"

// UserProfile хранит профиль пользователя маркетплейса.
// Идентификатор совпадает с CallerID владельца; профиль никогда не удаляется.
type UserProfile struct {
	ID          CallerID  `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	IsSeller    bool      `json:"is_seller"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate проверяет базовые инварианты профиля. Анонимный владелец —
// единственное отклоняемое состояние: пустое имя, email и bio допустимы.
func (p *UserProfile) Validate() []error {
	var errs []error

	if p.ID.IsAnonymous() {
		errs = append(errs, ErrAnonymousCaller)
	}

	return errs
}
