package domain

import (
	"errors"
	"fmt"
)

// Корневые виды ошибок. Конкретные ошибки ниже оборачивают один из них,
// поэтому транспортный адаптер может классифицировать любой отказ через errors.Is.
var (
	// ErrNotFound — указанный профиль/товар/заказ отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized — у вызывающего нет требуемого отношения к сущности.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation — аргументы вызова не проходят проверку.
	ErrValidation = errors.New("validation failed")
	// ErrConflict — операция конфликтует с текущим состоянием хранилища.
	ErrConflict = errors.New("conflict")
)

var (
	// ErrAnonymousCaller — мутирующий вызов от анонимного принципала.
	ErrAnonymousCaller = fmt.Errorf("%w: caller must be authenticated", ErrValidation)
	// ErrProfileNotFound — профиль вызывающего не найден.
	ErrProfileNotFound = fmt.Errorf("%w: profile does not exist", ErrNotFound)
	// ErrItemNotFound — товар с указанным id не найден.
	ErrItemNotFound = fmt.Errorf("%w: item does not exist", ErrNotFound)
	// ErrOrderNotFound — заказ с указанным id не найден.
	ErrOrderNotFound = fmt.Errorf("%w: order does not exist", ErrNotFound)
	// ErrSnapshotNotFound — в хранилище нет ни одного снапшота.
	ErrSnapshotNotFound = fmt.Errorf("%w: snapshot does not exist", ErrNotFound)
	// ErrNotASeller — профиль существует, но не зарегистрирован как продавец.
	ErrNotASeller = fmt.Errorf("%w: profile is not registered as a seller", ErrUnauthorized)
	// ErrNotItemSeller — вызывающий не является продавцом товара.
	ErrNotItemSeller = fmt.Errorf("%w: caller is not the seller of this item", ErrUnauthorized)
	// ErrNotOrderParty — вызывающий не покупатель и не продавец ни одной позиции заказа.
	ErrNotOrderParty = fmt.Errorf("%w: caller is neither the buyer nor a participating seller", ErrUnauthorized)
	// ErrItemUnavailable — товар уже недоступен для резервирования.
	ErrItemUnavailable = fmt.Errorf("%w: item is not available", ErrConflict)
	// ErrDuplicateReview — вызывающий уже оставил отзыв на этот товар.
	ErrDuplicateReview = fmt.Errorf("%w: reviewer already reviewed this item", ErrConflict)
	// ErrRatingOutOfRange — рейтинг вне диапазона [1,5].
	ErrRatingOutOfRange = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	// ErrUnknownOrderStatus — целевой статус заказа не входит в перечисление.
	ErrUnknownOrderStatus = fmt.Errorf("%w: unknown order status", ErrValidation)
	// ErrEmptyOrder — заказ без единой позиции.
	ErrEmptyOrder = fmt.Errorf("%w: order must reference at least one item", ErrValidation)
	// ErrNegativePrice — цена товара отрицательная.
	ErrNegativePrice = fmt.Errorf("%w: price must be non-negative", ErrValidation)
	// ErrOutboxRecordMissing — запись outbox не найдена при смене статуса.
	ErrOutboxRecordMissing = fmt.Errorf("%w: outbox record does not exist", ErrNotFound)
)

// IsNotFound проверяет, относится ли ошибка к виду NotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized проверяет, относится ли ошибка к виду Unauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation проверяет, относится ли ошибка к виду ValidationError.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConflict проверяет, относится ли ошибка к виду Conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// ErrorKind возвращает строковую метку вида ошибки для метрик и логов.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsNotFound(err):
		return "not_found"
	case IsUnauthorized(err):
		return "unauthorized"
	case IsValidation(err):
		return "validation"
	case IsConflict(err):
		return "conflict"
	default:
		return "internal"
	}
}
