package domain

// CallerID — непрозрачный идентификатор вызывающего принципала.
// Нулевое значение является выделенным анонимным идентификатором,
// который отклоняется всеми мутирующими операциями.
type CallerID struct {
	value string
}

// NewCallerID оборачивает сырой идентификатор из транспортного слоя.
// Пустая строка даёт анонимный CallerID.
func NewCallerID(raw string) CallerID {
	return CallerID{value: raw}
}

// Anonymous возвращает анонимный идентификатор.
func Anonymous() CallerID {
	return CallerID{}
}

// IsAnonymous сообщает, является ли идентификатор анонимным.
func (c CallerID) IsAnonymous() bool {
	return c.value == ""
}

// String возвращает сырой идентификатор для логов и ключей.
func (c CallerID) String() string {
	return c.value
}

// MarshalText сериализует идентификатор для снапшота.
func (c CallerID) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// UnmarshalText восстанавливает идентификатор из снапшота.
func (c *CallerID) UnmarshalText(text []byte) error {
	c.value = string(text)
	return nil
}
