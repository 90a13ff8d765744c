package domain

import "time"

// Item представляет товарную позицию каталога.
// ID, SellerID и CreatedAt неизменяемы после создания; Available становится
// false ровно в момент успешного включения товара в заказ и может быть
// переключён продавцом через ItemPatch.
type Item struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	// PriceMinor — цена в минимальных денежных единицах (например, копейки).
	PriceMinor int64    `json:"price_minor"`
	Images     []string `json:"images,omitempty"`
	Category   string   `json:"category"`
	Condition  string   `json:"condition"`
	Dimensions string   `json:"dimensions,omitempty"`
	Weight     string   `json:"weight,omitempty"`
	Era        string   `json:"era,omitempty"`
	SellerID   CallerID `json:"seller_id"`
	Available  bool     `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate проверяет инварианты товара: неотрицательную цену и известного
// продавца. Пустые имя и описание допустимы.
func (i *Item) Validate() []error {
	var errs []error

	if i.PriceMinor < 0 {
		errs = append(errs, ErrNegativePrice)
	}
	if i.SellerID.IsAnonymous() {
		errs = append(errs, ErrAnonymousCaller)
	}

	return errs
}

// ItemPatch описывает merge-patch обновление товара: каждое поле независимо
// опционально, nil означает "оставить текущее значение". Неизменяемые поля
// (id, продавец, момент создания) в патче отсутствуют.
type ItemPatch struct {
	Name        *string
	Description *string
	PriceMinor  *int64
	Images      []string
	Category    *string
	Condition   *string
	Dimensions  *string
	Weight      *string
	Era         *string
	Available   *bool
}

// Apply возвращает копию товара с применёнными полями патча.
// Чистая функция: исходный товар не мутируется.
func (p ItemPatch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.PriceMinor != nil {
		item.PriceMinor = *p.PriceMinor
	}
	if p.Images != nil {
		item.Images = append([]string(nil), p.Images...)
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Condition != nil {
		item.Condition = *p.Condition
	}
	if p.Dimensions != nil {
		item.Dimensions = *p.Dimensions
	}
	if p.Weight != nil {
		item.Weight = *p.Weight
	}
	if p.Era != nil {
		item.Era = *p.Era
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
	return item
}
