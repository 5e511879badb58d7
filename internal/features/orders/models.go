// Package orders — движок заказов: создание с атомарным дебетом инвентаря
// и переходы статусов. models.go описывает структуру заказа.
package orders

import "time"

// Статусы заказа. Переходы только pending → completed или pending → cancelled,
// назад пути нет.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Order — зарегистрированный заказ на пополнение монет.
// Пара (seller, game_username) уникальна: один компробанте нельзя
// зарегистрировать дважды у одного колектора.
type Order struct {
	ID             int64      `db:"id"`
	OrderNumber    string     `db:"order_number"` // OC-<base36 ts>-<4 симв>
	Country        string     `db:"country"`
	CountrySlug    string     `db:"country_slug"`
	GameUsername   string     `db:"game_username"` // Референция платежа (comprobante)
	Seller         string     `db:"seller"`        // Колектор, принявший оплату
	PackageID      string     `db:"package_id"`
	PackageCoins   int64      `db:"package_coins"`
	PackagePrice   float64    `db:"package_price"`
	CurrencyCode   string     `db:"currency_code"`
	CurrencySymbol string     `db:"currency_symbol"`
	IsCustom       bool       `db:"is_custom"`
	CoinAccount    string     `db:"coin_account"`  // Счёт, с которого списаны монеты
	RegisteredBy   string     `db:"registered_by"` // Сотрудник, оформивший заказ
	Status         string     `db:"status"`
	ApprovedBy     *string    `db:"approved_by"`
	ApprovedAt     *time.Time `db:"approved_at"`
	CancelReason   *string    `db:"cancel_reason"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// CreateInput — данные нового заказа. Страна НЕ принимается от клиента:
// она выводится из привязки колектора в каталоге.
type CreateInput struct {
	Seller       string  // Колектор (из каталога)
	PackageID    string  // ID пакета; пусто для кастомного заказа
	CustomPrice  float64 // Цена кастомного заказа
	CustomCoins  int64   // Монеты кастомного заказа (сверяются с расчётом)
	GameUsername string  // Референция платежа
	CoinAccount  string  // Счёт для дебета
}
