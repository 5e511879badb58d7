// Package payments — платежи колекторов в счёт долга.
// Платёж самодекларируется колектором (референция Binance, без проверки
// по платёжной системе) и проходит ревью супер-админа ровно один раз.
package payments

import "time"

// Статусы платежа. Переход единственный: pending → confirmed | rejected.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
)

// Payment — заявленный платёж колектора в USD.
type Payment struct {
	ID           int64      `db:"id"`
	SellerName   string     `db:"seller_name"`
	AmountUSD    float64    `db:"amount_usd"` // Всегда > 0
	Reference    string     `db:"reference"`  // Референция Binance
	Notes        *string    `db:"notes"`
	Status       string     `db:"status"`
	RejectReason *string    `db:"reject_reason"`
	SubmittedBy  string     `db:"submitted_by"`
	ReviewedBy   *string    `db:"reviewed_by"`
	ReviewedAt   *time.Time `db:"reviewed_at"`
	CreatedAt    time.Time  `db:"created_at"`
}
