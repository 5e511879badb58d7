// Package debt — расчёт долга колекторов перед операцией.
// Чистая читающая модель поверх таблиц orders и collector_payments:
// ничего не мутирует, считается по требованию.
package debt

import "github.com/shopspring/decimal"

// SellerStat — агрегат заказов одного колектора.
type SellerStat struct {
	Seller         string  `db:"seller"`
	Country        string  `db:"country"`
	CountrySlug    string  `db:"country_slug"`
	CurrencyCode   string  `db:"currency_code"`
	CurrencySymbol string  `db:"currency_symbol"`
	OrderCount     int     `db:"order_count"`
	TotalCoins     int64   `db:"total_coins"`
	TotalAmount    float64 `db:"total_amount"` // В локальной валюте
}

// Report — долг колектора.
//
// DebtUSD/OutstandingUSD равны nil, когда для валюты нет курса:
// это «N/A», а не ноль. OutstandingUSD может быть отрицательным
// (переплата) — усечение до нуля допускается только при отображении.
type Report struct {
	Stat           SellerStat
	Exempt         bool
	Commission     decimal.Decimal  // total × ставка; 0 для освобождённых
	DebtLocal      decimal.Decimal  // total − комиссия
	DebtUSD        *decimal.Decimal // Конвертация в USD; nil = нет курса
	ConfirmedUSD   decimal.Decimal  // Сумма подтверждённых платежей
	OutstandingUSD *decimal.Decimal // DebtUSD − ConfirmedUSD; nil = нет курса
}

// Compute считает долг по агрегату. Чистая функция:
// commission = exempt ? 0 : total × rate; debt_local = total − commission;
// debt_usd = debt_local / ratePerUSD (если курс есть);
// outstanding = debt_usd − confirmed.
func Compute(stat SellerStat, exempt bool, commissionRate float64, ratePerUSD float64, hasRate bool, confirmedUSD float64) Report {
	total := decimal.NewFromFloat(stat.TotalAmount)

	commission := decimal.Zero
	if !exempt {
		commission = total.Mul(decimal.NewFromFloat(commissionRate))
	}
	debtLocal := total.Sub(commission)

	r := Report{
		Stat:         stat,
		Exempt:       exempt,
		Commission:   commission,
		DebtLocal:    debtLocal,
		ConfirmedUSD: decimal.NewFromFloat(confirmedUSD),
	}

	if hasRate && ratePerUSD > 0 {
		usd := debtLocal.Div(decimal.NewFromFloat(ratePerUSD))
		r.DebtUSD = &usd
		outstanding := usd.Sub(r.ConfirmedUSD)
		r.OutstandingUSD = &outstanding
	}
	return r
}
