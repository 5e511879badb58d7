// Package debt — repository.go агрегирует таблицу orders по колекторам.
package debt

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository выполняет агрегирующие запросы по заказам.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий статистики.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const statColumns = `
	SELECT seller, country, country_slug, currency_code, currency_symbol,
	       COUNT(*)::int                             AS order_count,
	       COALESCE(SUM(package_coins), 0)::bigint   AS total_coins,
	       COALESCE(SUM(package_price), 0)::float8   AS total_amount`

// AllSellerStats возвращает агрегаты по всем колекторам.
func (r *Repository) AllSellerStats(ctx context.Context) ([]*SellerStat, error) {
	rows, err := r.db.Query(ctx, statColumns+`
		FROM orders
		GROUP BY seller, country, country_slug, currency_code, currency_symbol
		ORDER BY seller
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка агрегации по колекторам: %w", err)
	}
	defer rows.Close()

	var out []*SellerStat
	for rows.Next() {
		var s SellerStat
		if err := rows.Scan(
			&s.Seller, &s.Country, &s.CountrySlug, &s.CurrencyCode, &s.CurrencySymbol,
			&s.OrderCount, &s.TotalCoins, &s.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования агрегата: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// SellerStats возвращает агрегат одного колектора.
// nil без ошибки, если у колектора ещё нет заказов.
func (r *Repository) SellerStats(ctx context.Context, sellerName string) (*SellerStat, error) {
	var s SellerStat
	err := r.db.QueryRow(ctx, statColumns+`
		FROM orders
		WHERE seller = $1
		GROUP BY seller, country, country_slug, currency_code, currency_symbol
		LIMIT 1
	`, sellerName).Scan(
		&s.Seller, &s.Country, &s.CountrySlug, &s.CurrencyCode, &s.CurrencySymbol,
		&s.OrderCount, &s.TotalCoins, &s.TotalAmount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка агрегации колектора: %w", err)
	}
	return &s, nil
}
