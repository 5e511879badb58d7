// Package bonus — repository.go агрегирует таблицу orders по регистраторам.
package bonus

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository выполняет агрегирующие запросы по регистраторам.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий статистики регистраторов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// RegistrarStats возвращает агрегаты всех регистраторов,
// отсортированные по количеству заказов.
func (r *Repository) RegistrarStats(ctx context.Context) ([]*RegistrarStat, error) {
	rows, err := r.db.Query(ctx, `
		SELECT registered_by,
		       COUNT(*)::int                           AS order_count,
		       COALESCE(SUM(package_coins), 0)::bigint AS total_coins
		FROM orders
		WHERE registered_by IS NOT NULL AND registered_by <> ''
		GROUP BY registered_by
		ORDER BY order_count DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка агрегации регистраторов: %w", err)
	}
	defer rows.Close()

	var out []*RegistrarStat
	for rows.Next() {
		var s RegistrarStat
		if err := rows.Scan(&s.RegisteredBy, &s.OrderCount, &s.TotalCoins); err != nil {
			return nil, fmt.Errorf("ошибка сканирования агрегата: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
