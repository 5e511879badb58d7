// Package orders — repository.go выполняет все операции с таблицей orders.
// Создание заказа и дебет счёта — ОДНА транзакция БД: либо обе записи
// фиксируются, либо ни одной. Переходы статусов — условные UPDATE,
// выигрывает первый зафиксировавшийся.
package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"orospv.com/orocoins-bot/internal/common"
)

// Repository предоставляет методы для работы с заказами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий заказов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// uniqueViolation — код PostgreSQL 23505 (нарушение уникального индекса).
const uniqueViolation = "23505"

// Create вставляет заказ и вызывает debit в той же транзакции.
// debit обязан выполнить условное списание монет; если монет не хватает —
// вся транзакция откатывается и заказ не существует.
// Дубликат (seller, game_username) ловится уникальным индексом.
func (r *Repository) Create(ctx context.Context, o *Order, debit func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (
			order_number, country, country_slug, game_username, seller,
			package_id, package_coins, package_price, currency_code, currency_symbol,
			is_custom, coin_account, registered_by, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 'pending')
		RETURNING id, created_at, updated_at
	`,
		o.OrderNumber, o.Country, o.CountrySlug, o.GameUsername, o.Seller,
		o.PackageID, o.PackageCoins, o.PackagePrice, o.CurrencyCode, o.CurrencySymbol,
		o.IsCustom, o.CoinAccount, o.RegisteredBy,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrDuplicateReference
		}
		return fmt.Errorf("ошибка вставки заказа: %w", err)
	}

	// Списание монет в той же транзакции — главный контракт атомарности
	if err := debit(tx); err != nil {
		return err
	}

	o.Status = StatusPending
	return tx.Commit(ctx)
}

// GetByNumber возвращает заказ по его номеру.
func (r *Repository) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var o Order
	err := r.db.QueryRow(ctx, selectColumns+`
		FROM orders WHERE order_number = $1
	`, orderNumber).Scan(scanTargets(&o)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrOrderNotFound
		}
		return nil, fmt.Errorf("ошибка получения заказа: %w", err)
	}
	return &o, nil
}

// Transition переводит заказ из pending в целевой статус.
// Условие status = 'pending' даёт семантику «выигрывает первый»:
// второй конкурентный вызов получит 0 строк и ErrOrderAlreadyProcessed.
// cancelReason пишется только при отмене.
func (r *Repository) Transition(ctx context.Context, orderNumber, status, approvedBy string, cancelReason *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $2, approved_by = $3, approved_at = NOW(),
		    cancel_reason = $4, updated_at = NOW()
		WHERE order_number = $1 AND status = 'pending'
	`, orderNumber, status, approvedBy, cancelReason)
	if err != nil {
		return fmt.Errorf("ошибка перехода статуса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrOrderAlreadyProcessed
	}
	return nil
}

// Recent возвращает последние limit заказов.
func (r *Repository) Recent(ctx context.Context, limit int) ([]*Order, error) {
	rows, err := r.db.Query(ctx, selectColumns+`
		FROM orders ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заказов: %w", err)
	}
	return collectOrders(rows)
}

// BySeller возвращает последние limit заказов колектора.
func (r *Repository) BySeller(ctx context.Context, seller string, limit int) ([]*Order, error) {
	rows, err := r.db.Query(ctx, selectColumns+`
		FROM orders WHERE seller = $1 ORDER BY created_at DESC LIMIT $2
	`, seller, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заказов колектора: %w", err)
	}
	return collectOrders(rows)
}

// CountPending возвращает количество заказов в ожидании.
// Используется фоновой задачей как сигнал «обнови дашборд», не более.
func (r *Repository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = 'pending'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта pending: %w", err)
	}
	return n, nil
}

const selectColumns = `
	SELECT id, order_number, country, country_slug, game_username, seller,
	       package_id, package_coins, package_price, currency_code, currency_symbol,
	       is_custom, coin_account, registered_by, status,
	       approved_by, approved_at, cancel_reason, created_at, updated_at`

func scanTargets(o *Order) []any {
	return []any{
		&o.ID, &o.OrderNumber, &o.Country, &o.CountrySlug, &o.GameUsername, &o.Seller,
		&o.PackageID, &o.PackageCoins, &o.PackagePrice, &o.CurrencyCode, &o.CurrencySymbol,
		&o.IsCustom, &o.CoinAccount, &o.RegisteredBy, &o.Status,
		&o.ApprovedBy, &o.ApprovedAt, &o.CancelReason, &o.CreatedAt, &o.UpdatedAt,
	}
}

func collectOrders(rows pgx.Rows) ([]*Order, error) {
	defer rows.Close()
	var out []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(scanTargets(&o)...); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заказа: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}
