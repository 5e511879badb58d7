// Package payments — repository.go выполняет все операции с таблицей
// collector_payments. Ревью — условный UPDATE по status = 'pending',
// повторное ревью получает 0 строк и превращается в конфликт.
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orospv.com/orocoins-bot/internal/common"
)

// Repository предоставляет методы для работы с платежами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий платежей.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const selectColumns = `
	SELECT id, seller_name, amount_usd, reference, notes, status,
	       reject_reason, submitted_by, reviewed_by, reviewed_at, created_at`

func scanTargets(p *Payment) []any {
	return []any{
		&p.ID, &p.SellerName, &p.AmountUSD, &p.Reference, &p.Notes, &p.Status,
		&p.RejectReason, &p.SubmittedBy, &p.ReviewedBy, &p.ReviewedAt, &p.CreatedAt,
	}
}

// Create записывает новый платёж со статусом pending.
func (r *Repository) Create(ctx context.Context, p *Payment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO collector_payments (seller_name, amount_usd, reference, notes, submitted_by, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING id, created_at
	`, p.SellerName, p.AmountUSD, p.Reference, p.Notes, p.SubmittedBy).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания платежа: %w", err)
	}
	p.Status = StatusPending
	return nil
}

// GetByID возвращает платёж по ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	var p Payment
	err := r.db.QueryRow(ctx, selectColumns+`
		FROM collector_payments WHERE id = $1
	`, id).Scan(scanTargets(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("ошибка получения платежа: %w", err)
	}
	return &p, nil
}

// BySeller возвращает платежи колектора (свежие первыми).
func (r *Repository) BySeller(ctx context.Context, sellerName string) ([]*Payment, error) {
	rows, err := r.db.Query(ctx, selectColumns+`
		FROM collector_payments WHERE seller_name = $1 ORDER BY created_at DESC
	`, sellerName)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения платежей: %w", err)
	}
	return collect(rows)
}

// All возвращает все платежи (свежие первыми).
func (r *Repository) All(ctx context.Context, limit int) ([]*Payment, error) {
	rows, err := r.db.Query(ctx, selectColumns+`
		FROM collector_payments ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения платежей: %w", err)
	}
	return collect(rows)
}

// Review фиксирует решение по платежу. Условие status = 'pending'
// гарантирует единственность ревью под конкурентными вызовами.
func (r *Repository) Review(ctx context.Context, id int64, status, reviewedBy string, rejectReason *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE collector_payments
		SET status = $2, reviewed_by = $3, reviewed_at = NOW(), reject_reason = $4
		WHERE id = $1 AND status = 'pending'
	`, id, status, reviewedBy, rejectReason)
	if err != nil {
		return fmt.Errorf("ошибка ревью платежа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrPaymentAlreadyReviewed
	}
	return nil
}

// ConfirmedTotalUSD возвращает сумму подтверждённых платежей колектора.
// Это смещение, вычитаемое из расчётного долга.
func (r *Repository) ConfirmedTotalUSD(ctx context.Context, sellerName string) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_usd), 0)
		FROM collector_payments
		WHERE seller_name = $1 AND status = 'confirmed'
	`, sellerName).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка суммирования платежей: %w", err)
	}
	return total, nil
}

func collect(rows pgx.Rows) ([]*Payment, error) {
	defer rows.Close()
	var out []*Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(scanTargets(&p)...); err != nil {
			return nil, fmt.Errorf("ошибка сканирования платежа: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
