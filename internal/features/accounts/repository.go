// Package accounts — repository.go выполняет все операции с таблицами
// coin_accounts и coin_account_history.
// Все изменения баланса атомарны: либо одиночный условный UPDATE,
// либо транзакция БД с блокировкой строки.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orospv.com/orocoins-bot/internal/common"
)

// Repository предоставляет методы для работы со счетами монет.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий инвентаря.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List возвращает все счета, отсортированные по имени.
func (r *Repository) List(ctx context.Context) ([]*Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, current_balance, updated_at
		FROM coin_accounts
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения счетов: %w", err)
	}
	defer rows.Close()

	var out []*Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.CurrentBalance, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования счёта: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Get возвращает один счёт по имени.
func (r *Repository) Get(ctx context.Context, name string) (*Account, error) {
	var a Account
	err := r.db.QueryRow(ctx, `
		SELECT id, name, current_balance, updated_at
		FROM coin_accounts
		WHERE name = $1
	`, name).Scan(&a.ID, &a.Name, &a.CurrentBalance, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrInvalidAccount
		}
		return nil, fmt.Errorf("ошибка получения счёта: %w", err)
	}
	return &a, nil
}

// DebitTx списывает монеты со счёта ВНУТРИ чужой транзакции.
// Одиночный условный UPDATE: срабатывает только если монет хватает.
// Возвращает common.ErrInsufficientCoins при нехватке — вызывающий
// обязан откатить всю транзакцию (заказ без дебета невозможен).
func (r *Repository) DebitTx(ctx context.Context, tx pgx.Tx, name string, amount int64, changedBy string) error {
	var newBalance int64
	err := tx.QueryRow(ctx, `
		UPDATE coin_accounts
		SET current_balance = current_balance - $2, updated_at = NOW()
		WHERE name = $1 AND current_balance >= $2
		RETURNING current_balance
	`, name, amount).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrInsufficientCoins
		}
		return fmt.Errorf("ошибка дебета счёта: %w", err)
	}

	// Запись аудита в той же транзакции
	_, err = tx.Exec(ctx, `
		INSERT INTO coin_account_history (account_name, prev_balance, new_balance, changed_by)
		VALUES ($1, $2, $3, $4)
	`, name, newBalance+amount, newBalance, changedBy)
	if err != nil {
		return fmt.Errorf("ошибка записи истории счёта: %w", err)
	}
	return nil
}

// SetBalance выставляет абсолютный баланс счёта.
// Блокируем строку FOR UPDATE, чтобы зафиксировать prev_balance для аудита.
func (r *Repository) SetBalance(ctx context.Context, name string, newBalance int64, changedBy string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var prev int64
	err = tx.QueryRow(ctx, `
		SELECT current_balance FROM coin_accounts WHERE name = $1 FOR UPDATE
	`, name).Scan(&prev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrInvalidAccount
		}
		return fmt.Errorf("счёт не найден: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE coin_accounts SET current_balance = $2, updated_at = NOW() WHERE name = $1
	`, name, newBalance)
	if err != nil {
		return fmt.Errorf("ошибка установки баланса: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO coin_account_history (account_name, prev_balance, new_balance, changed_by)
		VALUES ($1, $2, $3, $4)
	`, name, prev, newBalance, changedBy)
	if err != nil {
		return fmt.Errorf("ошибка записи истории счёта: %w", err)
	}

	return tx.Commit(ctx)
}

// AddBalance пополняет счёт на delta монет.
// Одиночный атомарный UPDATE (current_balance = current_balance + delta),
// никакого read-modify-write — конкурентные пополнения не теряются.
func (r *Repository) AddBalance(ctx context.Context, name string, delta int64, changedBy string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var newBalance int64
	err = tx.QueryRow(ctx, `
		UPDATE coin_accounts
		SET current_balance = current_balance + $2, updated_at = NOW()
		WHERE name = $1
		RETURNING current_balance
	`, name, delta).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrInvalidAccount
		}
		return fmt.Errorf("ошибка пополнения счёта: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO coin_account_history (account_name, prev_balance, new_balance, changed_by)
		VALUES ($1, $2, $3, $4)
	`, name, newBalance-delta, newBalance, changedBy)
	if err != nil {
		return fmt.Errorf("ошибка записи истории счёта: %w", err)
	}

	return tx.Commit(ctx)
}

// History возвращает последние limit записей аудита по счёту.
func (r *Repository) History(ctx context.Context, name string, limit int) ([]*HistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, account_name, prev_balance, new_balance, changed_by, changed_at
		FROM coin_account_history
		WHERE account_name = $1
		ORDER BY changed_at DESC
		LIMIT $2
	`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории: %w", err)
	}
	defer rows.Close()

	var out []*HistoryEntry
	for rows.Next() {
		var h HistoryEntry
		if err := rows.Scan(&h.ID, &h.AccountName, &h.PrevBalance, &h.NewBalance, &h.ChangedBy, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования истории: %w", err)
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}
