// Package users — repository.go работает с таблицами admin_users
// и login_attempts.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orospv.com/orocoins-bot/internal/common"
)

// Repository предоставляет методы для работы с пользователями.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий пользователей.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetByUsername возвращает активного пользователя по имени.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*AdminUser, error) {
	var u AdminUser
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, role, seller_name, is_active, created_at
		FROM admin_users
		WHERE username = $1 AND is_active = TRUE
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.SellerName, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return &u, nil
}

// Upsert создаёт пользователя; существующего не трогает.
// Используется при бутстрапе первого супер-админа.
func (r *Repository) Upsert(ctx context.Context, username, passwordHash, role string, sellerName *string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO admin_users (username, password_hash, role, seller_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO NOTHING
	`, username, passwordHash, role, sellerName)
	if err != nil {
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return nil
}

// CountUsers возвращает количество учётных записей.
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта пользователей: %w", err)
	}
	return n, nil
}

// LogAttempt записывает попытку входа.
func (r *Repository) LogAttempt(ctx context.Context, username string, success bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO login_attempts (username, success) VALUES ($1, $2)
	`, username, success)
	return err
}

// RecentFailedAttempts возвращает число неудачных попыток за период.
func (r *Repository) RecentFailedAttempts(ctx context.Context, username string, period time.Duration) (int, error) {
	since := time.Now().Add(-period)
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM login_attempts
		WHERE username = $1 AND success = FALSE AND attempt_time >= $2
	`, username, since).Scan(&count)
	return count, err
}
