// Package users — пользователи admin_users и привязка Telegram-чатов.
// Аутентификация: /login <usuario> <contraseña>, bcrypt-хеш в БД,
// блокировка после серии неудачных попыток.
package users

import (
	"time"

	"orospv.com/orocoins-bot/internal/common"
)

// AdminUser — учётная запись персонала или колектора.
// SellerName заполнен только для роли seller.
type AdminUser struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"` // bcrypt, cost 12
	Role         string    `db:"role"`          // super_admin / admin / seller
	SellerName   *string   `db:"seller_name"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

// LoginAttempt — попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	ID          int64     `db:"id"`
	Username    string    `db:"username"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// binding — активная привязка Telegram-чата к сессии (in-memory).
// Пропадает при рестарте — пользователь логинится заново.
type binding struct {
	session   common.Session
	expiresAt time.Time
}
