// Package common — session.go описывает сессию вызывающего.
// Ядро НЕ занимается аутентификацией: сессия приходит извне (из users)
// и передаётся явным параметром в каждую операцию.
package common

// Роли пользователей admin_users.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleSeller     = "seller"
)

// Session — проверенная личность вызывающего.
// SellerName заполнен только для роли seller (привязка к колектору).
type Session struct {
	Username   string
	Role       string
	SellerName string
}

// IsStaff — админ или супер-админ.
func (s *Session) IsStaff() bool {
	return s.Role == RoleSuperAdmin || s.Role == RoleAdmin
}

// IsSuperAdmin — высшая роль (ревью платежей, абсолютная установка баланса).
func (s *Session) IsSuperAdmin() bool {
	return s.Role == RoleSuperAdmin
}

// IsSeller — колектор, привязанный к одной стране.
func (s *Session) IsSeller() bool {
	return s.Role == RoleSeller
}
