// Package accounts — service.go содержит бизнес-логику инвентаря:
// проверки лимитов, прав и формирование уведомлений.
package accounts

import (
	"context"

	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/common"
	"orospv.com/orocoins-bot/internal/notify"
)

// Service управляет счетами монет.
type Service struct {
	repo *Repository
}

// NewService создаёт сервис инвентаря.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List возвращает все счета (только для персонала).
func (s *Service) List(ctx context.Context, session *common.Session) ([]*Account, error) {
	if !session.IsStaff() {
		return nil, common.ErrNotAuthorized
	}
	return s.repo.List(ctx)
}

// History возвращает хвост аудита счёта (только для персонала).
func (s *Service) History(ctx context.Context, session *common.Session, name string, limit int) ([]*HistoryEntry, error) {
	if !session.IsStaff() {
		return nil, common.ErrNotAuthorized
	}
	if !ValidAccount(name) {
		return nil, common.ErrInvalidAccount
	}
	return s.repo.History(ctx, name, limit)
}

// CreditSet выставляет абсолютный баланс. Привилегия супер-админа:
// операция разрушительная, ей же правят ручные корректировки.
func (s *Service) CreditSet(ctx context.Context, session *common.Session, name string, newBalance int64) ([]notify.Event, error) {
	if !session.IsSuperAdmin() {
		return nil, common.ErrNotAuthorized
	}
	if !ValidAccount(name) {
		return nil, common.ErrInvalidAccount
	}
	if newBalance < 0 || newBalance > MaxSetBalance {
		return nil, common.ErrInvalidAmount
	}

	if err := s.repo.SetBalance(ctx, name, newBalance, session.Username); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"account": name,
		"balance": newBalance,
		"by":      session.Username,
	}).Info("Баланс счёта установлен")

	events := []notify.Event{
		notify.ToStaffExcept(session.Username,
			"🪙 Saldo actualizado — "+name,
			"Nuevo saldo: "+common.FormatCoins(newBalance)+" 🪙 (por "+session.Username+")"),
	}
	return events, nil
}

// CreditAdd пополняет счёт. Доступно всему персоналу.
func (s *Service) CreditAdd(ctx context.Context, session *common.Session, name string, delta int64) ([]notify.Event, error) {
	if !session.IsStaff() {
		return nil, common.ErrNotAuthorized
	}
	if !ValidAccount(name) {
		return nil, common.ErrInvalidAccount
	}
	if delta <= 0 || delta > MaxAddCoins {
		return nil, common.ErrInvalidAmount
	}

	if err := s.repo.AddBalance(ctx, name, delta, session.Username); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"account": name,
		"delta":   delta,
		"by":      session.Username,
	}).Info("Счёт пополнен")

	events := []notify.Event{
		notify.ToStaffExcept(session.Username,
			"🪙 Recarga — "+name,
			"+"+common.FormatCoins(delta)+" 🪙 (por "+session.Username+")"),
	}
	return events, nil
}
