// Package users — service.go: проверка пароля, блокировка после
// неудачных попыток и реестр привязок чат → сессия.
// Привязки держим в памяти (как и таймауты диалогов): рестарт бота
// просто требует нового /login.
package users

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"orospv.com/orocoins-bot/internal/common"
	"orospv.com/orocoins-bot/internal/config"
)

// Service управляет аутентификацией и сессиями.
type Service struct {
	repo *Repository
	cfg  *config.Config

	bindingsMu sync.RWMutex
	bindings   map[int64]*binding // chatID → сессия
}

// NewService создаёт сервис пользователей.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		cfg:      cfg,
		bindings: make(map[int64]*binding),
	}
}

// Login проверяет пароль и привязывает чат к сессии.
// Защита от brute-force: после LoginMaxAttempts неудач — блокировка
// на LoginLockoutWindow. Несуществующий логин отвечает тем же текстом,
// что и неверный пароль.
func (s *Service) Login(ctx context.Context, chatID int64, username, password string) (*common.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.ErrWrongPassword
	}

	attempts, err := s.repo.RecentFailedAttempts(ctx, username, s.cfg.LoginLockoutWindow)
	if err != nil {
		return nil, err
	}
	if attempts >= s.cfg.LoginMaxAttempts {
		return nil, common.ErrTooManyAttempts
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		// Логируем неудачу и для несуществующих имён: окно блокировки общее
		if logErr := s.repo.LogAttempt(ctx, username, false); logErr != nil {
			log.WithError(logErr).Warn("Не удалось записать попытку входа")
		}
		return nil, common.ErrWrongPassword
	}

	match := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	if logErr := s.repo.LogAttempt(ctx, username, match); logErr != nil {
		log.WithError(logErr).Warn("Не удалось записать попытку входа")
	}
	if !match {
		return nil, common.ErrWrongPassword
	}

	session := common.Session{
		Username: user.Username,
		Role:     user.Role,
	}
	if user.SellerName != nil {
		session.SellerName = *user.SellerName
	}

	s.bindingsMu.Lock()
	s.bindings[chatID] = &binding{
		session:   session,
		expiresAt: time.Now().Add(s.cfg.SessionTTL),
	}
	s.bindingsMu.Unlock()

	log.WithFields(log.Fields{
		"username": user.Username,
		"role":     user.Role,
		"chat_id":  chatID,
	}).Info("Пользователь вошёл")

	return &session, nil
}

// Logout снимает привязку чата.
func (s *Service) Logout(chatID int64) {
	s.bindingsMu.Lock()
	delete(s.bindings, chatID)
	s.bindingsMu.Unlock()
}

// SessionFor возвращает сессию чата; nil, если её нет или она истекла.
func (s *Service) SessionFor(chatID int64) *common.Session {
	s.bindingsMu.RLock()
	b, ok := s.bindings[chatID]
	s.bindingsMu.RUnlock()

	if !ok {
		return nil
	}
	if time.Now().After(b.expiresAt) {
		s.Logout(chatID)
		return nil
	}
	sess := b.session
	return &sess
}

// SellerChats возвращает чаты колектора (реализация notify.ChatResolver).
// Уведомления доходят только до залогиненных — для офлайна это no-op.
func (s *Service) SellerChats(_ context.Context, sellerName string) []int64 {
	s.bindingsMu.RLock()
	defer s.bindingsMu.RUnlock()

	now := time.Now()
	var out []int64
	for chatID, b := range s.bindings {
		if now.After(b.expiresAt) {
			continue
		}
		if b.session.IsSeller() && b.session.SellerName == sellerName {
			out = append(out, chatID)
		}
	}
	return out
}

// StaffChats возвращает чаты персонала, кроме exceptUsername.
func (s *Service) StaffChats(_ context.Context, exceptUsername string) []int64 {
	s.bindingsMu.RLock()
	defer s.bindingsMu.RUnlock()

	now := time.Now()
	var out []int64
	for chatID, b := range s.bindings {
		if now.After(b.expiresAt) {
			continue
		}
		if b.session.IsStaff() && b.session.Username != exceptUsername {
			out = append(out, chatID)
		}
	}
	return out
}

// Bootstrap создаёт первого супер-админа, если таблица пуста.
// Хеш приходит из окружения — пароль в конфиге не хранится.
func (s *Service) Bootstrap(ctx context.Context, username, passwordHash string) error {
	if username == "" || passwordHash == "" {
		return nil
	}
	n, err := s.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if err := s.repo.Upsert(ctx, username, passwordHash, common.RoleSuperAdmin, nil); err != nil {
		return err
	}
	log.WithField("username", username).Info("Создан начальный супер-админ")
	return nil
}
