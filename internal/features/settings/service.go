// Package settings — service.go валидирует и отдаёт настройки.
package settings

import (
	"context"
	"strconv"

	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/common"
)

// Service управляет настройками приложения.
type Service struct {
	repo *Repository
}

// NewService создаёт сервис настроек.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// VESRate возвращает ручной курс VES.
// (0, false), если курс не настроен или значение испорчено.
func (s *Service) VESRate(ctx context.Context) (float64, bool) {
	raw, err := s.repo.Get(ctx, KeyVESRate)
	if err != nil {
		log.WithError(err).Warn("Не удалось прочитать ves_rate")
		return 0, false
	}
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		log.WithField("value", raw).Warn("Некорректное значение ves_rate в БД")
		return 0, false
	}
	return v, true
}

// SetVESRate сохраняет ручной курс VES. Только супер-админ.
func (s *Service) SetVESRate(ctx context.Context, session *common.Session, rate float64) error {
	if !session.IsSuperAdmin() {
		return common.ErrNotAuthorized
	}
	if rate <= 0 || rate > maxVESRate {
		return common.ErrInvalidSetting
	}

	if err := s.repo.Set(ctx, KeyVESRate, strconv.FormatFloat(rate, 'f', -1, 64), session.Username); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"rate": rate,
		"by":   session.Username,
	}).Info("Курс VES обновлён вручную")
	return nil
}
