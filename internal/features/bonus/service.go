// Package bonus — service.go отдаёт отчёты по бонусам регистраторов.
package bonus

import (
	"context"

	"orospv.com/orocoins-bot/internal/common"
	"orospv.com/orocoins-bot/internal/config"
)

// Service считает бонусы регистраторов.
type Service struct {
	repo *Repository
	cfg  *config.Config
}

// NewService создаёт сервис бонусов.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Reports возвращает бонусы всех регистраторов (только персонал).
func (s *Service) Reports(ctx context.Context, session *common.Session) ([]*Report, error) {
	if !session.IsStaff() {
		return nil, common.ErrNotAuthorized
	}

	stats, err := s.repo.RegistrarStats(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Report, 0, len(stats))
	for _, stat := range stats {
		report := Compute(*stat, s.cfg.RegistrarMilestoneCoins, s.cfg.RegistrarBonusUSD)
		out = append(out, &report)
	}
	return out, nil
}
