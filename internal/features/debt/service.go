// Package debt — service.go собирает отчёты по долгу:
// агрегаты заказов + курсы валют + подтверждённые платежи.
package debt

import (
	"context"

	"orospv.com/orocoins-bot/internal/common"
	"orospv.com/orocoins-bot/internal/config"
	"orospv.com/orocoins-bot/internal/features/payments"
	"orospv.com/orocoins-bot/internal/features/settings"
	"orospv.com/orocoins-bot/internal/rates"
)

// Service считает долги колекторов.
type Service struct {
	repo            *Repository
	paymentsService *payments.Service
	settingsService *settings.Service
	rateSource      *rates.Source
	cfg             *config.Config
}

// NewService создаёт сервис долгов.
func NewService(repo *Repository, paymentsService *payments.Service, settingsService *settings.Service, rateSource *rates.Source, cfg *config.Config) *Service {
	return &Service{
		repo:            repo,
		paymentsService: paymentsService,
		settingsService: settingsService,
		rateSource:      rateSource,
		cfg:             cfg,
	}
}

// effectiveRates — курсы из API с ручным перекрытием для VES.
// Боливар слишком волатилен для бесплатного API, поэтому супер-админ
// может задать курс руками через настройки.
func (s *Service) effectiveRates(ctx context.Context) map[string]float64 {
	r := s.rateSource.Rates(ctx)
	if manual, ok := s.settingsService.VESRate(ctx); ok {
		r["VES"] = manual
	}
	return r
}

// ForSeller возвращает отчёт по долгу одного колектора.
// Персонал видит любого; колектор — только себя.
// nil без ошибки, если заказов ещё нет.
func (s *Service) ForSeller(ctx context.Context, session *common.Session, sellerName string) (*Report, error) {
	if session.IsSeller() && session.SellerName != sellerName {
		return nil, common.ErrNotAuthorized
	}
	if !session.IsStaff() && !session.IsSeller() {
		return nil, common.ErrNotAuthorized
	}

	stat, err := s.repo.SellerStats(ctx, sellerName)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return nil, nil
	}

	return s.buildReport(ctx, stat)
}

// ForAll возвращает отчёты по всем колекторам (только персонал).
func (s *Service) ForAll(ctx context.Context, session *common.Session) ([]*Report, error) {
	if !session.IsStaff() {
		return nil, common.ErrNotAuthorized
	}

	stats, err := s.repo.AllSellerStats(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Report, 0, len(stats))
	for _, stat := range stats {
		report, err := s.buildReport(ctx, stat)
		if err != nil {
			return nil, err
		}
		out = append(out, report)
	}
	return out, nil
}

func (s *Service) buildReport(ctx context.Context, stat *SellerStat) (*Report, error) {
	confirmed, err := s.paymentsService.ConfirmedTotalUSD(ctx, stat.Seller)
	if err != nil {
		return nil, err
	}

	ratesMap := s.effectiveRates(ctx)
	ratePerUSD, hasRate := ratesMap[stat.CurrencyCode]

	report := Compute(
		*stat,
		s.cfg.IsCommissionExempt(stat.Seller),
		s.cfg.CommissionRate,
		ratePerUSD, hasRate,
		confirmed,
	)
	return &report, nil
}
