// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасное обновление курсов
// и напоминание персоналу о пендящих заказах.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/features/orders"
	"orospv.com/orocoins-bot/internal/notify"
	"orospv.com/orocoins-bot/internal/rates"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron          *cron.Cron
	rateSource    *rates.Source
	ordersService *orders.Service
	dispatcher    *notify.Dispatcher
}

// NewScheduler создаёт планировщик задач в часовом поясе операции.
func NewScheduler(timezone string, rateSource *rates.Source, ordersService *orders.Service, dispatcher *notify.Dispatcher) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.WithError(err).WithField("timezone", timezone).Warn("Не удалось загрузить часовой пояс, используем UTC")
		loc = time.UTC
	}

	return &Scheduler{
		cron:          cron.New(cron.WithLocation(loc)),
		rateSource:    rateSource,
		ordersService: ordersService,
		dispatcher:    dispatcher,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Обновление курсов каждый час. Ошибка не фатальна:
	// расчёты продолжаются на последнем удачном снимке.
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Обновление курсов валют")
		if err := s.rateSource.Refresh(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка обновления курсов")
		}
	})

	// Каждые 30 минут — напоминание персоналу о заказах в ожидании.
	s.cron.AddFunc("*/30 * * * *", func() {
		count, err := s.ordersService.CountPending(ctx)
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка подсчёта пендящих заказов")
			return
		}
		if count == 0 {
			return
		}
		body := fmt.Sprintf("Hay %d pedido(s) esperando revisión. Usa /ordenes para verlos.", count)
		s.dispatcher.Dispatch(ctx, []notify.Event{notify.ToStaff("⏳ Pedidos pendientes", body)})
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик и ждёт завершения текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
