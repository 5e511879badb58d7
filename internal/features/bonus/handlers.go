// Package bonus — handlers.go обрабатывает команду /bonos:
// бонусы регистраторов и прогресс к следующей вехе.
package bonus

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/common"
)

// Handler обрабатывает команды бонусов.
type Handler struct {
	service *Service         // Сервис бонусов
	bot     *tgbotapi.BotAPI // API Telegram для отправки ответов
}

// NewHandler создаёт новый обработчик команды /bonos.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service: service,
		bot:     bot,
	}
}

// HandleBonuses обрабатывает команду /bonos — отчёт по регистраторам.
func (h *Handler) HandleBonuses(ctx context.Context, chatID int64, session *common.Session) {
	reports, err := h.service.Reports(ctx, session)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	if len(reports) == 0 {
		h.sendMessage(chatID, "📭 Sin pedidos registrados todavía")
		return
	}

	var b strings.Builder
	b.WriteString("🎯 Bonos por registrador:\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "\n%s — %d pedidos, %s monedas\n",
			r.Stat.RegisteredBy, r.Stat.OrderCount, common.FormatCoins(r.Stat.TotalCoins))
		fmt.Fprintf(&b, "   Metas: %d | Bono: %s | Progreso: %s (%d%%)",
			r.Milestones, common.FormatUSD(r.BonusUSD),
			common.FormatCoins(r.ProgressCoins), r.ProgressPct)
	}
	h.sendMessage(chatID, b.String())
}

// replyError отвечает пользователю текстом известной ошибки.
func (h *Handler) replyError(chatID int64, err error) {
	if common.KindOf(err) != common.KindUnknown {
		h.sendMessage(chatID, "❌ "+err.Error())
		return
	}
	log.WithError(err).Error("Error en comando de bonos")
	h.sendMessage(chatID, "❌ Error interno, intenta de nuevo")
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Error enviando mensaje")
	}
}
