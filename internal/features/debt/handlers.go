// Package debt — handlers.go обрабатывает команду /deuda:
// отчёт по долгу одного колектора или всей операции.
package debt

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/common"
)

// Handler обрабатывает команды отчётов по долгу.
type Handler struct {
	service *Service         // Сервис расчёта долга
	bot     *tgbotapi.BotAPI // API Telegram для отправки ответов
}

// NewHandler создаёт новый обработчик команды /deuda.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service: service,
		bot:     bot,
	}
}

// HandleDebt обрабатывает команду /deuda [colector].
//
// Персонал без аргумента получает сводку по всем колекторам,
// с аргументом — отчёт по одному. Колектор всегда видит только себя.
func (h *Handler) HandleDebt(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if session.IsSeller() || len(args) > 0 {
		seller := session.SellerName
		if len(args) > 0 {
			seller = args[0]
		}
		report, err := h.service.ForSeller(ctx, session, seller)
		if err != nil {
			h.replyError(chatID, err)
			return
		}
		if report == nil {
			h.sendMessage(chatID, "📭 Sin pedidos registrados para "+seller)
			return
		}
		h.sendMessage(chatID, renderReport(report))
		return
	}

	reports, err := h.service.ForAll(ctx, session)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	if len(reports) == 0 {
		h.sendMessage(chatID, "📭 Sin pedidos registrados")
		return
	}

	var b strings.Builder
	b.WriteString("📊 Deuda por colector:\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "\n%s (%s): %s", r.Stat.Seller, r.Stat.Country, outstandingLabel(r))
	}
	h.sendMessage(chatID, b.String())
}

// renderReport собирает подробный отчёт одного колектора.
func renderReport(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Deuda de %s (%s)\n\n", r.Stat.Seller, r.Stat.Country)
	fmt.Fprintf(&b, "Pedidos: %d\n", r.Stat.OrderCount)
	fmt.Fprintf(&b, "Monedas vendidas: %s\n", common.FormatCoins(r.Stat.TotalCoins))
	fmt.Fprintf(&b, "Total vendido: %s\n", common.FormatPrice(r.Stat.TotalAmount, r.Stat.CurrencyCode))
	if r.Exempt {
		b.WriteString("Comisión: exento\n")
	} else {
		fmt.Fprintf(&b, "Comisión: %s\n", common.FormatPrice(r.Commission.InexactFloat64(), r.Stat.CurrencyCode))
	}
	fmt.Fprintf(&b, "Deuda local: %s\n", common.FormatPrice(r.DebtLocal.InexactFloat64(), r.Stat.CurrencyCode))
	if r.DebtUSD != nil {
		fmt.Fprintf(&b, "Deuda en USD: %s\n", common.FormatUSD(r.DebtUSD.InexactFloat64()))
	} else {
		b.WriteString("Deuda en USD: N/A (sin tasa de cambio)\n")
	}
	fmt.Fprintf(&b, "Pagos confirmados: %s\n", common.FormatUSD(r.ConfirmedUSD.InexactFloat64()))
	fmt.Fprintf(&b, "Pendiente: %s", outstandingLabel(r))
	return b.String()
}

// outstandingLabel — остаток долга одной строкой.
// Отрицательный остаток показываем как переплату, не обнуляя данные.
func outstandingLabel(r *Report) string {
	if r.OutstandingUSD == nil {
		return "N/A (sin tasa de cambio)"
	}
	v := r.OutstandingUSD.InexactFloat64()
	if v < 0 {
		return fmt.Sprintf("%s a favor", common.FormatUSD(-v))
	}
	return common.FormatUSD(v)
}

// replyError отвечает пользователю текстом известной ошибки.
func (h *Handler) replyError(chatID int64, err error) {
	if common.KindOf(err) != common.KindUnknown {
		h.sendMessage(chatID, "❌ "+err.Error())
		return
	}
	log.WithError(err).Error("Error en comando de deuda")
	h.sendMessage(chatID, "❌ Error interno, intenta de nuevo")
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Error enviando mensaje")
	}
}
