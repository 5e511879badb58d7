// Package payments — handlers.go обрабатывает команды платежей:
// /pago (декларация), /pagos (список), /confirmar и /rechazarpago (ревью).
package payments

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/common"
	"orospv.com/orocoins-bot/internal/notify"
)

// Handler обрабатывает команды платежей колекторов.
type Handler struct {
	service    *Service           // Сервис платежей
	dispatcher *notify.Dispatcher // Рассылка уведомлений после записи
	bot        *tgbotapi.BotAPI   // API Telegram для отправки ответов
	timezone   string             // Часовой пояс для отображения дат
}

// NewHandler создаёт новый обработчик команд платежей.
func NewHandler(service *Service, dispatcher *notify.Dispatcher, bot *tgbotapi.BotAPI, timezone string) *Handler {
	return &Handler{
		service:    service,
		dispatcher: dispatcher,
		bot:        bot,
		timezone:   timezone,
	}
}

// HandleReport обрабатывает команду /pago <montoUSD> <referencia> [notas].
// Колектор декларирует платёж в счёт долга; референция Binance обязательна.
func (h *Handler) HandleReport(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if len(args) < 2 {
		h.sendMessage(chatID, "❌ Formato: /pago <montoUSD> <referencia> [notas]")
		return
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		h.sendMessage(chatID, "❌ El monto debe ser un número")
		return
	}
	notes := ""
	if len(args) > 2 {
		notes = strings.Join(args[2:], " ")
	}

	payment, events, err := h.service.Report(ctx, session, amount, args[1], notes)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	h.dispatcher.Dispatch(ctx, events)

	text := fmt.Sprintf("✅ Pago #%d reportado: %s\nReferencia: %s\nQueda pendiente de revisión.",
		payment.ID, common.FormatUSD(payment.AmountUSD), payment.Reference)
	h.sendMessage(chatID, text)
}

// HandleList обрабатывает команду /pagos — список платежей.
// Супер-админ видит все, колектор — свои.
func (h *Handler) HandleList(ctx context.Context, chatID int64, session *common.Session) {
	list, err := h.service.List(ctx, session)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	if len(list) == 0 {
		h.sendMessage(chatID, "📭 No hay pagos registrados")
		return
	}

	var b strings.Builder
	b.WriteString("💳 Pagos:\n")
	for _, p := range list {
		fmt.Fprintf(&b, "\n#%d %s — %s | %s | %s | %s",
			p.ID, p.SellerName, common.FormatUSD(p.AmountUSD), p.Reference,
			paymentStatusLabel(p.Status), common.FormatDateTime(p.CreatedAt, h.timezone))
		if p.RejectReason != nil {
			fmt.Fprintf(&b, "\n   Razón: %s", *p.RejectReason)
		}
	}
	h.sendMessage(chatID, b.String())
}

// HandleConfirm обрабатывает команду /confirmar <id> — подтверждение платежа.
func (h *Handler) HandleConfirm(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if len(args) < 1 {
		h.sendMessage(chatID, "❌ Formato: /confirmar <id>")
		return
	}
	h.review(ctx, chatID, session, args[0], StatusConfirmed, "")
}

// HandleReject обрабатывает команду /rechazarpago <id> [razón].
func (h *Handler) HandleReject(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if len(args) < 1 {
		h.sendMessage(chatID, "❌ Formato: /rechazarpago <id> [razón]")
		return
	}
	reason := ""
	if len(args) > 1 {
		reason = strings.Join(args[1:], " ")
	}
	h.review(ctx, chatID, session, args[0], StatusRejected, reason)
}

// review — общий путь /confirmar и /rechazarpago.
func (h *Handler) review(ctx context.Context, chatID int64, session *common.Session, idArg, decision, reason string) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		h.sendMessage(chatID, "❌ El ID del pago debe ser un número")
		return
	}

	payment, events, err := h.service.Review(ctx, session, id, decision, reason)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	h.dispatcher.Dispatch(ctx, events)

	verb := "confirmado"
	if decision == StatusRejected {
		verb = "rechazado"
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ Pago #%d %s (%s de %s)",
		payment.ID, verb, common.FormatUSD(payment.AmountUSD), payment.SellerName))
}

func paymentStatusLabel(status string) string {
	switch status {
	case StatusPending:
		return "⏳ pendiente"
	case StatusConfirmed:
		return "✅ confirmado"
	case StatusRejected:
		return "❌ rechazado"
	default:
		return status
	}
}

// replyError отвечает пользователю текстом известной ошибки.
func (h *Handler) replyError(chatID int64, err error) {
	if common.KindOf(err) != common.KindUnknown {
		h.sendMessage(chatID, "❌ "+err.Error())
		return
	}
	log.WithError(err).Error("Error en comando de pagos")
	h.sendMessage(chatID, "❌ Error interno, intenta de nuevo")
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Error enviando mensaje")
	}
}
