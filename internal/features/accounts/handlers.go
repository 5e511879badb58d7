// Package accounts — handlers.go обрабатывает команды инвентаря:
// /saldos (балансы и история), /recargar (пополнение), /fijar (установка).
package accounts

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

// Сколько записей истории показываем по умолчанию.
const defaultHistoryLimit = 10

// Handler обрабатывает команды инвентаря монет.
type Handler struct {
	service    *Service           // Сервис инвентаря
	dispatcher *notify.Dispatcher // Рассылка уведомлений персоналу
	bot        *tgbotapi.BotAPI   // API Telegram для отправки ответов
	timezone   string             // Часовой пояс для отображения дат
}

// NewHandler создаёт новый обработчик команд инвентаря.
func NewHandler(service *Service, dispatcher *notify.Dispatcher, bot *tgbotapi.BotAPI, timezone string) *Handler {
	return &Handler{
		service:    service,
		dispatcher: dispatcher,
		bot:        bot,
		timezone:   timezone,
	}
}

// HandleBalances обрабатывает команду /saldos.
//
// Без аргументов — балансы всех счетов.
// С именем счёта — последние записи журнала: /saldos OrosPV1 [n].
func (h *Handler) HandleBalances(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if len(args) > 0 {
		h.history(ctx, chatID, session, args)
		return
	}

	list, err := h.service.List(ctx, session)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	var b strings.Builder
	b.WriteString("💰 Saldos de cuentas:\n")
	for _, a := range list {
		fmt.Fprintf(&b, "\n%s: %s monedas", a.Name, common.FormatCoins(a.CurrentBalance))
	}
	h.sendMessage(chatID, b.String())
}

// history показывает журнал изменений одного счёта.
func (h *Handler) history(ctx context.Context, chatID int64, session *common.Session, args []string) {
	limit := defaultHistoryLimit
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	entries, err := h.service.History(ctx, session, args[0], limit)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	if len(entries) == 0 {
		h.sendMessage(chatID, "📭 Sin movimientos en esta cuenta")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📜 Movimientos de %s:\n", args[0])
	for _, e := range entries {
		delta := e.NewBalance - e.PrevBalance
		sign := "+"
		if delta < 0 {
			sign = "−"
			delta = -delta
		}
		fmt.Fprintf(&b, "\n%s%s → %s | %s | %s",
			sign, common.FormatCoins(delta), common.FormatCoins(e.NewBalance),
			e.ChangedBy, common.FormatDateTime(e.ChangedAt, h.timezone))
	}
	h.sendMessage(chatID, b.String())
}

// HandleAdd обрабатывает команду /recargar <cuenta> <monedas> —
// пополнение счёта на дельту.
func (h *Handler) HandleAdd(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if len(args) < 2 {
		h.sendMessage(chatID, "❌ Formato: /recargar <cuenta> <monedas>")
		return
	}
	delta, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		h.sendMessage(chatID, "❌ Las monedas deben ser un número entero")
		return
	}

	events, err := h.service.CreditAdd(ctx, session, args[0], delta)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	h.dispatcher.Dispatch(ctx, events)
	h.sendMessage(chatID, fmt.Sprintf("✅ Recargadas %s monedas en %s", common.FormatCoins(delta), args[0]))
}

// HandleSet обрабатывает команду /fijar <cuenta> <saldo> —
// абсолютная установка баланса. Только супер-админ.
func (h *Handler) HandleSet(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if len(args) < 2 {
		h.sendMessage(chatID, "❌ Formato: /fijar <cuenta> <saldo>")
		return
	}
	balance, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		h.sendMessage(chatID, "❌ El saldo debe ser un número entero")
		return
	}

	events, err := h.service.CreditSet(ctx, session, args[0], balance)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	h.dispatcher.Dispatch(ctx, events)
	h.sendMessage(chatID, fmt.Sprintf("✅ Saldo de %s fijado en %s monedas", args[0], common.FormatCoins(balance)))
}

// replyError отвечает пользователю текстом известной ошибки.
func (h *Handler) replyError(chatID int64, err error) {
	if common.KindOf(err) != common.KindUnknown {
		h.sendMessage(chatID, "❌ "+err.Error())
		return
	}
	log.WithError(err).Error("Error en comando de inventario")
	h.sendMessage(chatID, "❌ Error interno, intenta de nuevo")
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Error enviando mensaje")
	}
}
