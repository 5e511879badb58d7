// Package orders — handlers.go обрабатывает команды заказов:
// /pedido (создание), /ordenes (список), /orden (карточка),
// /aprobar и /rechazar (переходы статуса).
package orders

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

// Сколько заказов показывает /ordenes без аргумента.
const defaultListLimit = 10

// Handler обрабатывает команды заказов.
type Handler struct {
	service    *Service           // Сервис заказов
	dispatcher *notify.Dispatcher // Рассылка уведомлений после коммита
	bot        *tgbotapi.BotAPI   // API Telegram для отправки ответов
	timezone   string             // Часовой пояс для отображения дат
}

// NewHandler создаёт новый обработчик команд заказов.
func NewHandler(service *Service, dispatcher *notify.Dispatcher, bot *tgbotapi.BotAPI, timezone string) *Handler {
	return &Handler{
		service:    service,
		dispatcher: dispatcher,
		bot:        bot,
		timezone:   timezone,
	}
}

// HandleCreate обрабатывает команду /pedido — регистрация заказа.
//
// Форматы:
//
//	/pedido <colector> <paquete> <referencia> <cuenta>
//	/pedido <colector> custom <precio> <monedas> <referencia> <cuenta>
//
// Страна выводится из привязки колектора, монеты списываются со счёта
// в той же транзакции, что и вставка заказа.
func (h *Handler) HandleCreate(ctx context.Context, chatID int64, session *common.Session, args []string) {
	in, err := parseCreateArgs(args)
	if err != nil {
		h.sendMessage(chatID, err.Error())
		return
	}

	order, events, err := h.service.Create(ctx, session, in)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	h.dispatcher.Dispatch(ctx, events)

	text := "✅ Pedido registrado\n\n" + h.renderOrder(order)
	h.sendMessage(chatID, text)
}

// parseCreateArgs разбирает аргументы /pedido в CreateInput.
// Возвращаемая ошибка уже сформулирована для пользователя.
func parseCreateArgs(args []string) (CreateInput, error) {
	usage := "❌ Formato: /pedido <colector> <paquete> <referencia> <cuenta>\n" +
		"o: /pedido <colector> custom <precio> <monedas> <referencia> <cuenta>"
	if len(args) < 4 {
		return CreateInput{}, fmt.Errorf("%s", usage)
	}

	in := CreateInput{Seller: args[0]}

	if strings.EqualFold(args[1], "custom") {
		if len(args) < 6 {
			return CreateInput{}, fmt.Errorf("%s", usage)
		}
		price, err := strconv.ParseFloat(args[2], 64)
		if err != nil || price <= 0 {
			return CreateInput{}, fmt.Errorf("❌ El precio debe ser un número positivo")
		}
		coins, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil || coins <= 0 {
			return CreateInput{}, fmt.Errorf("❌ Las monedas deben ser un número positivo")
		}
		in.CustomPrice = price
		in.CustomCoins = coins
		in.GameUsername = args[4]
		in.CoinAccount = args[5]
		return in, nil
	}

	in.PackageID = args[1]
	in.GameUsername = args[2]
	in.CoinAccount = args[3]
	return in, nil
}

// HandleList обрабатывает команду /ordenes [n] — последние заказы.
// Персонал видит все, колектор — только свои.
func (h *Handler) HandleList(ctx context.Context, chatID int64, session *common.Session, args []string) {
	limit := defaultListLimit
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	list, err := h.service.List(ctx, session, limit)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	if len(list) == 0 {
		h.sendMessage(chatID, "📭 No hay pedidos registrados")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Últimos %d pedidos:\n", len(list))
	for _, o := range list {
		fmt.Fprintf(&b, "\n%s %s — %s, %s monedas, %s (%s)",
			statusEmoji(o.Status), o.OrderNumber, o.Seller,
			common.FormatCoins(o.PackageCoins),
			common.FormatPrice(o.PackagePrice, o.CurrencyCode),
			statusLabel(o.Status))
	}
	h.sendMessage(chatID, b.String())
}

// HandleGet обрабатывает команду /orden <numero> — карточка заказа.
func (h *Handler) HandleGet(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if len(args) < 1 {
		h.sendMessage(chatID, "❌ Formato: /orden <numero>")
		return
	}

	order, err := h.service.GetByNumber(ctx, session, strings.ToUpper(args[0]))
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	h.sendMessage(chatID, h.renderOrder(order))
}

// HandleApprove обрабатывает команду /aprobar <numero>.
func (h *Handler) HandleApprove(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if len(args) < 1 {
		h.sendMessage(chatID, "❌ Formato: /aprobar <numero>")
		return
	}
	h.transition(ctx, chatID, session, strings.ToUpper(args[0]), StatusCompleted, "")
}

// HandleReject обрабатывает команду /rechazar <numero> <razón>.
// Причина обязательна и ограничена по длине.
func (h *Handler) HandleReject(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if len(args) < 2 {
		h.sendMessage(chatID, "❌ Formato: /rechazar <numero> <razón>")
		return
	}
	reason := strings.Join(args[1:], " ")
	h.transition(ctx, chatID, session, strings.ToUpper(args[0]), StatusCancelled, reason)
}

// transition — общий путь /aprobar и /rechazar.
func (h *Handler) transition(ctx context.Context, chatID int64, session *common.Session, orderNumber, target, reason string) {
	order, events, err := h.service.Transition(ctx, session, orderNumber, target, reason)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	h.dispatcher.Dispatch(ctx, events)

	verb := "aprobado"
	if target == StatusCancelled {
		verb = "rechazado"
	}
	text := fmt.Sprintf("✅ Pedido %s %s\n\n%s", order.OrderNumber, verb, h.renderOrder(order))
	h.sendMessage(chatID, text)
}

// renderOrder собирает карточку заказа.
func (h *Handler) renderOrder(o *Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 Pedido %s\n", o.OrderNumber)
	fmt.Fprintf(&b, "País: %s\n", o.Country)
	fmt.Fprintf(&b, "Colector: %s\n", o.Seller)
	fmt.Fprintf(&b, "Referencia: %s\n", o.GameUsername)
	if o.IsCustom {
		fmt.Fprintf(&b, "Paquete: personalizado\n")
	} else {
		fmt.Fprintf(&b, "Paquete: %s\n", o.PackageID)
	}
	fmt.Fprintf(&b, "Monedas: %s\n", common.FormatCoins(o.PackageCoins))
	fmt.Fprintf(&b, "Precio: %s\n", common.FormatPrice(o.PackagePrice, o.CurrencyCode))
	fmt.Fprintf(&b, "Cuenta: %s\n", o.CoinAccount)
	fmt.Fprintf(&b, "Registrado por: %s\n", o.RegisteredBy)
	fmt.Fprintf(&b, "Estado: %s %s\n", statusEmoji(o.Status), statusLabel(o.Status))
	if o.ApprovedBy != nil && o.ApprovedAt != nil {
		fmt.Fprintf(&b, "Revisado por: %s (%s)\n", *o.ApprovedBy, common.FormatDateTime(*o.ApprovedAt, h.timezone))
	}
	if o.CancelReason != nil {
		fmt.Fprintf(&b, "Razón: %s\n", *o.CancelReason)
	}
	fmt.Fprintf(&b, "Creado: %s", common.FormatDateTime(o.CreatedAt, h.timezone))
	return b.String()
}

func statusLabel(status string) string {
	switch status {
	case StatusPending:
		return "pendiente"
	case StatusCompleted:
		return "completado"
	case StatusCancelled:
		return "cancelado"
	default:
		return status
	}
}

func statusEmoji(status string) string {
	switch status {
	case StatusPending:
		return "⏳"
	case StatusCompleted:
		return "✅"
	case StatusCancelled:
		return "❌"
	default:
		return "❓"
	}
}

// replyError отвечает пользователю текстом известной ошибки.
func (h *Handler) replyError(chatID int64, err error) {
	if common.KindOf(err) != common.KindUnknown {
		h.sendMessage(chatID, "❌ "+err.Error())
		return
	}
	log.WithError(err).Error("Error en comando de pedidos")
	h.sendMessage(chatID, "❌ Error interno, intenta de nuevo")
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Error enviando mensaje")
	}
}
