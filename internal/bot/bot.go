// Package bot содержит главный модуль бота — запуск polling, разбор
// команд и маршрутизацию к обработчикам фич.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/bot/middleware"
	"orospv.com/orocoins-bot/internal/config"
	"orospv.com/orocoins-bot/internal/features/accounts"
	"orospv.com/orocoins-bot/internal/features/bonus"
	"orospv.com/orocoins-bot/internal/features/debt"
	"orospv.com/orocoins-bot/internal/features/orders"
	"orospv.com/orocoins-bot/internal/features/payments"
	"orospv.com/orocoins-bot/internal/features/settings"
	"orospv.com/orocoins-bot/internal/features/users"
)

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	rateLimiter *middleware.RateLimiter

	usersService *users.Service

	usersHandler    *users.Handler
	ordersHandler   *orders.Handler
	accountsHandler *accounts.Handler
	paymentsHandler *payments.Handler
	debtHandler     *debt.Handler
	bonusHandler    *bonus.Handler
	settingsHandler *settings.Handler

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	usersService *users.Service,
	usersHandler *users.Handler,
	ordersHandler *orders.Handler,
	accountsHandler *accounts.Handler,
	paymentsHandler *payments.Handler,
	debtHandler *debt.Handler,
	bonusHandler *bonus.Handler,
	settingsHandler *settings.Handler,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:             api,
		cfg:             cfg,
		rateLimiter:     middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		usersService:    usersService,
		usersHandler:    usersHandler,
		ordersHandler:   ordersHandler,
		accountsHandler: accountsHandler,
		paymentsHandler: paymentsHandler,
		debtHandler:     debtHandler,
		bonusHandler:    bonusHandler,
		settingsHandler: settingsHandler,
		parser:          NewCommandParser(),
		inflight:        make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				b.rateLimiter.Close()
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	if update.Message == nil || update.Message.Text == "" {
		return
	}
	message := update.Message

	// Логируем входящее (текст /login маскируется)
	middleware.LogMessage(message)

	// Рабочий инструмент операции: только личные чаты.
	// Учётные данные и отчёты по долгу в группах не светим.
	if message.Chat == nil || !message.Chat.IsPrivate() {
		return
	}

	// Rate limiting
	if message.From != nil && !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if !isCommand {
		return
	}

	b.routeCommand(ctx, message.Chat.ID, message.MessageID, cmd, args)
}

// routeCommand маршрутизирует команду к нужному обработчику.
// Все команды, кроме /start, /help и /login, требуют активной сессии.
func (b *Bot) routeCommand(ctx context.Context, chatID int64, messageID int, cmd string, args []string) {
	log.WithFields(log.Fields{
		"cmd":     cmd,
		"chat_id": chatID,
	}).Debug("routing command")

	switch cmd {
	case "start", "help", "ayuda":
		b.sendMessage(chatID, helpText)
		return

	case "login":
		b.usersHandler.HandleLogin(ctx, chatID, messageID, args)
		return
	}

	session := b.usersService.SessionFor(chatID)
	if session == nil {
		b.sendMessage(chatID, "🔒 Inicia sesión primero: /login usuario contraseña")
		return
	}

	switch cmd {
	case "salir":
		b.usersHandler.HandleLogout(chatID)

	case "pedido":
		b.ordersHandler.HandleCreate(ctx, chatID, session, args)

	case "ordenes":
		b.ordersHandler.HandleList(ctx, chatID, session, args)

	case "orden":
		b.ordersHandler.HandleGet(ctx, chatID, session, args)

	case "aprobar":
		b.ordersHandler.HandleApprove(ctx, chatID, session, args)

	case "rechazar":
		b.ordersHandler.HandleReject(ctx, chatID, session, args)

	case "saldos":
		b.accountsHandler.HandleBalances(ctx, chatID, session, args)

	case "recargar":
		b.accountsHandler.HandleAdd(ctx, chatID, session, args)

	case "fijar":
		b.accountsHandler.HandleSet(ctx, chatID, session, args)

	case "deuda":
		b.debtHandler.HandleDebt(ctx, chatID, session, args)

	case "bonos":
		b.bonusHandler.HandleBonuses(ctx, chatID, session)

	case "pago":
		b.paymentsHandler.HandleReport(ctx, chatID, session, args)

	case "pagos":
		b.paymentsHandler.HandleList(ctx, chatID, session)

	case "confirmar":
		b.paymentsHandler.HandleConfirm(ctx, chatID, session, args)

	case "rechazarpago":
		b.paymentsHandler.HandleReject(ctx, chatID, session, args)

	case "tasa":
		b.settingsHandler.HandleRate(ctx, chatID, session, args)

	default:
		b.sendMessage(chatID, "❓ Comando desconocido. Usa /help para ver la lista.")
	}
}

const helpText = `🪙 Bot de OroCoins

Sesión:
/login usuario contraseña — iniciar sesión
/salir — cerrar sesión

Pedidos:
/pedido <colector> <paquete> <referencia> <cuenta>
/pedido <colector> custom <precio> <monedas> <referencia> <cuenta>
/ordenes [n] — últimos pedidos
/orden <numero> — detalle
/aprobar <numero> | /rechazar <numero> <razón>

Inventario:
/saldos [cuenta] — saldos o movimientos
/recargar <cuenta> <monedas> | /fijar <cuenta> <saldo>

Finanzas:
/deuda [colector] — deuda
/pago <montoUSD> <referencia> [notas] — reportar pago
/pagos — lista | /confirmar <id> | /rechazarpago <id> [razón]
/bonos — bonos de registradores
/tasa [valor] — tasa VES manual`

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// CommandParser парсит команды с префиксами /, ! и .
type CommandParser struct {
	validPrefixes []string
}

// NewCommandParser создаёт парсер команд.
func NewCommandParser() *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"!", ".", "/"},
	}
}

// ParseCommand разбирает текст на команду и аргументы.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}

	if !hasPrefix {
		return "", nil, false
	}

	text = strings.TrimSpace(text)
	parts := strings.Fields(text)

	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	// Telegram добавляет @botname к командам в некоторых клиентах
	if i := strings.IndexByte(command, '@'); i > 0 {
		command = command[:i]
	}
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	return command, args, true
}
