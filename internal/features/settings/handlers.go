// Package settings — handlers.go обрабатывает команду /tasa:
// просмотр и установка ручного курса VES.
package settings

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/common"
)

// Handler обрабатывает команды настроек операции.
type Handler struct {
	service *Service         // Сервис настроек
	bot     *tgbotapi.BotAPI // API Telegram для отправки ответов
}

// NewHandler создаёт новый обработчик команды /tasa.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service: service,
		bot:     bot,
	}
}

// HandleRate обрабатывает команду /tasa [valor].
//
// Без аргумента — показывает текущий ручной курс VES (доступно всем
// авторизованным). С аргументом — устанавливает курс, только супер-админ.
func (h *Handler) HandleRate(ctx context.Context, chatID int64, session *common.Session, args []string) {
	if len(args) == 0 {
		rate, ok := h.service.VESRate(ctx)
		if !ok {
			h.sendMessage(chatID, "ℹ️ Tasa VES manual no configurada (se usa la tasa de mercado)")
			return
		}
		h.sendMessage(chatID, fmt.Sprintf("💱 Tasa VES manual: %s Bs. por USD", strconv.FormatFloat(rate, 'f', -1, 64)))
		return
	}

	rate, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		h.sendMessage(chatID, "❌ La tasa debe ser un número")
		return
	}
	if err := h.service.SetVESRate(ctx, session, rate); err != nil {
		h.replyError(chatID, err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ Tasa VES fijada en %s Bs. por USD", strconv.FormatFloat(rate, 'f', -1, 64)))
}

// replyError отвечает пользователю текстом известной ошибки.
func (h *Handler) replyError(chatID int64, err error) {
	if common.KindOf(err) != common.KindUnknown {
		h.sendMessage(chatID, "❌ "+err.Error())
		return
	}
	log.WithError(err).Error("Error en comando de tasa")
	h.sendMessage(chatID, "❌ Error interno, intenta de nuevo")
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Error enviando mensaje")
	}
}
