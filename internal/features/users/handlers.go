// Package users — handlers.go обрабатывает команды сессий:
// /login (вход), /salir (выход).
package users

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/common"
)

// Handler обрабатывает команды аутентификации.
type Handler struct {
	service *Service         // Сервис пользователей и сессий
	bot     *tgbotapi.BotAPI // API Telegram для отправки ответов
}

// NewHandler создаёт новый обработчик команд сессий.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service: service,
		bot:     bot,
	}
}

// HandleLogin обрабатывает команду /login usuario contraseña.
// Привязывает чат к учётной записи на время сессии.
//
// Пароль остаётся в истории чата Telegram — поэтому после входа
// просим пользователя удалить своё сообщение.
func (h *Handler) HandleLogin(ctx context.Context, chatID int64, messageID int, args []string) {
	if len(args) < 2 {
		h.sendMessage(chatID, "❌ Formato: /login usuario contraseña")
		return
	}

	session, err := h.service.Login(ctx, chatID, args[0], args[1])
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	// Пытаемся удалить сообщение с паролем; если нет прав — не страшно.
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		log.WithError(err).Debug("No se pudo borrar el mensaje de login")
	}

	text := fmt.Sprintf("✅ Sesión iniciada como %s (%s)", session.Username, roleLabel(session.Role))
	if session.SellerName != "" {
		text += fmt.Sprintf("\nColector: %s", session.SellerName)
	}
	text += "\n\n⚠️ Borra tu mensaje con la contraseña si sigue visible."
	h.sendMessage(chatID, text)
}

// HandleLogout обрабатывает команду /salir — закрывает сессию чата.
func (h *Handler) HandleLogout(chatID int64) {
	h.service.Logout(chatID)
	h.sendMessage(chatID, "👋 Sesión cerrada.")
}

// roleLabel переводит внутреннюю роль в подпись для пользователя.
func roleLabel(role string) string {
	switch role {
	case common.RoleSuperAdmin:
		return "super admin"
	case common.RoleAdmin:
		return "admin"
	case common.RoleSeller:
		return "colector"
	default:
		return role
	}
}

// replyError отвечает пользователю текстом известной ошибки.
// Неклассифицированные ошибки логируются и маскируются общим сообщением.
func (h *Handler) replyError(chatID int64, err error) {
	if common.KindOf(err) != common.KindUnknown {
		h.sendMessage(chatID, "❌ "+err.Error())
		return
	}
	log.WithError(err).Error("Error en comando de sesión")
	h.sendMessage(chatID, "❌ Error interno, intenta de nuevo")
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Error enviando mensaje")
	}
}
