// Package notify — dispatcher.go доставляет события в Telegram.
package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// ChatResolver переводит адресата события в список Telegram-чатов.
// Реализуется сервисом users: чаты известны только для залогиненных.
type ChatResolver interface {
	SellerChats(ctx context.Context, sellerName string) []int64
	StaffChats(ctx context.Context, exceptUsername string) []int64
}

// Dispatcher отправляет события через Bot API.
type Dispatcher struct {
	api      *tgbotapi.BotAPI
	resolver ChatResolver
}

// NewDispatcher создаёт диспетчер уведомлений.
func NewDispatcher(api *tgbotapi.BotAPI, resolver ChatResolver) *Dispatcher {
	return &Dispatcher{api: api, resolver: resolver}
}

// Dispatch доставляет все события. Fire-and-forget: любая ошибка
// логируется и глотается, вызывающему ничего не возвращается.
func (d *Dispatcher) Dispatch(ctx context.Context, events []Event) {
	for _, ev := range events {
		var chats []int64
		switch ev.Target {
		case TargetSeller:
			chats = d.resolver.SellerChats(ctx, ev.SellerName)
		case TargetStaff:
			chats = d.resolver.StaffChats(ctx, "")
		case TargetStaffExcept:
			chats = d.resolver.StaffChats(ctx, ev.ExceptUser)
		}

		if len(chats) == 0 {
			log.WithFields(log.Fields{
				"target": ev.Target,
				"seller": ev.SellerName,
				"title":  ev.Title,
			}).Debug("Нет активных чатов для уведомления")
			continue
		}

		text := ev.Title + "\n" + ev.Body
		for _, chatID := range chats {
			msg := tgbotapi.NewMessage(chatID, text)
			if _, err := d.api.Send(msg); err != nil {
				log.WithError(err).WithField("chat_id", chatID).Debug("Не удалось отправить уведомление")
			}
		}
	}
}
