// Package orders — service.go содержит бизнес-логику заказов:
// валидация, разрешение пакета, генерация номера, права на переходы.
package orders

import (
	"context"
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/catalog"
	"orospv.com/orocoins-bot/internal/common"
	"orospv.com/orocoins-bot/internal/features/accounts"
	"orospv.com/orocoins-bot/internal/notify"
)

// Максимальная длина причины отмены (обрезается и проверяется).
const maxReasonLength = 300

// Допуск при сверке кастомных монет: |расчёт − заявлено| <= 1.
const customCoinsTolerance = 1

// Service управляет заказами.
type Service struct {
	repo         *Repository
	accountsRepo *accounts.Repository
}

// NewService создаёт сервис заказов.
func NewService(repo *Repository, accountsRepo *accounts.Repository) *Service {
	return &Service{repo: repo, accountsRepo: accountsRepo}
}

// Create регистрирует заказ и атомарно списывает монеты со счёта.
// Только персонал оформляет заказы (от имени колекторов).
// Страна выводится из привязки колектора, никогда не от клиента.
func (s *Service) Create(ctx context.Context, session *common.Session, in CreateInput) (*Order, []notify.Event, error) {
	if !session.IsStaff() {
		return nil, nil, common.ErrNotAuthorized
	}

	country := catalog.CountryForSeller(in.Seller)
	if country == nil {
		return nil, nil, common.ErrInvalidSeller
	}

	in.GameUsername = strings.TrimSpace(in.GameUsername)
	if in.GameUsername == "" {
		return nil, nil, common.ErrMissingReference
	}

	if !accounts.ValidAccount(in.CoinAccount) {
		return nil, nil, common.ErrInvalidAccount
	}

	pkg, isCustom, err := resolvePackage(country, in.PackageID, in.CustomPrice, in.CustomCoins)
	if err != nil {
		return nil, nil, err
	}

	order := &Order{
		OrderNumber:    NewOrderNumber(time.Now()),
		Country:        country.Name,
		CountrySlug:    country.Slug,
		GameUsername:   in.GameUsername,
		Seller:         in.Seller,
		PackageID:      pkg.ID,
		PackageCoins:   pkg.Coins,
		PackagePrice:   pkg.Price,
		CurrencyCode:   country.CurrencyCode,
		CurrencySymbol: country.CurrencySymbol,
		IsCustom:       isCustom,
		CoinAccount:    in.CoinAccount,
		RegisteredBy:   session.Username,
	}

	// Вставка заказа + условный дебет счёта — одна транзакция
	err = s.repo.Create(ctx, order, func(tx pgx.Tx) error {
		return s.accountsRepo.DebitTx(ctx, tx, in.CoinAccount, pkg.Coins, "orden:"+order.OrderNumber)
	})
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"order":   order.OrderNumber,
		"seller":  order.Seller,
		"coins":   order.PackageCoins,
		"account": order.CoinAccount,
		"by":      session.Username,
	}).Info("Заказ зарегистрирован")

	body := fmt.Sprintf("%s · %s 🪙 · %s\nRef: %s",
		order.Country,
		common.FormatCoins(order.PackageCoins),
		common.FormatPrice(order.PackagePrice, order.CurrencyCode),
		order.GameUsername,
	)
	events := []notify.Event{
		notify.ToSeller(order.Seller, "🛒 Nueva orden — "+order.OrderNumber, body),
		notify.ToStaffExcept(session.Username, "🛒 Nueva orden — "+order.OrderNumber, body),
	}
	return order, events, nil
}

// Transition переводит заказ в completed или cancelled.
// Персонал может обработать любой заказ; колектор — только свой.
// Направление уведомления зависит от роли инициатора.
//
// Монеты при отмене НЕ возвращаются на счёт: они считаются
// зарезервированными в момент регистрации, корректировка — вручную
// через установку баланса.
func (s *Service) Transition(ctx context.Context, session *common.Session, orderNumber, target, reason string) (*Order, []notify.Event, error) {
	if target != StatusCompleted && target != StatusCancelled {
		return nil, nil, common.ErrInvalidStatus
	}

	order, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, nil, err
	}

	if session.IsSeller() {
		if session.SellerName == "" {
			return nil, nil, common.ErrNoSellerBinding
		}
		if order.Seller != session.SellerName {
			return nil, nil, common.ErrNotYourOrder
		}
	} else if !session.IsStaff() {
		return nil, nil, common.ErrNotAuthorized
	}

	var cancelReason *string
	if target == StatusCancelled {
		reason = strings.TrimSpace(reason)
		if len([]rune(reason)) > maxReasonLength {
			return nil, nil, common.ErrReasonTooLong
		}
		if reason != "" {
			cancelReason = &reason
		}
	}

	if err := s.repo.Transition(ctx, orderNumber, target, session.Username, cancelReason); err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"order":  orderNumber,
		"status": target,
		"by":     session.Username,
	}).Info("Статус заказа изменён")

	var title, body string
	if target == StatusCompleted {
		title = "✅ Orden aprobada — " + orderNumber
		body = fmt.Sprintf("%s 🪙 · aprobada por %s", common.FormatCoins(order.PackageCoins), session.Username)
	} else {
		title = "❌ Orden cancelada — " + orderNumber
		if cancelReason != nil {
			body = "Razón: " + *cancelReason
		} else {
			body = "Cancelada por " + session.Username + "."
		}
	}

	// Персонал обработал — сообщаем колектору; колектор сам — сообщаем персоналу
	var events []notify.Event
	if session.IsSeller() {
		events = []notify.Event{notify.ToStaff(title, body)}
	} else {
		events = []notify.Event{notify.ToSeller(order.Seller, title, body)}
	}

	updated, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		// Переход уже зафиксирован; отдаём старую копию с новым статусом
		order.Status = target
		return order, events, nil
	}
	return updated, events, nil
}

// GetByNumber возвращает заказ. Колектор видит только свои заказы.
func (s *Service) GetByNumber(ctx context.Context, session *common.Session, orderNumber string) (*Order, error) {
	order, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if session.IsSeller() && order.Seller != session.SellerName {
		return nil, common.ErrNotYourOrder
	}
	return order, nil
}

// List возвращает последние заказы: персоналу — все, колектору — свои.
func (s *Service) List(ctx context.Context, session *common.Session, limit int) ([]*Order, error) {
	if session.IsStaff() {
		return s.repo.Recent(ctx, limit)
	}
	if session.SellerName == "" {
		return nil, common.ErrNoSellerBinding
	}
	return s.repo.BySeller(ctx, session.SellerName, limit)
}

// CountPending возвращает число заказов в ожидании (для фоновой задачи).
func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountPending(ctx)
}

// resolvePackage возвращает пакет по ID из каталога либо собирает
// кастомный, сверяя заявленные монеты с расчётом по курсу страны:
// ожидание = RoundTo500(цена × курс), допуск ±1.
func resolvePackage(country *catalog.Country, packageID string, customPrice float64, customCoins int64) (*catalog.Package, bool, error) {
	if packageID != "" {
		pkg := country.FindPackage(packageID)
		if pkg == nil {
			return nil, false, common.ErrInvalidPackage
		}
		return pkg, false, nil
	}

	// Кастомный заказ: нужны и цена, и монеты
	if customPrice <= 0 || customCoins <= 0 {
		return nil, false, common.ErrInvalidPackage
	}

	expected := catalog.RoundTo500(customPrice * country.CoinRate())
	diff := expected - customCoins
	if diff < 0 {
		diff = -diff
	}
	if diff > customCoinsTolerance {
		return nil, false, common.ErrInvalidCustomCoins
	}

	return &catalog.Package{
		ID:    country.Slug + "-custom",
		Price: customPrice,
		Coins: customCoins,
	}, true, nil
}

// NewOrderNumber генерирует номер заказа: OC-<timestamp base36>-<4 символа>.
// Временная часть монотонна, случайный суффикс защищает от совпадения
// в одну миллисекунду. Коллизии не дедуплицируются — вероятность ничтожна.
func NewOrderNumber(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return "OC-" + ts + "-" + randomSuffix(4)
}

const suffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomSuffix(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand практически не падает; запасной вариант — наносекунды
		return strings.ToUpper(strconv.FormatInt(time.Now().UnixNano()%1679616, 36))
	}
	for i := range b {
		b[i] = suffixAlphabet[int(b[i])%len(suffixAlphabet)]
	}
	return string(b)
}
