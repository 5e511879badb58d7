// Package payments — service.go содержит бизнес-логику платежей:
// декларация колектором и единственное ревью супер-админа.
package payments

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/common"
	"orospv.com/orocoins-bot/internal/notify"
)

// Максимальная длина причины отказа.
const maxReasonLength = 300

// Service управляет платежами колекторов.
type Service struct {
	repo *Repository
}

// NewService создаёт сервис платежей.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Report регистрирует заявленный платёж. Только роль seller:
// платит колектор, персоналу декларировать нечего.
func (s *Service) Report(ctx context.Context, session *common.Session, amountUSD float64, reference, notes string) (*Payment, []notify.Event, error) {
	if !session.IsSeller() {
		return nil, nil, common.ErrNotAuthorized
	}
	if session.SellerName == "" {
		return nil, nil, common.ErrNoSellerBinding
	}
	if amountUSD <= 0 {
		return nil, nil, common.ErrInvalidAmount
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil, common.ErrMissingReference
	}

	var notesPtr *string
	if n := strings.TrimSpace(notes); n != "" {
		notesPtr = &n
	}

	payment := &Payment{
		SellerName:  session.SellerName,
		AmountUSD:   amountUSD,
		Reference:   reference,
		Notes:       notesPtr,
		SubmittedBy: session.Username,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"payment_id": payment.ID,
		"seller":     payment.SellerName,
		"amount_usd": payment.AmountUSD,
	}).Info("Платёж задекларирован")

	events := []notify.Event{
		notify.ToStaff(
			fmt.Sprintf("💳 Pago reportado — %s", payment.SellerName),
			fmt.Sprintf("%s · Ref: %s · #%d", common.FormatUSD(payment.AmountUSD), payment.Reference, payment.ID),
		),
	}
	return payment, events, nil
}

// Review подтверждает или отклоняет платёж. Только супер-админ,
// ровно один раз: повторное ревью — конфликт, не тихий no-op.
func (s *Service) Review(ctx context.Context, session *common.Session, paymentID int64, decision, reason string) (*Payment, []notify.Event, error) {
	if !session.IsSuperAdmin() {
		return nil, nil, common.ErrNotAuthorized
	}
	if decision != StatusConfirmed && decision != StatusRejected {
		return nil, nil, common.ErrInvalidStatus
	}

	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) > maxReasonLength {
		return nil, nil, common.ErrReasonTooLong
	}

	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	if payment.Status != StatusPending {
		return nil, nil, common.ErrPaymentAlreadyReviewed
	}

	var reasonPtr *string
	if decision == StatusRejected && reason != "" {
		reasonPtr = &reason
	}

	if err := s.repo.Review(ctx, paymentID, decision, session.Username, reasonPtr); err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"payment_id": paymentID,
		"decision":   decision,
		"by":         session.Username,
	}).Info("Платёж проверен")

	var events []notify.Event
	if decision == StatusConfirmed {
		events = []notify.Event{notify.ToSeller(payment.SellerName,
			fmt.Sprintf("✅ Pago confirmado — %s", common.FormatUSD(payment.AmountUSD)),
			fmt.Sprintf("Tu pago fue confirmado por %s.", session.Username),
		)}
	} else {
		body := fmt.Sprintf("Tu pago de %s fue rechazado. Contacta al admin.", common.FormatUSD(payment.AmountUSD))
		if reasonPtr != nil {
			body = "Razón: " + *reasonPtr
		}
		events = []notify.Event{notify.ToSeller(payment.SellerName, "❌ Pago rechazado", body)}
	}

	payment.Status = decision
	payment.RejectReason = reasonPtr
	return payment, events, nil
}

// List возвращает платежи: супер-админу — все, колектору — свои.
// Обычный админ платежи не видит (ревью — не его зона).
func (s *Service) List(ctx context.Context, session *common.Session) ([]*Payment, error) {
	switch {
	case session.IsSuperAdmin():
		return s.repo.All(ctx, 100)
	case session.IsSeller():
		if session.SellerName == "" {
			return nil, common.ErrNoSellerBinding
		}
		return s.repo.BySeller(ctx, session.SellerName)
	}
	return nil, common.ErrNotAuthorized
}

// ConfirmedTotalUSD — сумма подтверждённых платежей колектора.
func (s *Service) ConfirmedTotalUSD(ctx context.Context, sellerName string) (float64, error) {
	return s.repo.ConfirmedTotalUSD(ctx, sellerName)
}
