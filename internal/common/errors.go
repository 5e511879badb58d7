// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Каждая ошибка принадлежит одной из четырёх категорий (см. Kind),
// чтобы обработчики могли отличать «поправь ввод» от «обнови состояние».
package common

import "errors"

// Kind — категория ошибки ядра. Любая операция возвращает либо результат,
// либо ошибку ровно одной из этих категорий.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation — некорректный ввод, можно исправить и повторить
	KindValidation
	// KindConflict — состояние изменилось (дубликат, уже обработано, нет монет);
	// повтор с тем же вводом бессмысленен
	KindConflict
	// KindAuthorization — не та роль или не тот колектор; терминально для вызывающего
	KindAuthorization
	// KindNotFound — сущность не найдена
	KindNotFound
)

// Ошибки заказов
var (
	// ErrInvalidPackage — пакет не существует в каталоге страны
	ErrInvalidPackage = errors.New("paquete no válido")
	// ErrInvalidCustomCoins — кастомное количество монет не сходится с расчётом
	ErrInvalidCustomCoins = errors.New("cálculo de monedas inválido")
	// ErrDuplicateReference — компробанте уже зарегистрирован этим колектором
	ErrDuplicateReference = errors.New("comprobante duplicado para este colector")
	// ErrOrderNotFound — заказ не найден
	ErrOrderNotFound = errors.New("orden no encontrada")
	// ErrOrderAlreadyProcessed — заказ уже одобрен или отменён
	ErrOrderAlreadyProcessed = errors.New("esta orden ya fue procesada")
	// ErrInvalidStatus — целевой статус не completed/cancelled
	ErrInvalidStatus = errors.New("estado inválido")
)

// Ошибки инвентаря
var (
	// ErrInvalidAccount — счёт не из фиксированного списка
	ErrInvalidAccount = errors.New("cuenta de monedas inválida")
	// ErrInsufficientCoins — на счёте не хватает монет для дебета
	ErrInsufficientCoins = errors.New("saldo insuficiente en la cuenta de monedas")
	// ErrInvalidAmount — некорректная сумма (ноль, отрицательная или за пределами лимитов)
	ErrInvalidAmount = errors.New("monto inválido")
)

// Ошибки платежей колекторов
var (
	// ErrPaymentNotFound — платёж не найден
	ErrPaymentNotFound = errors.New("pago no encontrado")
	// ErrPaymentAlreadyReviewed — платёж уже подтверждён или отклонён
	ErrPaymentAlreadyReviewed = errors.New("este pago ya fue revisado")
	// ErrMissingReference — не указана референция Binance
	ErrMissingReference = errors.New("la referencia de Binance es requerida")
	// ErrReasonTooLong — причина длиннее 300 символов
	ErrReasonTooLong = errors.New("la razón no puede superar 300 caracteres")
)

// Ошибки авторизации
var (
	// ErrNotAuthorized — нет активной сессии или не та роль
	ErrNotAuthorized = errors.New("no autorizado")
	// ErrNotYourOrder — колектор пытается трогать чужой заказ
	ErrNotYourOrder = errors.New("esta orden no pertenece a tu país")
	// ErrWrongPassword — неверный логин или пароль
	ErrWrongPassword = errors.New("usuario o contraseña incorrectos")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("demasiados intentos, espera una hora")
	// ErrNoSellerBinding — у пользователя роль seller, но seller_name не назначен
	ErrNoSellerBinding = errors.New("colector sin nombre asignado")
)

// Прочие
var (
	// ErrUserNotFound — пользователь не найден в admin_users
	ErrUserNotFound = errors.New("usuario no encontrado")
	// ErrInvalidSeller — колектор не из каталога
	ErrInvalidSeller = errors.New("vendedor no válido")
	// ErrInvalidSetting — недопустимый ключ или значение настройки
	ErrInvalidSetting = errors.New("configuración inválida")
)

// KindOf классифицирует ошибку. Неизвестные (обёрнутые инфраструктурные)
// ошибки остаются KindUnknown — обработчик покажет общий текст.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidPackage),
		errors.Is(err, ErrInvalidCustomCoins),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidAccount),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrMissingReference),
		errors.Is(err, ErrReasonTooLong),
		errors.Is(err, ErrInvalidSeller),
		errors.Is(err, ErrInvalidSetting),
		errors.Is(err, ErrNoSellerBinding):
		return KindValidation

	case errors.Is(err, ErrDuplicateReference),
		errors.Is(err, ErrOrderAlreadyProcessed),
		errors.Is(err, ErrPaymentAlreadyReviewed),
		errors.Is(err, ErrInsufficientCoins),
		errors.Is(err, ErrTooManyAttempts):
		return KindConflict

	case errors.Is(err, ErrNotAuthorized),
		errors.Is(err, ErrNotYourOrder),
		errors.Is(err, ErrWrongPassword):
		return KindAuthorization

	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrPaymentNotFound),
		errors.Is(err, ErrUserNotFound):
		return KindNotFound
	}
	return KindUnknown
}
