// Package accounts управляет инвентарём монет (cuentas de monedas).
// models.go описывает счета и журнал изменений баланса.
package accounts

import "time"

// Account — именованный пул монет, из которого исполняются заказы.
// Инвариант: CurrentBalance >= 0 всегда; дебет выполняется условным
// UPDATE и срабатывает только при достаточном балансе.
type Account struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`            // OrosPV1 / OrosPV2
	CurrentBalance int64     `db:"current_balance"` // Текущий остаток монет
	UpdatedAt      time.Time `db:"updated_at"`
}

// HistoryEntry — неизменяемая запись аудита. Добавляется при КАЖДОМ
// изменении баланса: дебет заказа, пополнение, абсолютная установка.
type HistoryEntry struct {
	ID          int64     `db:"id"`
	AccountName string    `db:"account_name"`
	PrevBalance int64     `db:"prev_balance"`
	NewBalance  int64     `db:"new_balance"`
	ChangedBy   string    `db:"changed_by"` // username или "orden:<номер>"
	ChangedAt   time.Time `db:"changed_at"`
}

// Фиксированный список счетов. Пополняется только правкой кода —
// счета сеются миграцией и никогда не удаляются.
var validAccounts = []string{"OrosPV1", "OrosPV2"}

// Лимиты от «жирных пальцев»: абсолютная установка и разовое пополнение.
const (
	MaxSetBalance = 50_000_000
	MaxAddCoins   = 10_000_000
)

// ValidAccount проверяет имя счёта по фиксированному списку.
func ValidAccount(name string) bool {
	for _, a := range validAccounts {
		if a == name {
			return true
		}
	}
	return false
}

// ValidAccounts возвращает список допустимых счетов.
func ValidAccounts() []string {
	return validAccounts
}
