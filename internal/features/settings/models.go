// Package settings — хранилище настроек key→value (app_settings).
// Сейчас единственный ключ — ves_rate: ручной курс боливара,
// перекрывающий курс из API.
package settings

import "time"

// Setting — одна настройка. Upsert, побеждает последняя запись.
type Setting struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedBy string    `db:"updated_by"`
	UpdatedAt time.Time `db:"updated_at"`
}

// KeyVESRate — ручной курс VES за доллар.
const KeyVESRate = "ves_rate"

// Верхняя граница вменяемого курса (защита от опечаток).
const maxVESRate = 10_000_000
