// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: форматирование сумм по валютам, монет и дат.
package common

import (
	"fmt"
	"strings"
	"time"
)

// addThousands вставляет точки-разделители тысяч в целую часть числа.
// Латиноамериканский формат: 43.000,50 (точка — тысячи, запятая — десятичные).
func addThousands(s string) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}

	out := sb.String()
	if neg {
		out = "-" + out
	}
	if hasFrac {
		out += "," + fracPart
	}
	return out
}

// FormatPrice форматирует сумму в локальной валюте по её коду.
//
// Примеры:
//
//	FormatPrice(1300, "CRC")  → "₡1.300"
//	FormatPrice(43000, "COP") → "$43.000 COP"
//	FormatPrice(12, "USD")    → "$12.00 USD"
func FormatPrice(price float64, currencyCode string) string {
	s := trimZeros(price)
	switch currencyCode {
	case "CRC":
		return "₡" + addThousands(s)
	case "MXN":
		return "$" + addThousands(s) + " MXN"
	case "COP":
		return "$" + addThousands(s) + " COP"
	case "VES":
		return addThousands(s) + " Bs."
	case "USD":
		return fmt.Sprintf("$%.2f USD", price)
	default:
		return s
	}
}

// trimZeros печатает число без хвостовых нулей десятичной части.
func trimZeros(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// FormatCoins форматирует количество монет с разделителями тысяч.
// Пример: FormatCoins(15000) → "15.000"
func FormatCoins(coins int64) string {
	return addThousands(fmt.Sprintf("%d", coins))
}

// FormatUSD форматирует сумму в долларах: FormatUSD(12.5) → "$12.50 USD".
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f USD", amount)
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04" в заданном поясе.
// Используется для отображения дат заказов и платежей.
func FormatDateTime(t time.Time, tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.FixedZone("VET", -4*60*60)
	}
	return t.In(loc).Format("02.01.2006 15:04")
}
