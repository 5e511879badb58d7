// Package catalog — неизменяемые справочные данные: страны, валюты,
// пакеты монет и привязка колекторов к странам.
// Данные загружаются один раз и безопасны для конкурентного чтения.
package catalog

import "math"

// Package — тариф: цена в локальной валюте и количество монет.
type Package struct {
	ID      string
	Price   float64
	Coins   int64
	Popular bool
}

// Country — страна с валютой и упорядоченным списком пакетов.
// Инвариант: Packages непуст и отсортирован по возрастанию монет;
// курс монет одинаков для всех тарифов страны.
type Country struct {
	Name           string
	Slug           string
	Flag           string
	Currency       string
	CurrencySymbol string
	CurrencyCode   string
	Packages       []Package
}

// CoinRate возвращает курс: монет на единицу локальной валюты.
// Определяется по первому (базовому) пакету.
func (c *Country) CoinRate() float64 {
	return float64(c.Packages[0].Coins) / c.Packages[0].Price
}

// FindPackage ищет пакет по ID в списке тарифов страны.
func (c *Country) FindPackage(id string) *Package {
	for i := range c.Packages {
		if c.Packages[i].ID == id {
			return &c.Packages[i]
		}
	}
	return nil
}

// RoundTo500 округляет количество монет до ближайших 500.
func RoundTo500(coins float64) int64 {
	return int64(math.Round(coins/500) * 500)
}

var countries = []Country{
	{
		Name:           "Costa Rica",
		Slug:           "costa-rica",
		Flag:           "🇨🇷",
		Currency:       "Colones",
		CurrencySymbol: "₡",
		CurrencyCode:   "CRC",
		Packages: []Package{
			{ID: "cr-1", Price: 650, Coins: 1500},
			{ID: "cr-2", Price: 1300, Coins: 3000},
			{ID: "cr-3", Price: 1950, Coins: 4500},
			{ID: "cr-4", Price: 2600, Coins: 6000},
			{ID: "cr-5", Price: 3900, Coins: 9000},
			{ID: "cr-6", Price: 6500, Coins: 15000, Popular: true},
			{ID: "cr-7", Price: 13000, Coins: 30000},
		},
	},
	{
		Name:           "México",
		Slug:           "mexico",
		Flag:           "🇲🇽",
		Currency:       "Pesos Mexicanos",
		CurrencySymbol: "$",
		CurrencyCode:   "MXN",
		Packages: []Package{
			{ID: "mx-1", Price: 42, Coins: 3000},
			{ID: "mx-2", Price: 105, Coins: 7500},
			{ID: "mx-3", Price: 210, Coins: 15000, Popular: true},
			{ID: "mx-4", Price: 1050, Coins: 80000},
			{ID: "mx-5", Price: 2100, Coins: 160000},
		},
	},
	{
		Name:           "Colombia",
		Slug:           "colombia",
		Flag:           "🇨🇴",
		Currency:       "Pesos Colombianos",
		CurrencySymbol: "$",
		CurrencyCode:   "COP",
		Packages: []Package{
			{ID: "co-1", Price: 4300, Coins: 1500},
			{ID: "co-2", Price: 8600, Coins: 3000},
			{ID: "co-3", Price: 21500, Coins: 7500},
			{ID: "co-4", Price: 43000, Coins: 15000, Popular: true},
			{ID: "co-5", Price: 114700, Coins: 40000},
			{ID: "co-6", Price: 215000, Coins: 75000},
			{ID: "co-7", Price: 430000, Coins: 150000},
		},
	},
	{
		Name:           "Venezuela",
		Slug:           "venezuela",
		Flag:           "🇻🇪",
		Currency:       "Bolívares",
		CurrencySymbol: "Bs.",
		CurrencyCode:   "VES",
		Packages: []Package{
			{ID: "ve-1", Price: 800, Coins: 1500},
			{ID: "ve-2", Price: 1600, Coins: 3000},
			{ID: "ve-3", Price: 2400, Coins: 4500},
			{ID: "ve-4", Price: 3200, Coins: 6000},
			{ID: "ve-5", Price: 4800, Coins: 9000},
			{ID: "ve-6", Price: 8000, Coins: 15000, Popular: true},
			{ID: "ve-7", Price: 16000, Coins: 30000},
		},
	},
	{
		Name:           "Ecuador",
		Slug:           "ecuador",
		Flag:           "🇪🇨",
		Currency:       "Dólares",
		CurrencySymbol: "$",
		CurrencyCode:   "USD",
		Packages: []Package{
			{ID: "ec-1", Price: 1.2, Coins: 1500},
			{ID: "ec-2", Price: 2.4, Coins: 3000},
			{ID: "ec-3", Price: 3.6, Coins: 4500},
			{ID: "ec-4", Price: 12, Coins: 15000, Popular: true},
			{ID: "ec-5", Price: 38.4, Coins: 48000},
			{ID: "ec-6", Price: 60, Coins: 80000},
			{ID: "ec-7", Price: 120, Coins: 150000},
		},
	},
}

// sellerCountryMap — привязка колектора к стране.
// Страна заказа ВСЕГДА выводится отсюда, никогда не берётся от клиента.
var sellerCountryMap = map[string]string{
	"Andres":  "costa-rica",
	"Dulius":  "mexico",
	"Natasha": "ecuador",
	"Maga":    "venezuela",
	"Boster":  "colombia",
}

// Countries возвращает все страны.
func Countries() []Country {
	return countries
}

// GetCountry ищет страну по slug.
func GetCountry(slug string) *Country {
	for i := range countries {
		if countries[i].Slug == slug {
			return &countries[i]
		}
	}
	return nil
}

// Sellers возвращает имена всех колекторов.
func Sellers() []string {
	out := make([]string, 0, len(sellerCountryMap))
	for s := range sellerCountryMap {
		out = append(out, s)
	}
	return out
}

// CountryForSeller возвращает страну, закреплённую за колектором.
// nil, если колектор не из каталога.
func CountryForSeller(seller string) *Country {
	slug, ok := sellerCountryMap[seller]
	if !ok {
		return nil
	}
	return GetCountry(slug)
}

// ValidSeller проверяет, что имя колектора есть в каталоге.
func ValidSeller(seller string) bool {
	_, ok := sellerCountryMap[seller]
	return ok
}
