// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"orocoins"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"orocoins"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"America/Caracas"`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно. Иначе "go на каждый апдейт" = утечка памяти при флуде.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Auth ---
	LoginMaxAttempts   int           `envconfig:"LOGIN_MAX_ATTEMPTS" default:"3"`
	LoginLockoutWindow time.Duration `envconfig:"LOGIN_LOCKOUT_WINDOW" default:"1h"`
	SessionTTL         time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	// Начальный супер-админ: создаётся один раз, пока таблица пуста.
	// Хеш — bcrypt (cost 12), сам пароль в окружении не хранится.
	BootstrapAdminUser string `envconfig:"BOOTSTRAP_ADMIN_USER" default:""`
	BootstrapAdminHash string `envconfig:"BOOTSTRAP_ADMIN_PASSWORD_HASH" default:""`

	// --- Comisión y deuda ---
	// Комиссия колектора (доля от собранного, 0.03 = 3%)
	CommissionRate float64 `envconfig:"COMMISSION_RATE" default:"0.03"`
	// Колекторы, освобождённые от комиссии (CSV по seller_name)
	CommissionExemptRaw string   `envconfig:"COMMISSION_EXEMPT_SELLERS" default:""`
	CommissionExempt    []string `envconfig:"-"` // заполним вручную

	// --- Bono de registradores ---
	RegistrarMilestoneCoins int64   `envconfig:"REGISTRAR_MILESTONE_COINS" default:"100000"`
	RegistrarBonusUSD       float64 `envconfig:"REGISTRAR_BONUS_USD" default:"10"`

	// --- Tasas de cambio ---
	RatesURL      string        `envconfig:"RATES_URL" default:"https://open.er-api.com/v6/latest/USD"`
	RatesCacheTTL time.Duration `envconfig:"RATES_CACHE_TTL" default:"1h"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.CommissionRate < 0 || c.CommissionRate >= 1 {
		return fmt.Errorf("COMMISSION_RATE должна быть в диапазоне [0, 1)")
	}
	if c.RegistrarMilestoneCoins <= 0 || c.RegistrarBonusUSD < 0 {
		return fmt.Errorf("некорректные параметры бонуса регистраторов")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	cfg.CommissionExempt = parseCSV(cfg.CommissionExemptRaw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsCommissionExempt проверяет, освобождён ли колектор от комиссии.
func (c *Config) IsCommissionExempt(sellerName string) bool {
	for _, s := range c.CommissionExempt {
		if strings.EqualFold(s, sellerName) {
			return true
		}
	}
	return false
}

func parseCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
