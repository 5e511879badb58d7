// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// диспетчер уведомлений и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"orospv.com/orocoins-bot/internal/bot"
	"orospv.com/orocoins-bot/internal/config"
	"orospv.com/orocoins-bot/internal/db/postgres"
	"orospv.com/orocoins-bot/internal/features/accounts"
	"orospv.com/orocoins-bot/internal/features/bonus"
	"orospv.com/orocoins-bot/internal/features/debt"
	"orospv.com/orocoins-bot/internal/features/orders"
	"orospv.com/orocoins-bot/internal/features/payments"
	"orospv.com/orocoins-bot/internal/features/settings"
	"orospv.com/orocoins-bot/internal/features/users"
	"orospv.com/orocoins-bot/internal/jobs"
	"orospv.com/orocoins-bot/internal/notify"
	"orospv.com/orocoins-bot/internal/rates"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Запускаем миграции
	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	accountsRepo := accounts.NewRepository(pool)
	ordersRepo := orders.NewRepository(pool)
	paymentsRepo := payments.NewRepository(pool)
	debtRepo := debt.NewRepository(pool)
	bonusRepo := bonus.NewRepository(pool)
	settingsRepo := settings.NewRepository(pool)
	usersRepo := users.NewRepository(pool)

	// === 4. Сервисы ===
	rateSource := rates.NewSource(cfg.RatesURL, cfg.RatesCacheTTL)
	usersService := users.NewService(usersRepo, cfg)
	accountsService := accounts.NewService(accountsRepo)
	ordersService := orders.NewService(ordersRepo, accountsRepo)
	paymentsService := payments.NewService(paymentsRepo)
	settingsService := settings.NewService(settingsRepo)
	debtService := debt.NewService(debtRepo, paymentsService, settingsService, rateSource, cfg)
	bonusService := bonus.NewService(bonusRepo, cfg)

	// Начальный супер-админ, пока таблица пуста
	if cfg.BootstrapAdminUser != "" && cfg.BootstrapAdminHash != "" {
		if err := usersService.Bootstrap(ctx, cfg.BootstrapAdminUser, cfg.BootstrapAdminHash); err != nil {
			return nil, fmt.Errorf("ошибка bootstrap супер-админа: %w", err)
		}
	}

	// === 5. Диспетчер уведомлений ===
	// Сессии пользователей дают привязку «колектор/персонал → чат».
	dispatcher := notify.NewDispatcher(botAPI, usersService)

	// === 6. Обработчики ===
	usersHandler := users.NewHandler(usersService, botAPI)
	ordersHandler := orders.NewHandler(ordersService, dispatcher, botAPI, cfg.AppTimezone)
	accountsHandler := accounts.NewHandler(accountsService, dispatcher, botAPI, cfg.AppTimezone)
	paymentsHandler := payments.NewHandler(paymentsService, dispatcher, botAPI, cfg.AppTimezone)
	debtHandler := debt.NewHandler(debtService, botAPI)
	bonusHandler := bonus.NewHandler(bonusService, botAPI)
	settingsHandler := settings.NewHandler(settingsService, botAPI)

	// === 7. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		usersService,
		usersHandler,
		ordersHandler,
		accountsHandler,
		paymentsHandler,
		debtHandler,
		bonusHandler,
		settingsHandler,
	)

	// === 8. Планировщик задач ===
	scheduler := jobs.NewScheduler(cfg.AppTimezone, rateSource, ordersService, dispatcher)

	// Первое обновление курсов — сразу, не дожидаясь cron
	if err := rateSource.Refresh(ctx); err != nil {
		log.WithError(err).Warn("Не удалось загрузить курсы при старте, продолжаем без них")
	}

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Accounts},
		{2, migration002Orders},
		{3, migration003Payments},
		{4, migration004Settings},
		{5, migration005Users},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Accounts = `
CREATE TABLE IF NOT EXISTS coin_accounts (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(64) UNIQUE NOT NULL,
    current_balance BIGINT NOT NULL DEFAULT 0 CHECK (current_balance >= 0),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
INSERT INTO coin_accounts (name) VALUES ('OrosPV1'), ('OrosPV2')
ON CONFLICT (name) DO NOTHING;

CREATE TABLE IF NOT EXISTS coin_account_history (
    id BIGSERIAL PRIMARY KEY,
    account_name VARCHAR(64) NOT NULL REFERENCES coin_accounts(name),
    prev_balance BIGINT NOT NULL,
    new_balance BIGINT NOT NULL,
    changed_by VARCHAR(255) NOT NULL,
    changed_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_account_history_name ON coin_account_history(account_name, changed_at DESC);
`

var migration002Orders = `
CREATE TABLE IF NOT EXISTS orders (
    id BIGSERIAL PRIMARY KEY,
    order_number VARCHAR(32) UNIQUE NOT NULL,
    country VARCHAR(64) NOT NULL,
    country_slug VARCHAR(64) NOT NULL,
    game_username VARCHAR(255) NOT NULL,
    seller VARCHAR(64) NOT NULL,
    package_id VARCHAR(32) NOT NULL DEFAULT '',
    package_coins BIGINT NOT NULL,
    package_price DOUBLE PRECISION NOT NULL,
    currency_code VARCHAR(8) NOT NULL,
    currency_symbol VARCHAR(8) NOT NULL,
    is_custom BOOLEAN NOT NULL DEFAULT FALSE,
    coin_account VARCHAR(64) NOT NULL REFERENCES coin_accounts(name),
    registered_by VARCHAR(64) NOT NULL,
    status VARCHAR(16) NOT NULL DEFAULT 'pending',
    approved_by VARCHAR(64),
    approved_at TIMESTAMP,
    cancel_reason VARCHAR(300),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_seller_reference ON orders(seller, game_username);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_orders_registered_by ON orders(registered_by);
`

var migration003Payments = `
CREATE TABLE IF NOT EXISTS collector_payments (
    id BIGSERIAL PRIMARY KEY,
    seller_name VARCHAR(64) NOT NULL,
    amount_usd DOUBLE PRECISION NOT NULL CHECK (amount_usd > 0),
    reference VARCHAR(255) NOT NULL,
    notes TEXT,
    status VARCHAR(16) NOT NULL DEFAULT 'pending',
    reject_reason VARCHAR(300),
    submitted_by VARCHAR(64) NOT NULL,
    reviewed_by VARCHAR(64),
    reviewed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_payments_seller ON collector_payments(seller_name, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_payments_status ON collector_payments(status);
`

var migration004Settings = `
CREATE TABLE IF NOT EXISTS app_settings (
    key VARCHAR(64) PRIMARY KEY,
    value TEXT NOT NULL,
    updated_by VARCHAR(64) NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

var migration005Users = `
CREATE TABLE IF NOT EXISTS admin_users (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(64) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    role VARCHAR(32) NOT NULL,
    seller_name VARCHAR(64),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS login_attempts (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(64) NOT NULL,
    success BOOLEAN NOT NULL,
    attempt_time TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_login_attempts_user ON login_attempts(username, attempt_time DESC);
`
