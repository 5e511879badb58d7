// Package rates — курсы валют к доллару с open.er-api.com.
// Источник внешний и необязательный: если API недоступен, отдаём
// последний известный набор курсов (или только USD=1). Отсутствие курса
// для валюты — нормальный исход, а не ошибка.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Валюты операции: USD (Эквадор) всегда 1, остальные берём из API.
var trackedCurrencies = []string{"MXN", "COP", "VES", "CRC"}

// Source кеширует курсы валюта→USD (единиц локальной валюты за доллар).
type Source struct {
	url    string
	ttl    time.Duration
	client *http.Client

	mu        sync.Mutex
	cached    map[string]float64
	fetchedAt time.Time
}

// NewSource создаёт источник курсов с кешем.
func NewSource(url string, ttl time.Duration) *Source {
	return &Source{
		url:    url,
		ttl:    ttl,
		client: &http.Client{Timeout: 15 * time.Second},
		cached: map[string]float64{"USD": 1},
	}
}

// Rates возвращает текущие курсы. Если кеш протух — пробует обновиться;
// при любой ошибке API возвращает последний известный набор.
func (s *Source) Rates(ctx context.Context) map[string]float64 {
	s.mu.Lock()
	stale := time.Since(s.fetchedAt) >= s.ttl
	s.mu.Unlock()

	if stale {
		if err := s.Refresh(ctx); err != nil {
			log.WithError(err).Warn("Не удалось обновить курсы валют, используем кеш")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.cached))
	for k, v := range s.cached {
		out[k] = v
	}
	return out
}

// Refresh принудительно обновляет кеш из API.
func (s *Source) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка запроса курсов: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API курсов вернул статус %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("ошибка декодирования ответа: %w", err)
	}

	fresh := map[string]float64{"USD": 1}
	for _, code := range trackedCurrencies {
		if v, ok := payload.Rates[code]; ok && v > 0 {
			fresh[code] = v
		}
	}

	s.mu.Lock()
	s.cached = fresh
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	log.WithField("currencies", len(fresh)).Debug("Курсы валют обновлены")
	return nil
}
