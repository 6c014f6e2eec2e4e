package resourcecatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// cacheTTL время жизни записи в кэше ресурсов
// Каталог read-mostly: ресурсы меняются редко, активность проверяется при каждом бронировании,
// поэтому короткий TTL достаточен
const cacheTTL = 30 * time.Second

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом ресурсов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	mu    sync.Mutex
	cache map[int64]cacheEntry
}

type cacheEntry struct {
	resource  *Resource
	fetchedAt time.Time
}

// NewClient создает новый экземпляр клиента каталога ресурсов
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:   log,
		cache: make(map[int64]cacheEntry),
	}
}

// GetResource получает ресурс по ID
// Результат кэшируется на cacheTTL, чтобы не ходить в каталог на каждый запрос слотов
func (c *Client) GetResource(ctx context.Context, resourceID int64) (*Resource, error) {
	c.mu.Lock()
	if entry, ok := c.cache[resourceID]; ok && time.Since(entry.fetchedAt) < cacheTTL {
		c.mu.Unlock()
		return entry.resource, nil
	}
	c.mu.Unlock()

	resource, err := c.fetchResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[resourceID] = cacheEntry{resource: resource, fetchedAt: time.Now()}
	c.mu.Unlock()

	return resource, nil
}

func (c *Client) fetchResource(ctx context.Context, resourceID int64) (*Resource, error) {
	url := fmt.Sprintf("%s/internal/resources/%d", c.baseURL, resourceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrResourceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var resource Resource
	if err := json.NewDecoder(resp.Body).Decode(&resource); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &resource, nil
}
