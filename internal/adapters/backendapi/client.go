package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// Client — клиент хостинговой платформы данных. Один экземпляр
// покрывает все поверхности: строки, файлы, функции и сессии.
type Client struct {
	baseURL    string // например, "https://project.backend.example"
	serviceKey string
	httpClient *http.Client
	logger     port.LoggerPort
}

func NewClient(baseURL, serviceKey string, baseLogger port.LoggerPort) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     baseLogger.WithFields(port.Fields{"component": "BackendAPIClient"}),
	}
}

// doRequest — внутренний хелпер: общие заголовки, трассировка и выбор
// токена. Токен запроса (если есть в контексте) важнее сервисного
// ключа: платформа проверяет права по нему.
func (c *Client) doRequest(ctx context.Context, method, url string, headers map[string]string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.serviceKey)
	token := contextkeys.AccessTokenFromContext(ctx)
	if token == "" {
		token = c.serviceKey
	}
	req.Header.Set("Authorization", "Bearer "+token)

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.httpClient.Do(req)
}

// readError превращает не-2xx ответ платформы в ошибку. Статусы
// "нет строки" схлопываются в доменный ErrNotFound.
func readError(resp *http.Response, operation string) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNotAcceptable {
		return fmt.Errorf("%s: %w", operation, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: backend returned status %d, body: %s", operation, resp.StatusCode, string(bodyBytes))
}

func (c *Client) restURL(collection string) string {
	return c.baseURL + "/rest/v1/" + collection
}

// Select возвращает JSON-массив строк коллекции.
func (c *Client) Select(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
	url := c.restURL(q.Collection) + "?" + encodeQuery(q)

	resp, err := c.doRequest(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError(resp, "select "+q.Collection)
	}
	return io.ReadAll(resp.Body)
}

// SelectSingle запрашивает ровно одну строку. Платформа сама следит
// за единственностью: ноль строк превращается в ErrNotFound.
func (c *Client) SelectSingle(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
	url := c.restURL(q.Collection) + "?" + encodeQuery(q)
	headers := map[string]string{"Accept": "application/vnd.pgrst.object+json"}

	resp, err := c.doRequest(ctx, http.MethodGet, url, headers, nil)
	if err != nil {
		return nil, fmt.Errorf("select single %s: %w", q.Collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError(resp, "select single "+q.Collection)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) Insert(ctx context.Context, collection string, rows []map[string]interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("insert %s: failed to marshal rows: %w", collection, err)
	}

	headers := map[string]string{"Prefer": "return=representation"}
	resp, err := c.doRequest(ctx, http.MethodPost, c.restURL(collection), headers, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, readError(resp, "insert "+collection)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) Update(ctx context.Context, collection string, filters []port.Filter, patch map[string]interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("update %s: failed to marshal patch: %w", collection, err)
	}

	url := c.restURL(collection) + "?" + encodeFilters(filters)
	headers := map[string]string{"Prefer": "return=representation"}
	resp, err := c.doRequest(ctx, http.MethodPatch, url, headers, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError(resp, "update "+collection)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) Delete(ctx context.Context, collection string, filters []port.Filter) error {
	url := c.restURL(collection) + "?" + encodeFilters(filters)

	resp, err := c.doRequest(ctx, http.MethodDelete, url, nil, nil)
	if err != nil {
		return fmt.Errorf("delete %s: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return readError(resp, "delete "+collection)
	}
	return nil
}
