package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Invoke вызывает именованную серверную функцию платформы и возвращает
// ее ответ как есть.
func (c *Client) Invoke(ctx context.Context, name string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: failed to marshal payload: %w", name, err)
	}

	url := c.baseURL + "/functions/v1/" + name
	resp, err := c.doRequest(ctx, http.MethodPost, url, nil, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError(resp, "invoke "+name)
	}
	return io.ReadAll(resp.Body)
}
