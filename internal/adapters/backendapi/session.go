package backendapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
)

// CurrentSession проверяет токен запроса у платформы и возвращает
// личность. Без токена в контексте сессии нет по определению.
func (c *Client) CurrentSession(ctx context.Context) (*domain.Session, error) {
	if contextkeys.AccessTokenFromContext(ctx) == "" {
		return nil, domain.ErrNoSession
	}

	resp, err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("current session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrNoSession
	}
	if resp.StatusCode != http.StatusOK {
		return nil, readError(resp, "current session")
	}

	var session domain.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("current session: failed to decode response: %w", err)
	}
	if session.UserID == "" {
		return nil, domain.ErrNoSession
	}
	return &session, nil
}
