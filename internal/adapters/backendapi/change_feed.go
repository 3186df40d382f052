package backendapi

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// Лента изменений платформы: SSE-поток /realtime/v1/changes.

type changeEventDTO struct {
	Collection string                 `json:"collection"`
	Action     string                 `json:"action"`
	Old        map[string]interface{} `json:"old_record"`
	New        map[string]interface{} `json:"record"`
}

// Subscribe открывает поток изменений коллекции и возвращает канал
// событий. Канал закрывается при обрыве потока или отмене контекста;
// переподключение — забота вызывающего.
func (c *Client) Subscribe(ctx context.Context, collection string) (<-chan domain.ChangeEvent, error) {
	feedLogger := c.logger.WithFields(port.Fields{
		"component":  "BackendAPIClient.ChangeFeed",
		"collection": collection,
	})

	url := c.baseURL + "/realtime/v1/changes?collection=" + collection
	headers := map[string]string{"Accept": "text/event-stream"}

	resp, err := c.doRequest(ctx, http.MethodGet, url, headers, nil)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", collection, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, readError(resp, "subscribe "+collection)
	}

	events := make(chan domain.ChangeEvent)
	go func() {
		defer close(events)
		defer resp.Body.Close()

		feedLogger.Info("Change feed stream opened", nil)

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		var data strings.Builder
		for scanner.Scan() {
			line := scanner.Text()

			// пустая строка завершает одно SSE-событие
			if line == "" {
				if data.Len() > 0 {
					c.deliver(ctx, feedLogger, events, collection, data.String())
					data.Reset()
				}
				continue
			}
			if payload, found := strings.CutPrefix(line, "data:"); found {
				data.WriteString(strings.TrimSpace(payload))
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			feedLogger.Warn("Change feed stream ended with error", port.Fields{"error": err.Error()})
			return
		}
		feedLogger.Info("Change feed stream closed", nil)
	}()

	return events, nil
}

func (c *Client) deliver(ctx context.Context, logger port.LoggerPort, events chan<- domain.ChangeEvent, collection, payload string) {
	var dto changeEventDTO
	if err := json.Unmarshal([]byte(payload), &dto); err != nil {
		logger.Warn("Failed to decode change feed payload, event dropped", port.Fields{"error": err.Error()})
		return
	}
	if dto.Collection == "" {
		dto.Collection = collection
	}

	event := domain.ChangeEvent{
		Collection: dto.Collection,
		Action:     domain.ChangeAction(dto.Action),
		Old:        dto.Old,
		New:        dto.New,
	}

	select {
	case events <- event:
	case <-ctx.Done():
	}
}
