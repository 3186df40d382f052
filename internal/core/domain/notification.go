package domain

import "encoding/json"

// NotificationResult — результат вызова почтовой функции платформы.
// Отправка best-effort: все пути отказа возвращают nil вместо ошибки.
type NotificationResult struct {
	Recipient string          `json:"recipient"`
	Response  json.RawMessage `json:"response,omitempty"`
}
