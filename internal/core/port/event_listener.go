package port

import "context"

// EventListenerPort — фоновый слушатель (мост инвалидации).
// Start блокируется до отмены контекста; Close обрывает доставку.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
