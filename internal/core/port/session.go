package port

import (
	"context"

	"listing-service/internal/core/domain"
)

// SessionPort — текущая личность по токену из контекста запроса.
// Возвращает domain.ErrNoSession, если токена нет или он невалиден.
type SessionPort interface {
	CurrentSession(ctx context.Context) (*domain.Session, error)
}
