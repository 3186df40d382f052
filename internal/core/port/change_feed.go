package port

import (
	"context"

	"listing-service/internal/core/domain"
)

// ChangeFeedPort — подписка на ленту изменений коллекции.
// Канал закрывается при отмене контекста или обрыве потока;
// переподписку порт не выполняет.
type ChangeFeedPort interface {
	Subscribe(ctx context.Context, collection string) (<-chan domain.ChangeEvent, error)
}
