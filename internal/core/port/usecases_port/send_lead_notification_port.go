package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

// SendLeadNotificationUseCase — письмо агенту о новом лиде.
// Контракт: никогда не возвращает ошибку; nil-результат означает,
// что отправка не состоялась (таймаут, отказ, нет получателя).
type SendLeadNotificationUseCase interface {
	Execute(ctx context.Context, lead domain.Lead, recipient string) *domain.NotificationResult
}

// SendLeadAutoResponseUseCase — автоответ самому лиду. Тот же контракт.
type SendLeadAutoResponseUseCase interface {
	Execute(ctx context.Context, lead domain.Lead) *domain.NotificationResult
}
