package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// SendLeadNotificationUseCase отправляет агенту письмо о новом лиде
// через серверную функцию платформы. Отправка строго ограничена по
// времени и никогда не возвращает ошибку вызывающему.
type SendLeadNotificationUseCase struct {
	records    port.RecordStorePort
	functions  port.FunctionInvokerPort
	sessions   port.SessionPort
	adminEmail string
	timeout    time.Duration
}

func NewSendLeadNotificationUseCase(
	records port.RecordStorePort,
	functions port.FunctionInvokerPort,
	sessions port.SessionPort,
	adminEmail string,
) *SendLeadNotificationUseCase {
	return &SendLeadNotificationUseCase{
		records:    records,
		functions:  functions,
		sessions:   sessions,
		adminEmail: adminEmail,
		timeout:    constants.NotificationTimeout,
	}
}

func (uc *SendLeadNotificationUseCase) Execute(ctx context.Context, lead domain.Lead, recipient string) *domain.NotificationResult {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SendLeadNotification",
		"lead_id":  lead.ID,
	})

	to := uc.resolveRecipient(ctx, recipient)
	if to == "" {
		ucLogger.Warn("No notification recipient could be resolved", nil)
		uc.recordFailure(ctx, lead, "no recipient")
		return nil
	}

	payload := map[string]interface{}{
		"lead":           lead,
		"recipient":      to,
		"property_title": propertyTitle(ctx, uc.records, lead.PropertyID),
	}

	raw, err := invokeGuarded(ctx, uc.functions, constants.FnSendNewLeadNotification, payload, uc.timeout)
	if err != nil {
		ucLogger.Warn("Lead notification was not delivered", port.Fields{
			"recipient": to,
			"error":     err.Error(),
		})
		uc.recordFailure(ctx, lead, err.Error())
		return nil
	}

	ucLogger.Info("Lead notification delivered", port.Fields{"recipient": to})
	return &domain.NotificationResult{Recipient: to, Response: raw}
}

// resolveRecipient: явный адрес, иначе контактная почта компании,
// иначе почта текущей сессии, иначе адрес администратора из конфига.
func (uc *SendLeadNotificationUseCase) resolveRecipient(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}

	row, err := uc.records.SelectSingle(ctx, port.RecordQuery{
		Collection: constants.CollectionCompanyProfile,
		Columns:    []string{"contact_email"},
		Limit:      1,
	})
	if err == nil {
		var profile struct {
			ContactEmail string `json:"contact_email"`
		}
		if err := json.Unmarshal(row, &profile); err == nil && profile.ContactEmail != "" {
			return profile.ContactEmail
		}
	}

	if session, err := uc.sessions.CurrentSession(ctx); err == nil && session.Email != "" {
		return session.Email
	}

	return uc.adminEmail
}

// propertyTitle подтягивает заголовок объекта для текста письма.
// Недоступный объект не срывает отправку, заголовок просто пустой.
func propertyTitle(ctx context.Context, records port.RecordStorePort, propertyID string) string {
	if propertyID == "" {
		return ""
	}
	row, err := records.SelectSingle(ctx, port.RecordQuery{
		Collection: constants.CollectionProperties,
		Columns:    []string{"title"},
		Filters:    []port.Filter{{Column: "id", Op: port.OpEq, Value: propertyID}},
	})
	if err != nil {
		return ""
	}
	var property struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(row, &property); err != nil {
		return ""
	}
	return property.Title
}

// recordFailure оставляет след в журнале активности. Ошибка записи
// глотается: аудит не важнее самого лида.
func (uc *SendLeadNotificationUseCase) recordFailure(ctx context.Context, lead domain.Lead, reason string) {
	_, err := uc.records.Insert(ctx, constants.CollectionActivities, []map[string]interface{}{{
		"user_id":     lead.UserID,
		"lead_id":     lead.ID,
		"type":        domain.ActivityNotificationFailed,
		"description": "lead notification failed: " + reason,
	}})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to record notification failure", port.Fields{
			"lead_id": lead.ID,
			"error":   err.Error(),
		})
	}
}

// invokeGuarded вызывает серверную функцию с жестким таймаутом.
// Зависшая функция не должна держать горутину дольше timeout.
func invokeGuarded(ctx context.Context, functions port.FunctionInvokerPort, name string, payload interface{}, timeout time.Duration) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type invokeResult struct {
		raw json.RawMessage
		err error
	}
	resultCh := make(chan invokeResult, 1)
	go func() {
		raw, err := functions.Invoke(ctx, name, payload)
		resultCh <- invokeResult{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.New("notification timed out after " + timeout.String())
	case r := <-resultCh:
		return r.raw, r.err
	}
}
