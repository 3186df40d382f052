package usecase

import (
	"context"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// SendLeadAutoResponseUseCase отправляет автоответ на почту, указанную
// в контактной форме. Тот же контракт, что и у уведомления агенту:
// таймаут, без ошибок наружу.
type SendLeadAutoResponseUseCase struct {
	records   port.RecordStorePort
	functions port.FunctionInvokerPort
	timeout   time.Duration
}

func NewSendLeadAutoResponseUseCase(records port.RecordStorePort, functions port.FunctionInvokerPort) *SendLeadAutoResponseUseCase {
	return &SendLeadAutoResponseUseCase{
		records:   records,
		functions: functions,
		timeout:   constants.NotificationTimeout,
	}
}

func (uc *SendLeadAutoResponseUseCase) Execute(ctx context.Context, lead domain.Lead) *domain.NotificationResult {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SendLeadAutoResponse",
		"lead_id":  lead.ID,
	})

	if lead.Email == "" {
		ucLogger.Debug("Lead has no email, skipping auto-response", nil)
		return nil
	}

	payload := map[string]interface{}{
		"name":           lead.Name,
		"recipient":      lead.Email,
		"message":        lead.Message,
		"property_id":    lead.PropertyID,
		"property_title": propertyTitle(ctx, uc.records, lead.PropertyID),
	}

	raw, err := invokeGuarded(ctx, uc.functions, constants.FnSendLeadAutoResponse, payload, uc.timeout)
	if err != nil {
		ucLogger.Warn("Lead auto-response was not delivered", port.Fields{
			"recipient": lead.Email,
			"error":     err.Error(),
		})
		return nil
	}

	ucLogger.Info("Lead auto-response delivered", port.Fields{"recipient": lead.Email})
	return &domain.NotificationResult{Recipient: lead.Email, Response: raw}
}
