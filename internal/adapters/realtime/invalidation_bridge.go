package realtime

import (
	"context"
	"sync"

	"listing-service/internal/constants"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// SubscriptionState — состояние подписки на одну коллекцию.
type SubscriptionState string

const (
	StateDisconnected SubscriptionState = "disconnected"
	StateSubscribing  SubscriptionState = "subscribing"
	StateSubscribed   SubscriptionState = "subscribed"
)

// InvalidationBridge слушает ленту изменений платформы и переводит
// события мутаций в инвалидации кэша. Мост ничего не перечитывает сам:
// следующий читатель обновит запись по своему запросу.
//
// Переподключение мост не выполняет: оборванная подписка остается
// в состоянии disconnected до перезапуска процесса.
type InvalidationBridge struct {
	feed        port.ChangeFeedPort
	cache       port.QueryCachePort
	collections []string
	logger      port.LoggerPort

	mu     sync.Mutex
	states map[string]SubscriptionState
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewInvalidationBridge(feed port.ChangeFeedPort, cache port.QueryCachePort, baseLogger port.LoggerPort) *InvalidationBridge {
	collections := []string{
		constants.CollectionProperties,
		constants.CollectionPropertyImages,
		constants.CollectionCompanyProfile,
		constants.CollectionTeamMembers,
	}

	states := make(map[string]SubscriptionState, len(collections))
	for _, collection := range collections {
		states[collection] = StateDisconnected
	}

	return &InvalidationBridge{
		feed:        feed,
		cache:       cache,
		collections: collections,
		states:      states,
		logger:      baseLogger.WithFields(port.Fields{"component": "InvalidationBridge"}),
	}
}

// Start подписывается на все коллекции и блокируется до отмены
// контекста или вызова Close.
func (b *InvalidationBridge) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)

	b.mu.Lock()
	b.cancel = cancel
	b.mu.Unlock()

	for _, collection := range b.collections {
		b.wg.Add(1)
		go b.listen(runCtx, collection)
	}

	<-runCtx.Done()
	b.wg.Wait()
	return nil
}

// Close обрывает все подписки. События, пришедшие после Close,
// не доставляются.
func (b *InvalidationBridge) Close() error {
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}

// State возвращает текущее состояние подписки на коллекцию.
func (b *InvalidationBridge) State(collection string) SubscriptionState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.states[collection]
}

func (b *InvalidationBridge) setState(collection string, state SubscriptionState) {
	b.mu.Lock()
	b.states[collection] = state
	b.mu.Unlock()
}

func (b *InvalidationBridge) listen(ctx context.Context, collection string) {
	defer b.wg.Done()

	listenLogger := b.logger.WithFields(port.Fields{"collection": collection})

	b.setState(collection, StateSubscribing)
	events, err := b.feed.Subscribe(ctx, collection)
	if err != nil {
		listenLogger.Error("Failed to subscribe to change feed", err, nil)
		b.setState(collection, StateDisconnected)
		return
	}
	b.setState(collection, StateSubscribed)
	listenLogger.Info("Subscribed to change feed", nil)

	for {
		select {
		case <-ctx.Done():
			b.setState(collection, StateDisconnected)
			return
		case event, open := <-events:
			if !open {
				listenLogger.Warn("Change feed stream closed", nil)
				b.setState(collection, StateDisconnected)
				return
			}
			b.apply(event, listenLogger)
		}
	}
}

// apply переводит одно событие мутации в набор инвалидаций.
func (b *InvalidationBridge) apply(event domain.ChangeEvent, logger port.LoggerPort) {
	switch event.Collection {
	case constants.CollectionProperties:
		// списки, избранное и категории строятся из этой коллекции
		b.cache.InvalidatePrefix(constants.PropertiesPrefix())
		if id := event.RecordID(); id != "" {
			b.cache.Invalidate(constants.PropertyKey(id))
		}

	case constants.CollectionPropertyImages:
		// изображение живет внутри кэшированной записи родителя
		if propertyID := event.Field("property_id"); propertyID != "" {
			b.cache.Invalidate(constants.PropertyKey(propertyID))
		}
		b.cache.InvalidatePrefix(constants.PropertiesPrefix())

	case constants.CollectionCompanyProfile:
		b.cache.Invalidate(constants.CompanyProfileKey())

	case constants.CollectionTeamMembers:
		b.cache.Invalidate(constants.TeamMembersKey())

	default:
		logger.Debug("Change event for untracked collection, ignored", port.Fields{
			"event_collection": event.Collection,
		})
		return
	}

	logger.Debug("Cache invalidated after change event", port.Fields{
		"action":    event.Action,
		"record_id": event.RecordID(),
	})
}
