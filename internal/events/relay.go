package events

import (
	"context"
	"time"
)

// NotifierClient интерфейс клиента диспетчера уведомлений
type NotifierClient interface {
	Notify(ctx context.Context, recipient, event string, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

const notifyTimeout = 5 * time.Second

// Relay мост между шиной доменных событий и внешним диспетчером уведомлений
// Работает асинхронно: ошибки доставки логируются и не влияют на переходы статусов
type Relay struct {
	events   <-chan Event
	notifier NotifierClient
	logger   Logger
}

// NewRelay создает relay, подписанный на шину
func NewRelay(bus *Bus, notifier NotifierClient, logger Logger) *Relay {
	return &Relay{
		events:   bus.Subscribe(),
		notifier: notifier,
		logger:   logger,
	}
}

// Run обрабатывает события до отмены контекста или закрытия шины
// Предназначен для запуска в отдельной горутине
func (r *Relay) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-r.events:
			if !ok {
				return
			}
			r.deliver(evt)
		}
	}
}

func (r *Relay) deliver(evt Event) {
	if evt.Recipient == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	payload := map[string]interface{}{
		"entity_id":   evt.EntityID,
		"status":      evt.Status,
		"occurred_at": evt.OccurredAt.Format(time.RFC3339),
	}

	if err := r.notifier.Notify(ctx, evt.Recipient, string(evt.Type), payload); err != nil {
		r.logger.Warn("Relay: failed to deliver %s for entity_id=%d: %v", evt.Type, evt.EntityID, err)
		return
	}

	r.logger.Info("Relay: delivered %s for entity_id=%d to %s", evt.Type, evt.EntityID, evt.Recipient)
}
