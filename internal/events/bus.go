package events

import (
	"sync"
	"time"
)

// Type тип доменного события
type Type string

const (
	TypeRequestCreated       Type = "reservation_request.created"
	TypeRequestStatusChanged Type = "reservation_request.status_changed"
	TypeBookingCreated       Type = "booking.created"
	TypeBookingStatusChanged Type = "booking.status_changed"
)

// Event доменное событие, публикуемое после зафиксированного перехода
// Публикация происходит строго после commit - подписчики никогда не видят
// события незафиксированных транзакций
type Event struct {
	Type       Type
	EntityID   int64
	Status     string
	Recipient  string
	OccurredAt time.Time
}

// Bus внутрипроцессная шина доменных событий
// Publish не блокируется: при переполнении буфера подписчика событие
// отбрасывается - подписчики обслуживаются асинхронно и не могут
// затормозить транзакционный путь
type Bus struct {
	mu     sync.RWMutex
	subs   []chan Event
	buffer int
	closed bool
}

// NewBus создает шину с указанным размером буфера на подписчика
func NewBus(buffer int) *Bus {
	return &Bus{buffer: buffer}
}

// Subscribe регистрирует нового подписчика и возвращает его канал
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.buffer)
	b.subs = append(b.subs, ch)
	return ch
}

// Publish рассылает событие всем подписчикам без блокировки
func (b *Bus) Publish(evt Event) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			// Переполненный подписчик пропускает событие
		}
	}
}

// Close закрывает каналы всех подписчиков
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, ch := range b.subs {
		close(ch)
	}
}
