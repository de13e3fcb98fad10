package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	sub := bus.Subscribe()

	bus.Publish(Event{Type: TypeRequestCreated, EntityID: 1})
	bus.Publish(Event{Type: TypeRequestStatusChanged, EntityID: 1, Status: "approved"})

	evt := <-sub
	assert.Equal(t, TypeRequestCreated, evt.Type)
	assert.Equal(t, int64(1), evt.EntityID)
	assert.False(t, evt.OccurredAt.IsZero())

	evt = <-sub
	assert.Equal(t, TypeRequestStatusChanged, evt.Type)
	assert.Equal(t, "approved", evt.Status)
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	sub1 := bus.Subscribe()
	sub2 := bus.Subscribe()

	bus.Publish(Event{Type: TypeBookingCreated, EntityID: 7})

	for _, sub := range []<-chan Event{sub1, sub2} {
		select {
		case evt := <-sub:
			assert.Equal(t, int64(7), evt.EntityID)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBus_DropsWhenSaturated(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	sub := bus.Subscribe()

	// Второе событие отбрасывается: подписчик не вычитывает, буфер равен 1
	bus.Publish(Event{Type: TypeBookingCreated, EntityID: 1})
	bus.Publish(Event{Type: TypeBookingCreated, EntityID: 2})

	evt := <-sub
	assert.Equal(t, int64(1), evt.EntityID)

	select {
	case evt := <-sub:
		t.Fatalf("unexpected second event: %+v", evt)
	default:
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(1)
	sub := bus.Subscribe()
	bus.Close()

	// Publish после Close не паникует и ничего не доставляет
	bus.Publish(Event{Type: TypeBookingCreated, EntityID: 1})

	_, ok := <-sub
	require.False(t, ok)
}
