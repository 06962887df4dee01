package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var got1, got2 []*Event
	unsub1 := bus.Subscribe(func(e *Event) { got1 = append(got1, e) })
	defer unsub1()
	unsub2 := bus.Subscribe(func(e *Event) { got2 = append(got2, e) })
	defer unsub2()

	bus.Publish(&VibeAlertData{AlertType: "hype", Intensity: 88})

	assert.Len(t, got1, 1)
	assert.Len(t, got2, 1)
	assert.Equal(t, VibeAlertRaised, got1[0].Type)

	data, ok := got1[0].Data.(*VibeAlertData)
	assert.True(t, ok)
	assert.Equal(t, 88, data.Intensity)
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	count := 0
	unsub := bus.Subscribe(func(e *Event) { count++ })

	bus.Publish(&TradePlacedData{TradeID: "TRD-1"})
	unsub()
	bus.Publish(&TradePlacedData{TradeID: "TRD-2"})

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, bus.SubscriberCount())
}
