package events

import "github.com/kelindar/event"

// SubscribeToChannel forwards events of type T to ch. Events are dropped
// when ch is full so a slow reader never stalls the publisher.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}

// SubscribeAll forwards every device event type to ch.
func SubscribeAll(bus *Bus, ch chan<- any) func() {
	unsubscribers := []func(){
		SubscribeToChannel[DeviceOpenedEvent](bus, ch),
		SubscribeToChannel[DeviceClosedEvent](bus, ch),
		SubscribeToChannel[CaptureStateChangedEvent](bus, ch),
		SubscribeToChannel[FrameErrorEvent](bus, ch),
		SubscribeToChannel[ParameterChangedEvent](bus, ch),
	}
	return func() {
		for _, unsub := range unsubscribers {
			unsub()
		}
	}
}
