// Package event provides the in-process notification bus used by the spin
// controller to announce round milestones to UI, audio and reward listeners.
package event

// Type names a notification topic
type Type string

// Event is a single notification. It carries no payload beyond its type.
type Event struct {
	Type Type
}

// Listener receives dispatched events
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a plain function to Listener
type ListenerFunc func(e Event)

// OnEvent calls f(e)
func (f ListenerFunc) OnEvent(e Event) { f(e) }

type subscription struct {
	id       uint64
	listener Listener
}

// Dispatcher fans events out to subscribers synchronously, in subscription order.
// It is meant to be driven from the host's update loop and is not safe for concurrent use.
type Dispatcher struct {
	listeners map[Type][]subscription
	all       []subscription
	nextID    uint64
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[Type][]subscription),
	}
}

// Subscribe registers listener for events of type t.
// The returned function removes the subscription; calling it more than once is a no-op.
func (d *Dispatcher) Subscribe(t Type, listener Listener) (unsubscribe func()) {
	d.nextID++
	id := d.nextID
	d.listeners[t] = append(d.listeners[t], subscription{id: id, listener: listener})
	return func() {
		d.listeners[t] = without(d.listeners[t], id)
		if len(d.listeners[t]) == 0 {
			delete(d.listeners, t)
		}
	}
}

// SubscribeAll registers listener for every event type.
// All-type listeners run after the type-specific ones.
func (d *Dispatcher) SubscribeAll(listener Listener) (unsubscribe func()) {
	d.nextID++
	id := d.nextID
	d.all = append(d.all, subscription{id: id, listener: listener})
	return func() {
		d.all = without(d.all, id)
	}
}

// Dispatch sends e to all subscribers of its type, then to all-type subscribers.
// Listeners may subscribe or unsubscribe while being notified; changes apply to the next dispatch.
func (d *Dispatcher) Dispatch(e Event) {
	for _, s := range d.listeners[e.Type] {
		s.listener.OnEvent(e)
	}
	for _, s := range d.all {
		s.listener.OnEvent(e)
	}
}

// Len returns the number of subscriptions for t, excluding all-type subscriptions
func (d *Dispatcher) Len(t Type) int {
	return len(d.listeners[t])
}

// without returns a fresh slice so an in-flight Dispatch keeps iterating its snapshot
func without(subs []subscription, id uint64) []subscription {
	out := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}
