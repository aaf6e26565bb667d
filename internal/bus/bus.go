package bus

import (
	"log/slog"
	"sync"

	"fabline/internal/logging"
)

// recentCapacity bounds the informational event buffer. The buffer has no
// relation to delivery: it exists so status surfaces can show what recently
// moved.
const recentCapacity = 10

// Listener receives published stage-change events.
type Listener func(StageChangeEvent)

// Sink receives every published event after in-process listeners have run.
// It bridges the bus to the host environment's ambient broadcast surface and
// is attached explicitly so tests can run without one.
type Sink interface {
	Emit(StageChangeEvent)
}

// Bus is the in-process publish/subscribe channel for stage-change events.
// Construct one per process and inject it; lifecycle belongs to the daemon.
type Bus struct {
	logger *slog.Logger

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
	sinks     []Sink
	recent    []StageChangeEvent
}

// New constructs a bus. A nil logger falls back to a no-op logger.
func New(logger *slog.Logger) *Bus {
	return &Bus{
		logger:    logging.NewComponentLogger(logger, "bus"),
		listeners: make(map[int]Listener),
	}
}

// AddSink attaches a secondary broadcast sink.
func (b *Bus) AddSink(sink Sink) {
	if b == nil || sink == nil {
		return
	}
	b.mu.Lock()
	b.sinks = append(b.sinks, sink)
	b.mu.Unlock()
}

// Subscribe registers a listener and returns a handle that removes exactly
// that registration. Multiple subscriptions by the same logical observer are
// independent.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// SubscribeItem narrows a subscription to a single (order, item) pair. The
// narrowing happens on the consumer side by comparing event fields; the bus
// does not partition subscriptions.
func (b *Bus) SubscribeItem(orderID, itemID string, fn Listener) (unsubscribe func()) {
	return b.Subscribe(func(ev StageChangeEvent) {
		if ev.OrderID == orderID && ev.ItemID == itemID {
			fn(ev)
		}
	})
}

// Publish delivers the event to every listener registered at publish time,
// then forwards it to the attached sinks. Listener failures are isolated: a
// panicking listener is logged and the remaining listeners still fire.
// Listeners registered during a publish (by a listener side effect) are not
// observed by that same publish pass.
func (b *Bus) Publish(ev StageChangeEvent) {
	if b == nil {
		return
	}
	b.mu.Lock()
	recipients := make([]Listener, 0, len(b.listeners))
	for _, fn := range b.listeners {
		recipients = append(recipients, fn)
	}
	sinks := append([]Sink(nil), b.sinks...)
	if len(b.recent) == recentCapacity {
		copy(b.recent, b.recent[1:])
		b.recent = b.recent[:recentCapacity-1]
	}
	b.recent = append(b.recent, ev)
	b.mu.Unlock()

	for _, fn := range recipients {
		b.invoke(fn, ev)
	}
	for _, sink := range sinks {
		b.emit(sink, ev)
	}
}

// Recent returns up to the 10 most recently published events, oldest first.
// Informational only.
func (b *Bus) Recent() []StageChangeEvent {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]StageChangeEvent, len(b.recent))
	copy(out, b.recent)
	return out
}

func (b *Bus) invoke(fn Listener, ev StageChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("listener panicked during publish",
				logging.Any("panic", r),
				logging.String(logging.FieldOrderID, ev.OrderID),
				logging.String(logging.FieldItemID, ev.ItemID),
			)
		}
	}()
	fn(ev)
}

func (b *Bus) emit(sink Sink, ev StageChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("broadcast sink panicked",
				logging.Any("panic", r),
				logging.String(logging.FieldOrderID, ev.OrderID),
			)
		}
	}()
	sink.Emit(ev)
}
