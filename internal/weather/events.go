package weather

type EventType int

const (
	EventThunder EventType = iota
	EventTransitionStarted
	EventWeatherChanged
)

type Event struct {
	Type      EventType
	Kind      Kind    // target kind for transition events
	Intensity float64 // thunder intensity
}

type EventHandler func(Event)

// EventBus delivers events synchronously, in subscription order, on the
// caller's goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	if fn == nil {
		return
	}
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
