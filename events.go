package suspension

const (
	WHEEL_TOUCHDOWN EventType = iota
	WHEEL_CONTACT
	WHEEL_LIFTOFF
)

type EventType uint8

func (t EventType) String() string {
	switch t {
	case WHEEL_TOUCHDOWN:
		return "touchdown"
	case WHEEL_CONTACT:
		return "contact"
	case WHEEL_LIFTOFF:
		return "liftoff"
	default:
		return "unknown"
	}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// TouchdownEvent is emitted on the first frame a wheel is held by the floor
type TouchdownEvent struct {
	Wheel int // axle index
	Time  float64
}

func (e TouchdownEvent) Type() EventType { return WHEEL_TOUCHDOWN }

// ContactEvent is emitted every frame a wheel stays on the floor
type ContactEvent struct {
	Wheel int
	Time  float64
}

func (e ContactEvent) Type() EventType { return WHEEL_CONTACT }

// LiftoffEvent is emitted on the first frame a wheel leaves the floor
type LiftoffEvent struct {
	Wheel int
	Time  float64
}

func (e LiftoffEvent) Type() EventType { return WHEEL_LIFTOFF }

// EventListener - callback for events
type EventListener func(event Event)

// Events tracks floor contacts during the substeps of a frame and emits
// Touchdown/Contact/Liftoff transitions once the frame is done.
type Events struct {
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contact tracking per axle, a wheel counts as touching if any substep clamped it
	previousContacts []bool
	currentContacts  []bool
}

func NewEvents(wheels int) Events {
	return Events{
		listeners:        make(map[EventType][]EventListener),
		buffer:           make([]Event, 0, 3*wheels),
		previousContacts: make([]bool, wheels),
		currentContacts:  make([]bool, wheels),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContact is called every substep with the floor state of wheel i
func (e *Events) recordContact(i int, contact bool) {
	if i < len(e.currentContacts) && contact {
		e.currentContacts[i] = true
	}
}

// processContactEvents compares current and previous frames, should be called after all substeps
func (e *Events) processContactEvents(time float64) {
	for i, contact := range e.currentContacts {
		previous := e.previousContacts[i]

		switch {
		case contact && previous:
			e.buffer = append(e.buffer, ContactEvent{Wheel: i, Time: time})
		case contact:
			e.buffer = append(e.buffer, TouchdownEvent{Wheel: i, Time: time})
		case previous:
			e.buffer = append(e.buffer, LiftoffEvent{Wheel: i, Time: time})
		}
	}

	// Swap for next frame and clear current
	e.previousContacts, e.currentContacts = e.currentContacts, e.previousContacts
	clear(e.currentContacts)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush(time float64) {
	e.processContactEvents(time)

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}

// Touching reports whether wheel i was on the floor during the last flushed frame
func (e *Events) Touching(i int) bool {
	return i < len(e.previousContacts) && e.previousContacts[i]
}
