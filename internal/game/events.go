package game

import "sync"

// EventKind identifies a notification raised by a session.
type EventKind int

const (
	// EventKeyCorrect: last typed character matched the target. No payload.
	EventKeyCorrect EventKind = iota
	// EventKeyError: last typed character did not match. No payload.
	EventKeyError
	// EventWordComplete: buffer equalled the target word. Payload: Word.
	EventWordComplete
	// EventComboMilestone: combo hit a positive multiple of the milestone step. Payload: Combo.
	EventComboMilestone
	// EventOverdriveStart: combo meter filled while not in overdrive.
	EventOverdriveStart
	// EventOverdriveEnd: overdrive timer expired and the meter soft-landed.
	EventOverdriveEnd
	// EventGameOver: session moved to GameOver. Payload: NewBest.
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventKeyCorrect:
		return "key-correct"
	case EventKeyError:
		return "key-error"
	case EventWordComplete:
		return "word-complete"
	case EventComboMilestone:
		return "combo-milestone"
	case EventOverdriveStart:
		return "overdrive-start"
	case EventOverdriveEnd:
		return "overdrive-end"
	case EventGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification.
type Event struct {
	Kind      EventKind
	SessionID string
	Word      string
	Combo     int
	NewBest   bool
}

// Bus fans events out to any number of listeners.
// Publish never blocks: a listener whose buffer is full misses the event.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener with the given buffer size.
// The returned cancel func unregisters it and closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
}

// Publish delivers ev to every listener that has room for it.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close closes every listener channel. Later subscriptions get a closed channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
