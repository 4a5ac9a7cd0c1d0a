package events

import (
	"fmt"
	"sync"
)

// InMemoryEventStore keeps one ordered event slice per stream plus a global
// log across streams. Subscriber dispatch is synchronous: the pipeline is a
// batch run, and an observer must see a stage's event before the next stage
// starts.
type InMemoryEventStore struct {
	mu       sync.RWMutex
	streams  map[string][]Event
	log      []Event
	handlers map[string][]EventHandler
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:  make(map[string][]Event),
		handlers: make(map[string][]EventHandler),
	}
}

// AppendEvent stamps the event with the stream's next version, stores it and
// dispatches it to subscribers of its type. A handler error is returned after
// the event is already stored; the append itself is never rolled back.
func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mu.Lock()
	versioned := BaseEvent{
		EventID:      event.ID(),
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], versioned)
	s.log = append(s.log, versioned)
	subscribed := append([]EventHandler(nil), s.handlers[versioned.EventType]...)
	s.mu.Unlock()

	for _, handler := range subscribed {
		if err := handler.Handle(versioned); err != nil {
			return fmt.Errorf("handler failed for %s: %w", versioned.EventType, err)
		}
	}
	return nil
}

// ReadEvents returns a stream's events at or after fromVersion. Versions
// start at 1; fromVersion below that reads the whole stream.
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return []Event{}, nil
	}
	return stream[fromVersion-1:], nil
}

// ReadAllEvents returns events across every stream in append order
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.log) {
		return []Event{}, nil
	}
	return s.log[fromPosition:], nil
}

// Subscribe registers a handler for the given event types. Events appended
// after subscription are delivered; the backlog is not replayed.
func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, eventType := range eventTypes {
		s.handlers[eventType] = append(s.handlers[eventType], handler)
	}
	return nil
}

// Unsubscribe removes the handler from every event type it was registered for
func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for eventType, registered := range s.handlers {
		kept := registered[:0]
		for _, h := range registered {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.handlers[eventType] = kept
	}
	return nil
}
