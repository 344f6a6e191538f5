package sse

import (
	"strings"
	"sync"
)

const subscriberBuffer = 10

const (
	TopicStaff    = "staff"
	TopicSettings = "settings"

	attendanceTopicPrefix = "attendance:"
)

// AttendanceTopic is the topic carrying the day document for date ("yyyy-MM-dd").
func AttendanceTopic(date string) string {
	return attendanceTopicPrefix + date
}

// IsValidTopic reports whether topic is one clients may subscribe to.
func IsValidTopic(topic string) bool {
	switch topic {
	case TopicStaff, TopicSettings:
		return true
	}
	return strings.HasPrefix(topic, attendanceTopicPrefix) && len(topic) == len(attendanceTopicPrefix)+len("2006-01-02")
}

// Publisher is the write side of Hub used by services.
type Publisher interface {
	Publish(topic string, event Event)
}

// Event is a full snapshot pushed to every subscriber of a topic.
type Event struct {
	Topic string
	Name  string
	Data  interface{}
}

// Hub fans snapshots out to subscribers grouped by topic.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for topic and returns its channel and a cleanup function.
// The cleanup function is safe to call more than once.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)

	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			// Close may already have released ch
			if _, ok := h.subscribers[topic][ch]; !ok {
				return
			}
			delete(h.subscribers[topic], ch)
			close(ch)
			if len(h.subscribers[topic]) == 0 {
				delete(h.subscribers, topic)
			}
		})
	}

	return ch, cleanup
}

// Publish sends event to all subscribers of topic. Subscribers with a full
// buffer miss the event; the next snapshot supersedes it.
func (h *Hub) Publish(topic string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Topic = topic
	for ch := range h.subscribers[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers for topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

// TotalSubscribers returns the number of active subscribers across all topics
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}

// Close ends every subscription so open streams return.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic, subs := range h.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(h.subscribers, topic)
	}
}
