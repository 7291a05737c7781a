// Package notify is a small publish/subscribe bus for transient user
// notifications ("toasts"). Any component may publish; the UI subscribes
// and shows them one at a time.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is used when neither the notification nor the bus sets one.
const DefaultDuration = 3 * time.Second

// Level is the severity of a notification.
type Level int

const (
	Success Level = iota
	Error
)

func (l Level) String() string {
	if l == Error {
		return "error"
	}
	return "success"
}

// Notification is one message to show.
type Notification struct {
	// ID is assigned on publish. A dismiss timer carries the ID of the
	// notification it was started for.
	ID       uuid.UUID
	Level    Level
	Message  string
	Duration time.Duration
	// Sticky notifications stay until dismissed by the user.
	Sticky bool
}

// Bus fans notifications out to subscribers.
type Bus struct {
	mu       sync.Mutex
	subs     map[int]chan Notification
	nextID   int
	duration time.Duration
}

// NewBus returns a bus that applies d to notifications without a duration.
func NewBus(d time.Duration) *Bus {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Bus{subs: map[int]chan Notification{}, duration: d}
}

// Subscribe registers a receiver with the given buffer size. The returned
// cancel func unregisters it and closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Notification, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Notification, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers n to every subscriber without blocking. A subscriber
// whose buffer is full misses the notification. The published value, with
// its ID and duration filled in, is returned.
func (b *Bus) Publish(n Notification) Notification {
	n.ID = uuid.New()
	if n.Duration <= 0 {
		n.Duration = b.duration
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- n:
		default:
		}
	}
	return n
}

// Success publishes a success notification.
func (b *Bus) Success(msg string) Notification {
	return b.Publish(Notification{Level: Success, Message: msg})
}

// Error publishes an error notification.
func (b *Bus) Error(msg string) Notification {
	return b.Publish(Notification{Level: Error, Message: msg})
}
