// internal/toast/toast.go
package toast

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

const DefaultDuration = 3 * time.Second

// Notification is a transient user-facing message. Duration is how long a
// subscriber should keep it visible before auto-dismissal.
type Notification struct {
	Message  string
	Severity Severity
	Duration time.Duration
}

// Bus fans published notifications out to every subscriber. Publishing is
// fire-and-forget: a subscriber that stops draining its channel loses
// messages instead of blocking publishers.
type Bus struct {
	mu       sync.Mutex
	subs     []chan Notification
	duration time.Duration
	closed   bool
}

func NewBus() *Bus {
	return &Bus{
		duration: DefaultDuration,
	}
}

// NewBusWithDuration overrides the default auto-dismiss duration.
func NewBusWithDuration(d time.Duration) *Bus {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Bus{
		duration: d,
	}
}

func (b *Bus) Publish(message string, severity Severity) {
	b.PublishWithDuration(message, severity, b.duration)
}

func (b *Bus) PublishWithDuration(message string, severity Severity, d time.Duration) {
	if d <= 0 {
		d = b.duration
	}

	n := Notification{
		Message:  message,
		Severity: severity,
		Duration: d,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for _, sub := range b.subs {
		select {
		case sub <- n:
		default:
			logrus.WithFields(logrus.Fields{
				"severity": severity,
				"message":  message,
			}).Warn("Dropping notification for slow subscriber")
		}
	}
}

// Subscribe registers a new listener. The returned channel is closed when
// the bus is closed.
func (b *Bus) Subscribe() <-chan Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Notification, 16)
	if b.closed {
		close(ch)
		return ch
	}

	b.subs = append(b.subs, ch)
	return ch
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}
