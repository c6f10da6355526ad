// internal/toast/toast_test.go
package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	first := bus.Subscribe()
	second := bus.Subscribe()

	bus.Publish("Creado", SeveritySuccess)

	for _, ch := range []<-chan Notification{first, second} {
		select {
		case n := <-ch:
			assert.Equal(t, "Creado", n.Message)
			assert.Equal(t, SeveritySuccess, n.Severity)
			assert.Equal(t, DefaultDuration, n.Duration)
		case <-time.After(time.Second):
			t.Fatal("notification not delivered")
		}
	}
}

func TestPublishWithDuration(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch := bus.Subscribe()
	bus.PublishWithDuration("hold on", SeverityWarning, 5*time.Second)

	n := <-ch
	assert.Equal(t, 5*time.Second, n.Duration)
	assert.Equal(t, SeverityWarning, n.Severity)
}

func TestSlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	bus.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish("flood", SeverityInfo)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}

func TestCloseReleasesSubscribers(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()

	bus.Close()
	bus.Close() // safe to call twice

	_, open := <-ch
	assert.False(t, open)

	// Publishing after close is a no-op.
	bus.Publish("late", SeverityError)
}

func TestSubscribeAfterClose(t *testing.T) {
	bus := NewBus()
	bus.Close()

	ch := bus.Subscribe()
	_, open := <-ch
	require.False(t, open)
}
