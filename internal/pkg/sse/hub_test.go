package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub()

	a, cleanupA := hub.Subscribe(TopicAttendance)
	defer cleanupA()
	b, cleanupB := hub.Subscribe(TopicAttendance)
	defer cleanupB()
	other, cleanupOther := hub.Subscribe("other")
	defer cleanupOther()

	assert.Equal(t, 2, hub.SubscriberCount(TopicAttendance))

	hub.Publish(TopicAttendance, Event{Event: "attendance.checked_in", Data: "emp-1"})

	for _, ch := range []chan Event{a, b} {
		select {
		case ev := <-ch:
			assert.Equal(t, TopicAttendance, ev.Topic)
			assert.Equal(t, "attendance.checked_in", ev.Event)
			assert.Equal(t, "emp-1", ev.Data)
		default:
			t.Fatal("expected an event")
		}
	}

	select {
	case ev := <-other:
		t.Fatalf("unexpected event on other topic: %+v", ev)
	default:
	}
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe(TopicAttendance)
	defer cleanup()

	for i := 0; i < 25; i++ {
		hub.Publish(TopicAttendance, Event{Event: "tick", Data: i})
	}

	assert.Len(t, ch, cap(ch))
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe(TopicAttendance)

	cleanup()
	cleanup()

	_, open := <-ch
	require.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount(TopicAttendance))

	// publishing with no subscribers is a no-op
	hub.Publish(TopicAttendance, Event{Event: "tick"})
}
