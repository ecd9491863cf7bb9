package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	a := &Client{ID: "a", Events: make(chan Event, 1)}
	b := &Client{ID: "b", Events: make(chan Event, 1)}
	hub.Register(a)
	hub.Register(b)
	assert.Equal(t, 2, hub.Count())

	hub.Publish(EventFactors, map[string]int{"count": 2})
	for _, c := range []*Client{a, b} {
		ev := <-c.Events
		assert.Equal(t, EventFactors, ev.EventType)
		assert.JSONEq(t, `{"count":2}`, ev.Data)
	}
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil)
	c := &Client{ID: "slow", Events: make(chan Event, 1)}
	hub.Register(c)

	hub.Broadcast(Event{EventType: "one"})
	hub.Broadcast(Event{EventType: "two"})

	ev := <-c.Events
	assert.Equal(t, "one", ev.EventType)
	assert.Len(t, c.Events, 0)
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := NewHub(nil)
	c := &Client{ID: "x", Events: make(chan Event, 1)}
	hub.Register(c)
	hub.Unregister("x")
	hub.Unregister("x")

	_, ok := <-c.Events
	require.False(t, ok)
	assert.Equal(t, 0, hub.Count())
}
