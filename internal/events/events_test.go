package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeEvent(t *testing.T) {
	raw := MakeEvent("req-1", "attempt_finished", 1, map[string]any{"job_id": "j1"})

	var e Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, "attempt_finished", e.Type)
	assert.Equal(t, 1, e.Version)
	assert.Equal(t, "req-1", e.RequestID)
	assert.False(t, e.At.IsZero())
	assert.JSONEq(t, `{"job_id":"j1"}`, string(e.Data))
}

func TestMakeEventNilData(t *testing.T) {
	raw := MakeEvent("", "ping", 1, nil)

	var e Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, "ping", e.Type)
	assert.Empty(t, e.Data)
}

func TestHubPublishSubscribe(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()

	h.Publish("hello")

	select {
	case got := <-ch:
		assert.Equal(t, "hello", got)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	h.Unsubscribe(ch)
	// Publishing after unsubscribe must not panic.
	h.Publish("after")
}

func TestHubSlowClientDropped(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// Fill the buffer past capacity; extra events are dropped, not blocking.
	for i := 0; i < 50; i++ {
		h.Publish("evt")
	}
	assert.Len(t, ch, 10)
}
