package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRoomDelivery(t *testing.T) {
	h := NewHub()
	inRoom := h.register(4)
	outOfRoom := h.register(4)
	h.join(inRoom, "class:9")

	h.EmitToRoom("class:9", "schedule-update", map[string]interface{}{"test_id": "t1"})

	require.Len(t, inRoom.send, 1)
	assert.Empty(t, outOfRoom.send)

	var f frame
	require.NoError(t, json.Unmarshal(<-inRoom.send, &f))
	assert.Equal(t, "schedule-update", f.Event)

	data, ok := f.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "t1", data["test_id"])
	assert.NotEmpty(t, data["timestamp"], "encode stamps every payload")
}

func TestHubBroadcastReachesEveryone(t *testing.T) {
	h := NewHub()
	a := h.register(4)
	b := h.register(4)
	h.join(a, "class:9")

	h.Broadcast("attendance-updated", nil)

	assert.Len(t, a.send, 1)
	assert.Len(t, b.send, 1)
}

func TestHubSkipsSlowClients(t *testing.T) {
	h := NewHub()
	slow := h.register(1)
	h.join(slow, "class:9")

	h.EmitToRoom("class:9", "e1", nil)
	h.EmitToRoom("class:9", "e2", nil) // buffer full, dropped

	assert.Len(t, slow.send, 1)
}

func TestHubUnregister(t *testing.T) {
	h := NewHub()
	cl := h.register(4)
	h.join(cl, "class:9")
	assert.Equal(t, 1, h.ClientCount())
	assert.Equal(t, 1, h.RoomCount("class:9"))

	h.unregister(cl)
	assert.Equal(t, 0, h.ClientCount())
	assert.Equal(t, 0, h.RoomCount("class:9"))
}
