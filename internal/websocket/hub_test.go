package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubscriber records queued messages. A positive capacity makes Send
// fail with ErrSlowClient once that many messages are queued.
type fakeSubscriber struct {
	id       string
	channel  int32
	capacity int

	mu       sync.Mutex
	messages [][]byte
	closed   bool
}

func newFakeSubscriber(id string, channel int32) *fakeSubscriber {
	return &fakeSubscriber{id: id, channel: channel}
}

func (f *fakeSubscriber) ID() string     { return f.id }
func (f *fakeSubscriber) Channel() int32 { return f.channel }

func (f *fakeSubscriber) Send(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClientClosed
	}
	if f.capacity > 0 && len(f.messages) >= f.capacity {
		return ErrSlowClient
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeSubscriber) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSubscriber) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeSubscriber) received() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.messages))
	copy(out, f.messages)
	return out
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	a := newFakeSubscriber("a", 15)
	b := newFakeSubscriber("b", 15)
	admin := newFakeSubscriber("admin", AdminChannel)
	hub.Register(a)
	hub.Register(b)
	hub.Register(admin)

	assert.Equal(t, 2, hub.ClientCount(15))
	assert.Equal(t, 1, hub.ClientCount(AdminChannel))
	assert.Equal(t, 3, hub.TotalClientCount())

	assert.True(t, hub.Unregister(a))
	assert.False(t, hub.Unregister(a), "second unregister is a no-op")
	assert.Equal(t, 1, hub.ClientCount(15))

	hub.Unregister(b)
	hub.Unregister(admin)
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_Broadcast_UnitIsolation(t *testing.T) {
	hub := NewHub()

	resident := newFakeSubscriber("resident", 15)
	flatmate := newFakeSubscriber("flatmate", 15)
	neighbour := newFakeSubscriber("neighbour", 16)
	hub.Register(resident)
	hub.Register(flatmate)
	hub.Register(neighbour)

	hub.Broadcast(15, LedgerEntryCreated(map[string]interface{}{"id": float64(42)}))

	assert.Len(t, resident.received(), 1)
	assert.Len(t, flatmate.received(), 1)
	assert.Empty(t, neighbour.received())
}

func TestHub_Broadcast_KeepsPublishOrder(t *testing.T) {
	hub := NewHub()
	admin := newFakeSubscriber("admin", AdminChannel)
	hub.Register(admin)

	for i := 1; i <= 20; i++ {
		hub.Broadcast(AdminChannel, LedgerEntryCreated(map[string]interface{}{"balance": fmt.Sprintf("%d.00", i*10)}))
	}

	msgs := admin.received()
	require.Len(t, msgs, 20)
	for i, raw := range msgs {
		var evt struct {
			Payload map[string]string `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &evt))
		assert.Equal(t, fmt.Sprintf("%d.00", (i+1)*10), evt.Payload["balance"])
	}
}

func TestHub_Broadcast_DropsSlowSubscriber(t *testing.T) {
	hub := NewHub()

	slow := newFakeSubscriber("slow", AdminChannel)
	slow.capacity = 1
	fast := newFakeSubscriber("fast", AdminChannel)
	hub.Register(slow)
	hub.Register(fast)

	hub.Broadcast(AdminChannel, SettlementCompleted(map[string]interface{}{"failed": float64(0)}))
	hub.Broadcast(AdminChannel, SettlementCompleted(map[string]interface{}{"failed": float64(1)}))

	assert.True(t, slow.isClosed())
	assert.Len(t, slow.received(), 1)
	assert.Len(t, fast.received(), 2)
	assert.Equal(t, 1, hub.ClientCount(AdminChannel))
}

func TestHub_Broadcast_DropsClosedSubscriber(t *testing.T) {
	hub := NewHub()
	gone := newFakeSubscriber("gone", 15)
	hub.Register(gone)
	_ = gone.Close()

	hub.Broadcast(15, ReadingCreated(map[string]interface{}{"id": float64(1)}))

	assert.Equal(t, 0, hub.ClientCount(15))
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()

	const n = 50
	subs := make([]*fakeSubscriber, n)
	for i := range subs {
		subs[i] = newFakeSubscriber(fmt.Sprintf("sub-%d", i), int32(i%5))
	}

	var wg sync.WaitGroup
	for _, s := range subs {
		wg.Add(1)
		go func(s *fakeSubscriber) {
			defer wg.Done()
			hub.Register(s)
		}(s)
	}
	wg.Wait()
	assert.Equal(t, n, hub.TotalClientCount())

	for i, s := range subs {
		wg.Add(2)
		go func(channel int32) {
			defer wg.Done()
			hub.Broadcast(channel, LedgerEntryCreated(nil))
		}(int32(i % 5))
		go func(s *fakeSubscriber) {
			defer wg.Done()
			hub.Unregister(s)
		}(s)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_Close(t *testing.T) {
	hub := NewHub()
	resident := newFakeSubscriber("resident", 15)
	admin := newFakeSubscriber("admin", AdminChannel)
	hub.Register(resident)
	hub.Register(admin)

	hub.Close()
	hub.Close()

	assert.True(t, resident.isClosed())
	assert.True(t, admin.isClosed())
	assert.Equal(t, 0, hub.TotalClientCount())

	late := newFakeSubscriber("late", 15)
	hub.Register(late)
	assert.True(t, late.isClosed())
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_BroadcastToEmptyChannel(t *testing.T) {
	hub := NewHub()
	require.NotPanics(t, func() {
		hub.Broadcast(999, LedgerEntryCreated(nil))
	})
}
