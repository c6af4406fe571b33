// file: internal/realtime/events_test.go
// version: 2.0.0
// guid: a0b1c2d3-e4f5-6a7b-8c9d-0e1f2a3b4c5d

package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Subscribe(t *testing.T) {
	client := NewClient("c1")
	client.Subscribe("s1")
	assert.True(t, client.IsSubscribed("s1"))
	client.Unsubscribe("s1")
	assert.False(t, client.IsSubscribed("s1"))
}

func TestBroadcast_SessionFilter(t *testing.T) {
	hub := NewEventHub(nil)
	all := NewClient("all")
	only := NewClient("only")
	only.Subscribe("s1")
	hub.RegisterClient(all)
	hub.RegisterClient(only)

	hub.Publish(EventSessionState, "s1", map[string]any{"n": 1})
	hub.Publish(EventSessionState, "s2", map[string]any{"n": 2})
	hub.Publish(EventCatalogReloaded, "", nil)

	assert.Len(t, all.Channel, 3)
	require.Len(t, only.Channel, 2)
	assert.Equal(t, "s1", (<-only.Channel).ID)
	assert.Equal(t, EventCatalogReloaded, (<-only.Channel).Type)
}

func TestBroadcast_DropsWhenFull(t *testing.T) {
	hub := NewEventHub(nil)
	client := NewClient("slow")
	hub.RegisterClient(client)

	for i := 0; i < cap(client.Channel)+10; i++ {
		hub.Publish(EventSessionState, "s", i)
	}
	assert.Len(t, client.Channel, cap(client.Channel))
}

func TestPublish_NilHub(t *testing.T) {
	var hub *EventHub
	assert.NotPanics(t, func() { hub.Publish(EventSessionState, "s", nil) })
}

func TestUnregisterClient(t *testing.T) {
	hub := NewEventHub(nil)
	hub.RegisterClient(NewClient("c"))
	assert.Equal(t, 1, hub.GetClientCount())
	hub.UnregisterClient("c")
	hub.UnregisterClient("c")
	assert.Equal(t, 0, hub.GetClientCount())
}

func TestHandleSSE_StreamsEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewEventHub(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/events?session=s1", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	done := make(chan struct{})
	go func() {
		hub.HandleSSE(c)
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.GetClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.Publish(EventSessionState, "s2", "other")
	hub.Publish(EventSessionState, "s1", "mine")
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		for _, cl := range hub.clients {
			return len(cl.Channel) == 0
		}
		return false
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	body := w.Body.String()
	assert.Contains(t, body, "connection.established")
	assert.Contains(t, body, `"data":"mine"`)
	assert.NotContains(t, body, "other")
	assert.True(t, strings.HasPrefix(body, "data: "))
	assert.Equal(t, 0, hub.GetClientCount())
}

func TestInitializeEventHub(t *testing.T) {
	GlobalHub = nil
	t.Cleanup(func() { GlobalHub = nil })

	first := InitializeEventHub(nil)
	assert.Same(t, first, InitializeEventHub(nil))
}
