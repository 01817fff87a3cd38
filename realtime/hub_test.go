package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesOnlyOwner(t *testing.T) {
	hub := NewHub(nil)
	upgrader := websocket.Upgrader{}
	registered := make(chan struct{}, 2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient(r.URL.Query().Get("user"), conn)
		hub.Register(c)
		registered <- struct{}{}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Unregister(c)
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	alice, _, err := websocket.DefaultDialer.Dial(wsURL+"?user=alice", nil)
	require.NoError(t, err)
	defer alice.Close()
	bob, _, err := websocket.DefaultDialer.Dial(wsURL+"?user=bob", nil)
	require.NoError(t, err)
	defer bob.Close()
	<-registered
	<-registered

	assert.Equal(t, 1, hub.Connections("alice"))
	hub.Publish("alice", "measurement.created", map[string]int{"id": 7})

	_ = alice.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := alice.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "measurement.created", ev.Type)

	_ = bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = bob.ReadMessage()
	assert.Error(t, err) // nothing for bob
}

func TestPublishNilHub(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.Publish("alice", "x", nil) })
}
