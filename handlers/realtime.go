// realtime.go - WebSocket endpoint streaming the caller's change events

package handlers

import (
	"net/http"
	"time"

	"healthtrack-backend/middleware"
	"healthtrack-backend/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // the token is the gate, not the origin
}

func (a *API) Realtime(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return // Upgrade already wrote the error response
	}
	client := realtime.NewClient(middleware.CurrentUserID(c), conn)
	a.Hub.Register(client)

	done := make(chan struct{})
	defer close(done)
	go a.Hub.Ping(client, 25*time.Second, done)

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			a.Hub.Unregister(client)
			return
		}
	}
}
