package inbox

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler subscribes an admin to new contact messages. It must sit behind
// the admin auth middleware.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteJSON(Event{Type: "welcome", At: time.Now().UTC()}); err != nil {
			_ = ws.Close()
			return
		}
		hub.Add(ws)
		hub.logger.Info("Inbox subscriber connected", zap.String("client_ip", c.ClientIP()))

		// incoming messages are ignored; reading only detects the close
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Remove(ws)
		hub.logger.Info("Inbox subscriber disconnected", zap.String("client_ip", c.ClientIP()))
	}
}
