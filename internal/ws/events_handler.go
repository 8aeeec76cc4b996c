package ws

import (
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
    ReadBufferSize:  1024,
    WriteBufferSize: 1024,
    CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeEvents upgrades the request and subscribes the client to the
// path exhibition's event stream. Runs behind the auth middleware.
func ServeEvents(hub *EventHub) gin.HandlerFunc {
    return func(c *gin.Context) {
        exhibitionID := c.Param("exhibitionId")
        if exhibitionID == "" {
            c.JSON(http.StatusNotFound, gin.H{"error": "exhibition not found"})
            return
        }
        conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
        if err != nil {
            logUpgradeError(err)
            return
        }
        client := newEventClient(hub, conn, exhibitionID)
        hub.register <- client
        go client.writePump()
        go client.readPump()
    }
}
