package ws

import (
    "net/http"
    "strconv"

    "github.com/gin-gonic/gin"
    "github.com/gorilla/websocket"

    "github.com/zaqqye/peergrade_backend_v1/internal/middleware"
)

var upgrader = websocket.Upgrader{
    CheckOrigin: func(r *http.Request) bool {
        // Allow all origins; rely on bearer auth.
        return true
    },
}

// GroupHandler upgrades an authorized client to a websocket subscribed to
// one assignment's group-table events.
func GroupHandler(hub *GroupHub) gin.HandlerFunc {
    return func(c *gin.Context) {
        if hub == nil {
            c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "realtime not available"})
            return
        }
        if _, ok := middleware.CurrentIdentity(c); !ok {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
            return
        }
        assignmentID, err := strconv.ParseUint(c.Param("assignmentId"), 10, 32)
        if err != nil {
            c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
            return
        }

        conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
        if err != nil {
            return
        }
        client := newGroupClient(hub, conn, uint(assignmentID))
        hub.register <- client

        go client.writePump()
        client.readPump()
    }
}
