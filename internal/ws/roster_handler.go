package ws

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/example/attendance_bot/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins; rely on JWT auth.
		return true
	},
}

// RosterHandler upgrades an authenticated operator to the live roster feed.
// Admins see every group; other roles must narrow to one group via the
// group_id query parameter.
func RosterHandler(hub *RosterHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		uVal, ok := c.Get("user")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		user := uVal.(models.User)

		allowAll := strings.ToLower(user.Role) == "admin"
		allowedGroups := map[uint]struct{}{}
		if raw := c.Query("group_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
				return
			}
			allowedGroups[uint(id)] = struct{}{}
			allowAll = false
		} else if !allowAll {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "group_id is required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := newRosterClient(hub, conn, allowedGroups, allowAll)
		hub.register <- client

		go client.writePump()
		client.readPump()
	}
}
