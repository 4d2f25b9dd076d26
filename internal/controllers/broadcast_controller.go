package controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/attendance_bot/internal/attendance"
	"github.com/example/attendance_bot/internal/transport"
)

// BroadcastController sends an announcement to every member of a group
// through the messaging transport.
type BroadcastController struct {
	Dir       attendance.Directory
	Transport transport.Transport
}

type broadcastRequest struct {
	GroupID uint   `json:"group_id" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

func (b *BroadcastController) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	members, err := b.Dir.ListMembers(req.GroupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	text := fmt.Sprintf("📢 Announcement:\n\n%s", req.Text)
	sent, failed := 0, 0
	for _, m := range members {
		if err := b.Transport.SendText(m.ChatID, text); err != nil {
			log.Printf("broadcast: send to chat %d failed: %v", m.ChatID, err)
			failed++
			continue
		}
		sent++
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent, "failed": failed})
}
