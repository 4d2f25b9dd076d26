package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/attendance_bot/internal/attendance"
)

// WebhookController receives inbound updates from the messaging gateway:
// activated affordances and free-text messages.
type WebhookController struct {
	Router *attendance.Router
	Token  string
}

type inboundUpdate struct {
	ChatID       int64  `json:"chat_id" binding:"required"`
	CallbackData string `json:"callback_data"`
	Text         string `json:"text"`
}

func (w *WebhookController) HandleUpdate(c *gin.Context) {
	if w.Token != "" && c.GetHeader("X-Webhook-Token") != w.Token {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook token"})
		return
	}

	var upd inboundUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Always ack; failures are reported to the sender on their own chat and
	// must not make the gateway re-deliver.
	switch {
	case upd.CallbackData != "":
		_ = w.Router.HandleCallback(upd.ChatID, upd.CallbackData)
	case upd.Text != "":
		_ = w.Router.HandleText(upd.ChatID, upd.Text)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
