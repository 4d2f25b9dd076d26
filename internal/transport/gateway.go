package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Gateway sends messages through an external bot-gateway HTTP API.
type Gateway struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewGateway(baseURL, token string) *Gateway {
	return &Gateway{
		BaseURL: baseURL,
		Token:   token,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type outboundMessage struct {
	MessageID string       `json:"message_id"`
	ChatID    int64        `json:"chat_id"`
	Text      string       `json:"text"`
	Buttons   []Affordance `json:"buttons,omitempty"`
}

func (g *Gateway) SendPrompt(chatID int64, text string, affordances []Affordance) (string, error) {
	msg := outboundMessage{
		MessageID: uuid.NewString(),
		ChatID:    chatID,
		Text:      text,
		Buttons:   affordances,
	}
	if err := g.post(msg); err != nil {
		return "", err
	}
	return msg.MessageID, nil
}

func (g *Gateway) SendText(chatID int64, text string) error {
	return g.post(outboundMessage{
		MessageID: uuid.NewString(),
		ChatID:    chatID,
		Text:      text,
	})
}

func (g *Gateway) post(msg outboundMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, g.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.Token)
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway send to chat %d failed: %s", msg.ChatID, resp.Status)
	}
	return nil
}
