package transport

import (
	"log"

	"github.com/google/uuid"
)

// Console logs messages instead of delivering them. Used when no gateway is
// configured.
type Console struct{}

func NewConsole() *Console {
	return &Console{}
}

func (c *Console) SendPrompt(chatID int64, text string, affordances []Affordance) (string, error) {
	id := uuid.NewString()
	log.Printf("[send] chat=%d %q buttons=%d", chatID, text, len(affordances))
	return id, nil
}

func (c *Console) SendText(chatID int64, text string) error {
	log.Printf("[send] chat=%d %q", chatID, text)
	return nil
}
