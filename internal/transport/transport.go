package transport

// Affordance is one interactive button on a prompt. Action is an opaque tag
// round-tripped verbatim when the recipient activates the button.
type Affordance struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Transport delivers messages to chat recipients. One delivery attempt per
// call; retries are the caller's concern (and are not required).
type Transport interface {
	// SendPrompt sends text with interactive affordances and returns a
	// message handle.
	SendPrompt(chatID int64, text string, affordances []Affordance) (string, error)
	// SendText sends a plain informational message.
	SendText(chatID int64, text string) error
}
