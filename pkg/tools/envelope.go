package tools

// Envelope is the uniform response for every tool call. Exactly one is
// produced per call; Tool always echoes the requested name, even when the
// name was unknown.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Tool    string      `json:"tool,omitempty"`
	Hint    string      `json:"hint,omitempty"`
}

// Text renders the envelope as the protocol's textual payload.
func (e Envelope) Text() string {
	return renderJSON(e)
}
