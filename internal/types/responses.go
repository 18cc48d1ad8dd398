package types

// ------------------------------
// Response Types
// ------------------------------

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// ChatMessageResponse is the server-confirmed exchange for one send: the
// persisted user message followed by the assistant reply.
type ChatMessageResponse struct {
	SessionID        string  `json:"sessionId"`
	UserMessage      Message `json:"userMessage"`
	AssistantMessage Message `json:"assistantMessage"`
}
