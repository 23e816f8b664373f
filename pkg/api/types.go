package api

// ChatRequest is the body of POST {base}/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the successful reply payload of POST {base}/chat.
type ChatResponse struct {
	Reply         string   `json:"reply"`
	QuoteMD       string   `json:"quote_md,omitempty"`
	CurrentIntent string   `json:"current_intent,omitempty"`
	SessionID     string   `json:"session_id"`
	ThinkingSteps []string `json:"thinking_steps,omitempty"`
}

// ErrorResponse is the body carried by non-2xx responses.
type ErrorResponse struct {
	Detail string `json:"detail,omitempty"`
}
