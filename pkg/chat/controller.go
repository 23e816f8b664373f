package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"quotechat/pkg/api"
)

const (
	// DefaultErrorMessage is shown when a failure carries no usable text.
	DefaultErrorMessage = "Network error, please try again later"
	// ErrorHint accompanies every failed reply.
	ErrorHint = "Check your network or try again later"
)

// Controller owns the transcript and session id of one conversation and
// runs at most one chat request at a time.
//
// The UI drives it in two steps: Begin inserts the user message and the
// loading placeholder and returns the request to send; Resolve or Reject
// settles the placeholder once the request finishes. Send does both for
// callers that can block.
type Controller struct {
	client    api.Chatter
	messages  []Message
	sessionID string
	busy      bool
}

// NewController creates a controller that sends requests through client.
func NewController(client api.Chatter) *Controller {
	return &Controller{client: client}
}

// Begin starts a turn. It returns false and leaves the transcript untouched
// when text is blank or a request is already pending.
func (c *Controller) Begin(text string) (api.ChatRequest, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return api.ChatRequest{}, false
	}
	if c.busy {
		slog.Debug("chat_send_ignored_busy")
		return api.ChatRequest{}, false
	}

	c.busy = true
	c.messages = append(c.messages,
		Message{Role: RoleUser, Content: text},
		Message{Role: RoleAssistant, Status: StatusLoading},
	)

	slog.Info("chat_send_start",
		"session_id", c.sessionID,
		"message_len", len(text),
		"transcript_len", len(c.messages),
	)
	return api.ChatRequest{Message: text, SessionID: c.sessionID}, true
}

// Resolve replaces the loading placeholder with the reply and remembers the
// returned session id.
func (c *Controller) Resolve(resp api.ChatResponse) {
	if !c.busy {
		slog.Warn("chat_resolve_without_request")
		return
	}
	c.busy = false

	if resp.SessionID != "" {
		c.sessionID = resp.SessionID
	}

	c.replacePlaceholder(Message{
		Role:          RoleAssistant,
		Content:       resp.Reply,
		QuoteMD:       resp.QuoteMD,
		CurrentIntent: resp.CurrentIntent,
		ThinkingSteps: resp.ThinkingSteps,
	})

	slog.Info("chat_send_done",
		"session_id", c.sessionID,
		"intent", resp.CurrentIntent,
		"has_quote", resp.QuoteMD != "",
	)
}

// Reject turns the loading placeholder into an error message. The session
// id is left as it was.
func (c *Controller) Reject(err error) {
	if !c.busy {
		slog.Warn("chat_reject_without_request", "error", err)
		return
	}
	c.busy = false

	c.replacePlaceholder(Message{
		Role:    RoleAssistant,
		Content: ErrorMessage(err),
		Status:  StatusError,
	})

	slog.Error("chat_send_error", "error", err, "session_id", c.sessionID)
}

// Send runs a whole turn synchronously. It returns false when the turn was
// not started (blank text or a pending request).
func (c *Controller) Send(ctx context.Context, text string) bool {
	req, ok := c.Begin(text)
	if !ok {
		return false
	}
	resp, err := c.client.Chat(ctx, req)
	if err != nil {
		c.Reject(err)
		return true
	}
	c.Resolve(resp)
	return true
}

// Reset starts a new conversation. It is refused while a request is pending.
func (c *Controller) Reset() bool {
	if c.busy {
		return false
	}
	c.messages = nil
	c.sessionID = ""
	slog.Info("chat_reset")
	return true
}

// Busy reports whether a request is outstanding.
func (c *Controller) Busy() bool {
	return c.busy
}

// SessionID returns the server-issued session id, or "" before the first
// successful exchange.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Messages returns a copy of the transcript.
func (c *Controller) Messages() []Message {
	out := make([]Message, len(c.messages))
	for i, msg := range c.messages {
		out[i] = msg.clone()
	}
	return out
}

// Len returns the number of messages in the transcript.
func (c *Controller) Len() int {
	return len(c.messages)
}

// LastQuote returns the most recent quote markdown, if any.
func (c *Controller) LastQuote() (string, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if q := c.messages[i].QuoteMD; q != "" {
			return q, true
		}
	}
	return "", false
}

func (c *Controller) replacePlaceholder(msg Message) {
	last := len(c.messages) - 1
	if last < 0 {
		return
	}
	if c.messages[last].Role != RoleAssistant || !c.messages[last].IsLoading() {
		return
	}
	c.messages[last] = msg
}

// ErrorMessage converts a request failure into text for the transcript.
func ErrorMessage(err error) string {
	if err == nil {
		return DefaultErrorMessage
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out, please try again later"
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}
