package chat

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Status marks an assistant message that is not a settled reply.
type Status string

const (
	StatusNone    Status = ""
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

// Message is one entry of the conversation transcript.
type Message struct {
	Role          Role
	Content       string
	Status        Status
	QuoteMD       string
	CurrentIntent string
	ThinkingSteps []string
}

// IsLoading reports whether the message is the in-flight placeholder.
func (m Message) IsLoading() bool {
	return m.Status == StatusLoading
}

// IsError reports whether the message replaced a failed request.
func (m Message) IsError() bool {
	return m.Status == StatusError
}

// Transient is true for loading and error messages.
func (m Message) Transient() bool {
	return m.Status != StatusNone
}

// HasThinkingSteps reports whether thinking steps should be shown.
func (m Message) HasThinkingSteps() bool {
	return m.Role == RoleAssistant && len(m.ThinkingSteps) > 0 && !m.Transient()
}

func (m Message) clone() Message {
	if m.ThinkingSteps != nil {
		steps := make([]string, len(m.ThinkingSteps))
		copy(steps, m.ThinkingSteps)
		m.ThinkingSteps = steps
	}
	return m
}
