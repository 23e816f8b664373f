package input

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

const (
	// DefaultPlaceholder is shown in the empty input.
	DefaultPlaceholder = "Ask anything about windows and prices"
	inputHeight        = 3
)

// SubmitMsg is emitted when the user presses Enter on non-blank input.
type SubmitMsg struct {
	Text string
}

// ChatInput is the message box under the transcript.
type ChatInput struct {
	textarea textarea.Model
	disabled bool
}

// New creates a focused chat input.
func New() *ChatInput {
	ta := textarea.New()
	ta.Placeholder = DefaultPlaceholder
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline.SetKeys("shift+enter", "ctrl+j")
	ta.Focus()
	return &ChatInput{textarea: ta}
}

// Height is the number of rows the input occupies.
func (c *ChatInput) Height() int {
	return inputHeight
}

// SetWidth resizes the textarea.
func (c *ChatInput) SetWidth(width int) {
	if width < 1 {
		width = 1
	}
	c.textarea.SetWidth(width)
}

// SetDisabled blocks submission and typing while a request is pending.
func (c *ChatInput) SetDisabled(disabled bool) {
	if c.disabled == disabled {
		return
	}
	c.disabled = disabled
	if disabled {
		c.textarea.Blur()
		return
	}
	c.textarea.Focus()
}

// Disabled reports whether the input is disabled.
func (c *ChatInput) Disabled() bool {
	return c.disabled
}

// Value returns the current text.
func (c *ChatInput) Value() string {
	return c.textarea.Value()
}

// SetValue replaces the current text.
func (c *ChatInput) SetValue(text string) {
	c.textarea.SetValue(text)
}

// InsertString inserts pasted text at the cursor.
func (c *ChatInput) InsertString(text string) {
	if c.disabled {
		return
	}
	c.textarea.InsertString(text)
}

// Update handles a key press. Enter submits; everything else edits the text.
func (c *ChatInput) Update(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "enter" {
		text, ok := c.Submit()
		if !ok {
			return nil
		}
		return func() tea.Msg {
			return SubmitMsg{Text: text}
		}
	}
	if c.disabled {
		return nil
	}
	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return cmd
}

// Submit returns the trimmed text and clears the input. It refuses blank
// text and does nothing while disabled.
func (c *ChatInput) Submit() (string, bool) {
	if c.disabled {
		return "", false
	}
	text := strings.TrimSpace(c.textarea.Value())
	if text == "" {
		return "", false
	}
	c.textarea.Reset()
	return text, true
}

// View renders the textarea.
func (c *ChatInput) View() string {
	return c.textarea.View()
}
