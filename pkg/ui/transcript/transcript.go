// Package transcript renders the conversation as terminal lines.
//
// Rendering is a pure function of the messages and the Options; nothing
// here mutates conversation state.
package transcript

import (
	"fmt"
	"strings"

	"quotechat/pkg/chat"
	"quotechat/pkg/quote"
	"quotechat/pkg/ui/styles"
	"quotechat/pkg/ui/utils"
)

const (
	// ErrorFallback is shown under every failed reply.
	ErrorFallback = chat.ErrorHint
	// WelcomeText is shown while the transcript is empty.
	WelcomeText = "Ready when you are"

	userLabel      = "You"
	assistantLabel = "Assistant"
	bodyIndent     = "  "
	quoteGutter    = "│ "
	quoteGutterW   = 2
)

// Options control how the transcript is drawn.
type Options struct {
	Width int
	// LoadingFrame is the current animation frame of the loading placeholder.
	LoadingFrame string
	// ExpandThinking shows every thinking step instead of a summary line.
	ExpandThinking bool
}

// Render returns the transcript as display lines no wider than opts.Width.
func Render(messages []chat.Message, opts Options) []string {
	width := opts.Width
	if width < 4 {
		width = 4
	}
	if len(messages) == 0 {
		return renderWelcome(width)
	}

	var lines []string
	for i, msg := range messages {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, renderMessage(msg, width, opts)...)
	}
	return lines
}

// Shortcuts lists the keys shown on the empty transcript.
var Shortcuts = []struct{ Key, Desc string }{
	{"Enter", "Send the message"},
	{"Shift+Enter", "Insert a newline"},
	{"Ctrl+O", "Expand or collapse thinking steps"},
	{"Ctrl+N", "Start a new conversation"},
	{"Ctrl+Y", "Copy the last quote"},
	{"Ctrl+C", "Quit"},
}

func renderWelcome(width int) []string {
	hint := "Type a message and press Enter"
	lines := []string{
		"",
		center(styles.WelcomeTitleStyle.Render(WelcomeText), len(WelcomeText), width),
		center(styles.PlaceholderStyle.Render(hint), len(hint), width),
		"",
	}

	keyWidth := 0
	for _, s := range Shortcuts {
		keyWidth = max(keyWidth, len(s.Key))
	}
	blockWidth := 0
	for _, s := range Shortcuts {
		blockWidth = max(blockWidth, keyWidth+2+len(s.Desc))
	}
	if blockWidth > width {
		return lines
	}
	for _, s := range Shortcuts {
		key := fmt.Sprintf("%-*s  ", keyWidth, s.Key)
		line := styles.WelcomeKeyStyle.Render(key) + styles.TextMutedStyle.Render(s.Desc)
		lines = append(lines, center(line, blockWidth, width))
	}
	return lines
}

func center(styled string, plainWidth, width int) string {
	pad := (width - plainWidth) / 2
	if pad <= 0 {
		return styled
	}
	return strings.Repeat(" ", pad) + styled
}

func renderMessage(msg chat.Message, width int, opts Options) []string {
	bodyWidth := width - len(bodyIndent)

	var lines []string
	if msg.Role == chat.RoleUser {
		lines = append(lines, styles.UserLabelStyle.Render(userLabel))
		for _, line := range wrapContent(msg.Content, bodyWidth) {
			lines = append(lines, bodyIndent+styles.TextStyle.Render(line))
		}
		return lines
	}

	lines = append(lines, styles.AssistantLabelStyle.Render(assistantLabel))

	if msg.HasThinkingSteps() {
		lines = append(lines, renderThinking(msg.ThinkingSteps, bodyWidth, opts.ExpandThinking)...)
	}

	switch {
	case msg.IsLoading():
		frame := opts.LoadingFrame
		if frame == "" {
			frame = "..."
		}
		lines = append(lines, bodyIndent+styles.LoadingStyle.Render(frame))
	case msg.IsError():
		for _, line := range wrapContent(msg.Content, bodyWidth) {
			lines = append(lines, bodyIndent+styles.ErrorStyle.Render(line))
		}
	default:
		for _, line := range wrapContent(msg.Content, bodyWidth) {
			lines = append(lines, bodyIndent+styles.TextStyle.Render(line))
		}
	}

	if msg.QuoteMD != "" {
		gutter := styles.QuoteGutterStyle.Render(quoteGutter)
		for _, line := range quote.Terminal(msg.QuoteMD, bodyWidth-quoteGutterW) {
			lines = append(lines, bodyIndent+gutter+line)
		}
	}

	if msg.CurrentIntent != "" {
		intent := utils.TruncateToWidth("Intent: "+msg.CurrentIntent, bodyWidth)
		lines = append(lines, bodyIndent+styles.IntentStyle.Render(intent))
	}

	if msg.IsError() {
		fallback := utils.TruncateToWidth(ErrorFallback, bodyWidth)
		lines = append(lines, bodyIndent+styles.ErrorStyle.Render(fallback))
	}

	return lines
}

func renderThinking(steps []string, width int, expanded bool) []string {
	if !expanded {
		summary := fmt.Sprintf("▸ Thinking (%d steps, ctrl+o to expand)", len(steps))
		if len(steps) == 1 {
			summary = "▸ Thinking (1 step, ctrl+o to expand)"
		}
		return []string{bodyIndent + styles.ThinkingStyle.Render(utils.TruncateToWidth(summary, width))}
	}

	lines := []string{bodyIndent + styles.ThinkingStyle.Render("▾ Thinking")}
	for _, step := range steps {
		for j, part := range utils.WrapText(step, width-4) {
			prefix := "  • "
			if j > 0 {
				prefix = "    "
			}
			lines = append(lines, bodyIndent+styles.ThinkingStyle.Render(prefix+part))
		}
	}
	return lines
}

// wrapContent keeps the message's own line breaks and wraps each line.
func wrapContent(content string, width int) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = utils.SanitizeContent(content)
	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		lines = append(lines, utils.WrapText(raw, width)...)
	}
	return lines
}
