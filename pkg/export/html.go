// Package export writes a conversation transcript as a standalone HTML page.
package export

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quotechat/pkg/chat"
	"quotechat/pkg/quote"
)

// DefaultTitle is used when no title is given.
const DefaultTitle = "quotechat transcript"

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; line-height: 1.5; }
.msg { margin: 1rem 0; padding: .75rem 1rem; border-radius: .5rem; }
.user { background: #e8f0fe; }
.assistant { background: #f4f4f5; }
.error { background: #fdecea; color: #b3261e; }
.quote { border-left: 3px solid #2e7d32; padding-left: .75rem; margin-top: .5rem; }
.meta { color: #666; font-size: .875rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Entries -}}
<div class="msg {{.Class}}">
<div class="meta">{{.Label}}</div>
<p>{{.Content}}</p>
{{if .Steps -}}
<details><summary>Thinking steps ({{len .Steps}})</summary><ul>{{range .Steps}}<li>{{.}}</li>{{end}}</ul></details>
{{end -}}
{{if .Quote -}}
<div class="quote">{{.Quote}}</div>
{{end -}}
{{if .Intent -}}
<div class="meta">Intent: {{.Intent}}</div>
{{end -}}
{{if .Failed -}}
<div class="meta">{{.Hint}}</div>
{{end -}}
</div>
{{end -}}
<p class="meta">{{len .Entries}} messages</p>
</body>
</html>
`

var page = template.Must(template.New("transcript").Parse(pageTemplate))

type pageData struct {
	Title   string
	Entries []entry
}

type entry struct {
	Class   string
	Label   string
	Content template.HTML
	Steps   []string
	Quote   template.HTML
	Intent  string
	Failed  bool
	Hint    string
}

// WriteHTML renders messages to w. Loading placeholders are skipped.
func WriteHTML(w io.Writer, title string, messages []chat.Message) error {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	data := pageData{Title: title}
	for _, msg := range messages {
		if msg.IsLoading() {
			continue
		}
		data.Entries = append(data.Entries, newEntry(msg))
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("render transcript: %w", err)
	}
	return nil
}

// WriteFile writes the page to path, creating parent directories.
func WriteFile(path, title string, messages []chat.Message) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := WriteHTML(f, title, messages); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newEntry(msg chat.Message) entry {
	e := entry{
		Class:   "user",
		Label:   "You",
		Content: textHTML(msg.Content),
	}
	if msg.Role == chat.RoleUser {
		return e
	}

	e.Class = "assistant"
	e.Label = "Assistant"
	if msg.IsError() {
		e.Class = "assistant error"
		e.Failed = true
		e.Hint = chat.ErrorHint
	}
	if msg.HasThinkingSteps() {
		e.Steps = msg.ThinkingSteps
	}
	if msg.QuoteMD != "" {
		// quote.HTML escapes its input before adding markup.
		e.Quote = template.HTML(quote.HTML(msg.QuoteMD))
	}
	e.Intent = msg.CurrentIntent
	return e
}

// textHTML escapes plain text and keeps its line breaks.
func textHTML(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(quote.EscapeHTML(s), "\n", "<br/>"))
}
