// Package quote formats quotation markdown returned by the assistant.
//
// Only a small subset is understood: "#", "##" and "###" headings at line
// start, **bold**, *italic* and line breaks. Everything else is plain text.
package quote

import (
	"regexp"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var (
	h3Pattern     = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Pattern     = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Pattern     = regexp.MustCompile(`(?m)^# (.+)$`)
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.+?)\*`)
)

// EscapeHTML escapes &, < and >. Quotes are left alone.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// HTML converts md to an HTML fragment. The input is escaped before any
// markup is produced, so the only tags in the output are the ones added here.
func HTML(md string) string {
	out := EscapeHTML(md)
	out = h3Pattern.ReplaceAllString(out, "<h3>$1</h3>")
	out = h2Pattern.ReplaceAllString(out, "<h2>$1</h2>")
	out = h1Pattern.ReplaceAllString(out, "<h1>$1</h1>")
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	return strings.ReplaceAll(out, "\n", "<br/>")
}
