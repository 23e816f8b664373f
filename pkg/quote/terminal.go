package quote

import (
	"regexp"
	"strings"

	"quotechat/pkg/ui/styles"
	"quotechat/pkg/ui/utils"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

var headingPattern = regexp.MustCompile(`^(#{1,3}) (.+)$`)

type token struct {
	text   string
	bold   bool
	italic bool
}

// Terminal renders md as styled lines no wider than width cells. It follows
// the same rules as HTML; pipe tables are laid out as aligned columns.
func Terminal(md string, width int) []string {
	normalized := strings.ReplaceAll(md, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = utils.SanitizeContent(normalized)
	rawLines := strings.Split(normalized, "\n")

	var rendered []string
	for i := 0; i < len(rawLines); i++ {
		line := strings.ReplaceAll(rawLines[i], "\t", "    ")

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			rendered = append(rendered, renderHeading(m[2], len(m[1]), width)...)
			continue
		}

		if isTableRow(line) {
			block := []string{}
			for i < len(rawLines) && isTableRow(rawLines[i]) {
				block = append(block, rawLines[i])
				i++
			}
			i--

			rows := make([][]string, 0, len(block))
			for _, rowLine := range block {
				if cells := splitTableRow(rowLine); len(cells) > 0 {
					rows = append(rows, cells)
				}
			}
			header := false
			if len(rows) > 1 && isSeparatorRow(rows[1]) {
				header = true
				rows = append(rows[:1], rows[2:]...)
			}
			rendered = append(rendered, renderTable(rows, header, width)...)
			continue
		}

		rendered = append(rendered, renderLine(line, width)...)
	}

	if len(rendered) == 0 {
		return []string{""}
	}
	return rendered
}

func renderHeading(text string, level, width int) []string {
	style := styles.TitleStyle
	if level == 3 {
		style = styles.TextBoldStyle
	}
	var lines []string
	for _, part := range utils.WrapText(text, width) {
		lines = append(lines, style.Render(part))
	}
	return lines
}

func renderLine(line string, width int) []string {
	if strings.TrimSpace(line) == "" {
		return []string{""}
	}
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return []string{""}
	}
	return wrapTokens(tokens, width)
}

// tokenize splits a line into words carrying bold/italic flags. Bold spans
// are found first and italic spans inside them, mirroring HTML.
func tokenize(line string) []token {
	var tokens []token
	for _, seg := range splitSpans(line, boldPattern) {
		for _, inner := range splitSpans(seg.text, italicPattern) {
			for _, word := range strings.Fields(inner.text) {
				tokens = append(tokens, token{text: word, bold: seg.matched, italic: inner.matched})
			}
		}
	}
	return tokens
}

type span struct {
	text    string
	matched bool
}

func splitSpans(text string, pattern *regexp.Regexp) []span {
	var spans []span
	last := 0
	for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, span{text: text[last:loc[0]]})
		}
		spans = append(spans, span{text: text[loc[2]:loc[3]], matched: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, span{text: text[last:]})
	}
	return spans
}

func wrapTokens(tokens []token, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	var lines []string
	var lineTokens []token
	lineWidth := 0

	flush := func() {
		lines = append(lines, renderTokenLine(lineTokens))
		lineTokens = nil
		lineWidth = 0
	}

	for _, tok := range tokens {
		for _, part := range utils.SplitByWidth(tok.text, width) {
			partWidth := runewidth.StringWidth(part)
			if lineWidth > 0 && lineWidth+1+partWidth > width {
				flush()
			}
			if lineWidth > 0 {
				lineWidth++
			}
			lineTokens = append(lineTokens, token{text: part, bold: tok.bold, italic: tok.italic})
			lineWidth += partWidth
		}
	}

	if len(lineTokens) > 0 {
		flush()
	}
	return lines
}

func renderTokenLine(tokens []token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteString(styles.TextStyle.Render(" "))
		}
		sb.WriteString(tokenStyle(tok).Render(tok.text))
	}
	return sb.String()
}

func tokenStyle(tok token) lipgloss.Style {
	switch {
	case tok.bold && tok.italic:
		return styles.TextBoldItalicStyle
	case tok.bold:
		return styles.TextBoldStyle
	case tok.italic:
		return styles.TextItalicStyle
	default:
		return styles.TextStyle
	}
}
