package quote

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func plainLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimRight(ansi.Strip(line), " ")
	}
	return out
}

const sampleQuote = `# Window Quote

## Total
**¥3,456.00**

## Breakdown
| Item | Qty | Unit price | Amount |
|------|-----|------------|--------|
| 70 series casement 1.5m x 1.2m | 2 | 960.00 | 1,920.00 |
| Installation | 1 | 1536.00 | 1,536.00 |

*Series: 70*`

func TestTerminal_Quote(t *testing.T) {
	lines := plainLines(Terminal(sampleQuote, 60))
	joined := strings.Join(lines, "\n")

	if lines[0] != "Window Quote" {
		t.Errorf("Expected heading without markers, got %q", lines[0])
	}
	if strings.Contains(joined, "**") || strings.Contains(joined, "## ") {
		t.Errorf("Markdown markers leaked into output:\n%s", joined)
	}
	if !strings.Contains(joined, "¥3,456.00") {
		t.Errorf("Expected total in output:\n%s", joined)
	}
	if !strings.Contains(joined, "Series: 70") {
		t.Errorf("Expected italic text in output:\n%s", joined)
	}

	var tableLines []string
	for _, line := range lines {
		if strings.HasPrefix(line, "|") {
			tableLines = append(tableLines, line)
		}
	}
	// header + separator + 2 rows
	if len(tableLines) != 4 {
		t.Fatalf("Expected 4 table lines, got %d:\n%s", len(tableLines), joined)
	}
	if !strings.Contains(tableLines[1], "---") {
		t.Errorf("Expected separator row, got %q", tableLines[1])
	}
	width := ansi.StringWidth(tableLines[0])
	for _, line := range tableLines {
		if ansi.StringWidth(line) != width {
			t.Errorf("Table rows not aligned: %q", line)
		}
	}
}

func TestTerminal_WrapsToWidth(t *testing.T) {
	md := "**Note:** the quoted price covers *frames, glass and hardware* but excludes delivery to upper floors"
	for _, width := range []int{10, 20, 33} {
		for _, line := range Terminal(md, width) {
			if w := ansi.StringWidth(line); w > width {
				t.Errorf("width %d: line %q is %d wide", width, ansi.Strip(line), w)
			}
		}
	}
}

func TestTerminal_NarrowTableFallsBack(t *testing.T) {
	md := "| a | b | c |\n|---|---|---|\n| 1 | 2 | 3 |"
	for _, line := range Terminal(md, 8) {
		if w := ansi.StringWidth(line); w > 8 {
			t.Errorf("line %q exceeds width", ansi.Strip(line))
		}
	}
}

func TestTerminal_Empty(t *testing.T) {
	lines := Terminal("", 40)
	if len(lines) != 1 || lines[0] != "" {
		t.Errorf("Expected single empty line, got %q", lines)
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("plain **bold *both* bold** *it*")
	want := []token{
		{text: "plain"},
		{text: "bold", bold: true},
		{text: "both", bold: true, italic: true},
		{text: "bold", bold: true},
		{text: "it", italic: true},
	}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}
