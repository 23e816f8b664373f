package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestStatusBarView_Render(t *testing.T) {
	sb := NewStatusBarView("http://localhost:8001")
	sb.SetWidth(80)

	out := ansi.Strip(sb.Render())
	if !strings.Contains(out, "[quotechat] http://localhost:8001 | session: new | ready") {
		t.Errorf("Unexpected status bar: %q", out)
	}
	if w := ansi.StringWidth(sb.Render()); w != 80 {
		t.Errorf("Expected width 80, got %d", w)
	}
}

func TestStatusBarView_SessionAndBusy(t *testing.T) {
	sb := NewStatusBarView("http://localhost:8001")
	sb.SetWidth(80)
	sb.SetSession("5f2c9a7e-1111-4000-8000-000000000000")
	sb.SetBusy(true)

	out := ansi.Strip(sb.Render())
	if !strings.Contains(out, "session: 5f2c9a7e | waiting") {
		t.Errorf("Expected short session and waiting state, got %q", out)
	}
}

func TestStatusBarView_MessageReplacesURL(t *testing.T) {
	sb := NewStatusBarView("http://localhost:8001")
	sb.SetWidth(80)
	sb.SetMessage("quote copied")

	out := ansi.Strip(sb.Render())
	if !strings.Contains(out, "[quotechat] quote copied |") {
		t.Errorf("Expected message, got %q", out)
	}
	if strings.Contains(out, "localhost") {
		t.Errorf("URL should be hidden while a message shows: %q", out)
	}
}

func TestStatusBarView_Truncates(t *testing.T) {
	sb := NewStatusBarView("https://quotes.example.com/a/very/long/path/to/the/assistant")
	sb.SetWidth(30)

	out := sb.Render()
	if w := ansi.StringWidth(out); w > 30 {
		t.Errorf("Expected width <= 30, got %d", w)
	}
	if !strings.Contains(ansi.Strip(out), "...") {
		t.Errorf("Expected ellipsis, got %q", ansi.Strip(out))
	}
}
