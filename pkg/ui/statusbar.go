package ui

import (
	"fmt"
	"strings"

	"quotechat/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

const shortSessionLen = 8

// StatusBarView renders the one-line status bar at the bottom of the screen.
type StatusBarView struct {
	baseURL   string
	sessionID string
	message   string
	busy      bool
	width     int
}

// NewStatusBarView creates a status bar for the given server.
func NewStatusBarView(baseURL string) *StatusBarView {
	return &StatusBarView{
		baseURL: baseURL,
		width:   80,
	}
}

// SetSession updates the conversation id shown.
func (s *StatusBarView) SetSession(id string) {
	s.sessionID = strings.TrimSpace(id)
}

// SetBusy switches between the ready and waiting styles.
func (s *StatusBarView) SetBusy(busy bool) {
	s.busy = busy
}

// SetMessage sets a temporary message shown in place of the server URL.
func (s *StatusBarView) SetMessage(msg string) {
	s.message = msg
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// Render returns the styled status bar string
func (s *StatusBarView) Render() string {
	session := "new"
	if s.sessionID != "" {
		session = s.sessionID
		if len(session) > shortSessionLen {
			session = session[:shortSessionLen]
		}
	}
	state := "ready"
	if s.busy {
		state = "waiting"
	}

	lead := s.baseURL
	if s.message != "" {
		lead = s.message
	}
	content := fmt.Sprintf("[quotechat] %s | session: %s | %s", lead, session, state)

	// Truncate if too long (ANSI-aware width).
	maxWidth := s.width - 2
	if maxWidth < 10 {
		maxWidth = 10
	}
	if ansi.StringWidth(content) > maxWidth {
		content = ansi.Truncate(content, maxWidth, "...")
	}

	style := styles.StatusBarStyle
	if s.busy {
		style = styles.StatusBarBusyStyle
	}
	styled := style.Render(content)

	// Padding(0, 1) adds two cells around the content.
	if w := ansi.StringWidth(content) + 2; w < s.width {
		styled += strings.Repeat(" ", s.width-w)
	}
	return styled
}
