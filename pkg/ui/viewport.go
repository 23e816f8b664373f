package ui

import (
	"strings"

	"quotechat/pkg/ui/utils"
)

const pageStep = 10

// TranscriptViewport is a scrolling window over the rendered transcript.
// It follows the bottom until the user scrolls up.
type TranscriptViewport struct {
	lines   []string
	height  int
	scrollY int
	follow  bool
}

// NewTranscriptViewport creates a viewport that follows new output.
func NewTranscriptViewport() *TranscriptViewport {
	return &TranscriptViewport{height: 1, follow: true}
}

// SetLines replaces the content and keeps the scroll position valid.
func (v *TranscriptViewport) SetLines(lines []string) {
	v.lines = lines
	v.clamp()
}

// SetHeight updates the number of visible rows.
func (v *TranscriptViewport) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	v.height = height
	v.clamp()
}

// Height returns the number of visible rows.
func (v *TranscriptViewport) Height() int {
	return v.height
}

// Following reports whether the viewport is pinned to the bottom.
func (v *TranscriptViewport) Following() bool {
	return v.follow
}

// ScrollY returns the index of the first visible line.
func (v *TranscriptViewport) ScrollY() int {
	return v.scrollY
}

func (v *TranscriptViewport) maxScroll() int {
	m := len(v.lines) - v.height
	if m < 0 {
		return 0
	}
	return m
}

func (v *TranscriptViewport) clamp() {
	maxScroll := v.maxScroll()
	if v.follow || v.scrollY > maxScroll {
		v.scrollY = maxScroll
	}
	if v.scrollY < 0 {
		v.scrollY = 0
	}
}

// HandleKey scrolls for up/down/pgup/pgdown/home/end and reports whether
// the key was consumed.
func (v *TranscriptViewport) HandleKey(key string) bool {
	maxScroll := v.maxScroll()

	switch key {
	case "up":
		if v.scrollY > 0 {
			v.scrollY--
			v.follow = false
		}
	case "down":
		if v.scrollY < maxScroll {
			v.scrollY++
		}
		v.follow = v.scrollY >= maxScroll
	case "pgup":
		v.scrollY -= pageStep
		if v.scrollY < 0 {
			v.scrollY = 0
		}
		v.follow = false
	case "pgdown":
		v.scrollY += pageStep
		if v.scrollY > maxScroll {
			v.scrollY = maxScroll
		}
		v.follow = v.scrollY >= maxScroll
	case "home":
		v.scrollY = 0
		v.follow = maxScroll == 0
	case "end":
		v.scrollY = maxScroll
		v.follow = true
	default:
		return false
	}
	return true
}

// GotoBottom pins the viewport to the newest line.
func (v *TranscriptViewport) GotoBottom() {
	v.follow = true
	v.clamp()
}

// View renders exactly Height rows, each padded to width.
func (v *TranscriptViewport) View(width int) string {
	rows := make([]string, 0, v.height)
	end := v.scrollY + v.height
	if end > len(v.lines) {
		end = len(v.lines)
	}
	for i := v.scrollY; i < end; i++ {
		rows = append(rows, utils.PadStyled(v.lines[i], width))
	}
	for len(rows) < v.height {
		rows = append(rows, strings.Repeat(" ", width))
	}
	return strings.Join(rows, "\n")
}
