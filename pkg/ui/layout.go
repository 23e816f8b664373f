package ui

import (
	"charm.land/lipgloss/v2"
)

const (
	headerHeight    = 1
	statusBarHeight = 1
	footerHeight    = 1
	// inputChrome is the border drawn around the input box.
	inputChrome = 2
	minWidth    = 20
)

// LayoutManager splits the terminal into header, transcript, input, footer
// and status bar rows.
type LayoutManager struct {
	width  int
	height int
}

// NewLayoutManager creates a new layout manager
func NewLayoutManager() *LayoutManager {
	return &LayoutManager{
		width:  80,
		height: 24,
	}
}

// SetSize updates the layout dimensions
func (lm *LayoutManager) SetSize(width, height int) {
	lm.width = width
	lm.height = height
}

// Width returns the usable width, never below minWidth.
func (lm *LayoutManager) Width() int {
	if lm.width < minWidth {
		return minWidth
	}
	return lm.width
}

// TranscriptWidth is the width available inside the transcript border.
func (lm *LayoutManager) TranscriptWidth() int {
	return lm.Width() - 2
}

// InputWidth is the width available inside the input border.
func (lm *LayoutManager) InputWidth() int {
	return lm.Width() - 2
}

// TranscriptHeight returns the rows left for the transcript once the other
// sections are placed. The transcript border takes two rows.
func (lm *LayoutManager) TranscriptHeight(inputHeight int) int {
	h := lm.height - headerHeight - statusBarHeight - footerHeight - inputHeight - inputChrome - 2
	if h < 1 {
		return 1
	}
	return h
}

// RenderLayout stacks the sections top to bottom.
func (lm *LayoutManager) RenderLayout(header, transcript, input, footer, statusBar string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		transcript,
		input,
		footer,
		statusBar,
	)
}

// GetDimensions returns current width and height
func (lm *LayoutManager) GetDimensions() (width, height int) {
	return lm.width, lm.height
}
