package ui

import "testing"

func TestLayoutManager_Heights(t *testing.T) {
	lm := NewLayoutManager()
	lm.SetSize(80, 24)

	if got := lm.TranscriptHeight(3); got != 14 {
		t.Errorf("Expected transcript height 14, got %d", got)
	}
	if got := lm.TranscriptWidth(); got != 78 {
		t.Errorf("Expected transcript width 78, got %d", got)
	}

	lm.SetSize(10, 5)
	if got := lm.TranscriptHeight(3); got != 1 {
		t.Errorf("Expected minimum height 1, got %d", got)
	}
	if got := lm.Width(); got != minWidth {
		t.Errorf("Expected minimum width %d, got %d", minWidth, got)
	}
	if w, h := lm.GetDimensions(); w != 10 || h != 5 {
		t.Errorf("Expected raw dimensions 10x5, got %dx%d", w, h)
	}
}
