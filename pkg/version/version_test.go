package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()

	for _, want := range []string{"quotechat version", "commit:", "built:", "go:", "platform:"} {
		if !strings.Contains(info, want) {
			t.Errorf("Info should contain %q, got: %s", want, info)
		}
	}
}

func TestSummary(t *testing.T) {
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() {
		Version, Commit = origVersion, origCommit
	})

	Version, Commit = "1.2.0", "none"
	if got := Summary(); got != "1.2.0" {
		t.Errorf("Summary() = %q, want %q", got, "1.2.0")
	}

	Version, Commit = "", "0123456789abcdef"
	if got := Summary(); got != "dev (0123456)" {
		t.Errorf("Summary() = %q, want %q", got, "dev (0123456)")
	}
}
