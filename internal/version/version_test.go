package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origV, origC, origD, origNoColor := Version, GitCommit, BuildDate, color.NoColor
	Version, GitCommit, BuildDate = v, commit, date
	color.NoColor = true
	t.Cleanup(func() {
		Version, GitCommit, BuildDate, color.NoColor = origV, origC, origD, origNoColor
	})
}

func TestColoredWithoutColor(t *testing.T) {
	withVersion(t, "1.2.3-rc1", "", "")
	if got := Colored(); got != "1.2.3-rc1" {
		t.Fatalf("Colored() = %q", got)
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	withVersion(t, "1.2.3", "", "")
	color.NoColor = false
	if got := Colored(); !strings.Contains(got, "\x1b[") || !strings.Contains(got, "3") {
		t.Fatalf("Colored() = %q", got)
	}
}

func TestBanner(t *testing.T) {
	withVersion(t, "0.9.0", "abc123", "2026-01-15")
	b := Banner()
	for _, want := range []string{"enumclass 0.9.0", "commit:  abc123", "built:   2026-01-15", "go:"} {
		if !strings.Contains(b, want) {
			t.Fatalf("banner missing %q:\n%s", want, b)
		}
	}
	withVersion(t, "0.9.0", "", "")
	if strings.Contains(Banner(), "commit") {
		t.Fatal("empty commit should be omitted")
	}
}
