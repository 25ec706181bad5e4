package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"enumclass/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("checking", []string{"a.ec", "b.ec"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.ec", Status: driver.StatusChecking})
	m.Update(eventMsg{File: "b.ec", Status: driver.StatusDone})
	m.Update(eventMsg{File: "c.ec", Status: driver.StatusCached})

	if len(m.items) != 3 || m.items[2].path != "c.ec" {
		t.Fatalf("items = %+v", m.items)
	}
	if got := m.fraction(); got < 0.86 || got > 0.87 {
		t.Fatalf("fraction = %v", got)
	}
	view := m.View()
	if !strings.Contains(view, "checking (2/3)") || !strings.Contains(view, "cached") {
		t.Fatalf("view:\n%s", view)
	}

	m.Update(doneMsg{})
	if !m.done || !strings.Contains(m.View(), "done: checking") {
		t.Fatalf("view after done:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.ec", 20); got != "short.ec" {
		t.Fatalf("got %q", got)
	}
	got := truncate("very/long/directory/name/file.ec", 12)
	if runewidth.StringWidth(got) > 12 || !strings.HasSuffix(got, "...") {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("got %q", got)
	}
}
