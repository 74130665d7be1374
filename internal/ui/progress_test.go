package ui

import (
	"strings"
	"testing"

	"zeron/internal/driver"
)

func TestProgressAppliesEvents(t *testing.T) {
	files := []string{"a.zr", "b.zr"}
	m := NewProgressModel("check", files, nil).(*progressModel)

	tests := []struct {
		ev     driver.Event
		file   int
		status string
	}{
		{driver.Event{File: "a.zr", Stage: driver.StageParse, Status: driver.StatusWorking}, 0, "parsing"},
		{driver.Event{File: "a.zr", Stage: driver.StageResolve, Status: driver.StatusWorking}, 0, "resolving"},
		{driver.Event{File: "a.zr", Stage: driver.StageResolve, Status: driver.StatusDone}, 0, "done"},
		{driver.Event{File: "b.zr", Stage: driver.StageResolve, Status: driver.StatusCached}, 1, "cached"},
		{driver.Event{File: "c.zr", Stage: driver.StageResolve, Status: driver.StatusError}, 1, "cached"},
	}
	for _, tt := range tests {
		m.Update(eventMsg(tt.ev))
		if got := m.items[tt.file].status; got != tt.status {
			t.Fatalf("after %+v status = %q, want %q", tt.ev, got, tt.status)
		}
	}
	if p := m.percent(); p != 1.0 {
		t.Fatalf("percent = %v", p)
	}

	m.Update(doneMsg{})
	view := m.View()
	if !strings.Contains(view, "done: check") || !strings.Contains(view, "a.zr") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.zr", 20, "short.zr"},
		{"a/very/long/path/file.zr", 10, "a/very/..."},
		{"日本語.zr", 3, "日"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
