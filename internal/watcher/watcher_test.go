package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/pallendes/eslint-plugin-react/internal/logging"
)

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		eventType EventType
		want      string
	}{
		{EventCreate, "create"},
		{EventModify, "modify"},
		{EventDelete, "delete"},
		{EventRename, "rename"},
		{EventType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.eventType.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBatchDebouncerDedupe(t *testing.T) {
	batches := make(chan []Event, 1)
	b := NewBatchDebouncer(20*time.Millisecond, func(events []Event) {
		batches <- events
	})

	b.Add(Event{Type: EventCreate, Path: "src/b.jsx"})
	b.Add(Event{Type: EventModify, Path: "src/a.jsx"})
	b.Add(Event{Type: EventModify, Path: "src/b.jsx"})

	select {
	case events := <-batches:
		if len(events) != 2 {
			t.Fatalf("batch size = %d, want 2 after dedupe", len(events))
		}
		if events[0].Path != "src/a.jsx" || events[1].Path != "src/b.jsx" {
			t.Errorf("batch not ordered by path: %v", events)
		}
		if events[1].Type != EventModify {
			t.Errorf("dedupe should keep the last event per path, got %s", events[1].Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("batch was never emitted")
	}
}

func TestBatchDebouncerFlush(t *testing.T) {
	batches := make(chan []Event, 1)
	b := NewBatchDebouncer(time.Hour, func(events []Event) {
		batches <- events
	})

	b.Add(Event{Type: EventModify, Path: "src/a.jsx"})

	if b.EventCount() != 1 {
		t.Errorf("pending events = %d, want 1", b.EventCount())
	}

	b.Flush()

	select {
	case events := <-batches:
		if len(events) != 1 {
			t.Errorf("batch size = %d, want 1", len(events))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Flush did not emit pending events")
	}

	if b.EventCount() != 0 {
		t.Errorf("pending events after Flush = %d, want 0", b.EventCount())
	}
}

func TestBatchDebouncerCancel(t *testing.T) {
	emitted := make(chan []Event, 1)
	b := NewBatchDebouncer(20*time.Millisecond, func(events []Event) {
		emitted <- events
	})

	b.Add(Event{Type: EventModify, Path: "src/a.jsx"})
	b.Cancel()

	select {
	case <-emitted:
		t.Fatal("cancelled batch should not be emitted")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	w, err := New(root, DefaultConfig(), logging.Nop(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	stats := w.Stats()
	if dirs, ok := stats["watchedDirs"].(int); !ok || dirs < 2 {
		t.Errorf("watchedDirs = %v, want at least root and src", stats["watchedDirs"])
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestWatcherDetectsChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	for _, dir := range []string{"src", filepath.Join("node_modules", "react")} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
	}

	batches := make(chan []Event, 4)
	w, err := New(root, Config{DebounceMs: 50}, logging.Nop(), func(events []Event) {
		batches <- events
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = w.Stop() }()

	// One lintable change plus two that must be filtered out.
	writeFile(t, filepath.Join(root, "src", "app.jsx"), "const x = 1")
	writeFile(t, filepath.Join(root, "notes.txt"), "not a source file")
	writeFile(t, filepath.Join(root, "node_modules", "react", "index.js"), "ignored")

	select {
	case events := <-batches:
		if len(events) != 1 {
			t.Fatalf("batch = %v, want only src/app.jsx", events)
		}
		e := events[0]
		if e.Path != "src/app.jsx" {
			t.Errorf("path = %q, want src/app.jsx", e.Path)
		}
		if e.Type != EventCreate && e.Type != EventModify {
			t.Errorf("type = %s, want create or modify", e.Type)
		}
		if e.Timestamp.IsZero() {
			t.Error("event timestamp should be set")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no batch emitted for src/app.jsx")
	}
}

func TestWatcherWatchesNewDirectories(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()

	batches := make(chan []Event, 4)
	w, err := New(root, Config{DebounceMs: 50}, logging.Nop(), func(events []Event) {
		batches <- events
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = w.Stop() }()

	// A directory created after Start must be picked up before files land in it.
	newDir := filepath.Join(root, "components")
	if err := os.Mkdir(newDir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	time.Sleep(250 * time.Millisecond)
	writeFile(t, filepath.Join(newDir, "button.tsx"), "const b = 1")

	select {
	case events := <-batches:
		if len(events) != 1 || events[0].Path != "components/button.tsx" {
			t.Errorf("batch = %v, want components/button.tsx", events)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no batch emitted for file in new directory")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}
