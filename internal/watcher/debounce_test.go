package watcher

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// mockWatcher is a simple mock for testing DebouncedWatcher.
type mockWatcher struct {
	mu       sync.Mutex
	events   chan Event
	errors   chan error
	watching map[string]bool
	closed   bool
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{
		events:   make(chan Event, 100),
		errors:   make(chan error, 100),
		watching: make(map[string]bool),
	}
}

func (m *mockWatcher) Watch(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching[path] {
		return ErrAlreadyWatching
	}
	m.watching[path] = true
	return nil
}

func (m *mockWatcher) Unwatch(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.watching[path] {
		return ErrNotWatching
	}
	delete(m.watching, path)
	return nil
}

func (m *mockWatcher) Events() <-chan Event {
	return m.events
}

func (m *mockWatcher) Errors() <-chan error {
	return m.errors
}

func (m *mockWatcher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
		close(m.errors)
	}
	return nil
}

func (m *mockWatcher) WatchedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.watching))
	for p := range m.watching {
		paths = append(paths, p)
	}
	return paths
}

func TestNewDebouncedWatcher_DefaultDelay(t *testing.T) {
	dw := NewDebouncedWatcher(newMockWatcher(), 0)
	defer dw.Close()

	if dw.delay != DefaultDebounce {
		t.Errorf("delay = %v, want %v", dw.delay, DefaultDebounce)
	}
}

func TestDebouncedWatcher_PassThrough(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 50*time.Millisecond)
	defer dw.Close()

	if err := dw.Watch("/keys.json"); err != nil {
		t.Fatalf("Watch error = %v", err)
	}
	if err := dw.Watch("/keys.json"); !errors.Is(err, ErrAlreadyWatching) {
		t.Errorf("Watch again error = %v, want ErrAlreadyWatching", err)
	}

	paths := dw.WatchedPaths()
	if len(paths) != 1 || paths[0] != "/keys.json" {
		t.Errorf("WatchedPaths = %v, want [/keys.json]", paths)
	}

	if err := dw.Unwatch("/keys.json"); err != nil {
		t.Errorf("Unwatch error = %v", err)
	}
}

func TestDebouncedWatcher_SingleEvent(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 30*time.Millisecond)
	defer dw.Close()

	mock.events <- Event{Path: "/actions.json", Op: OpWrite, Timestamp: time.Now()}

	select {
	case got := <-dw.Events():
		if got.Path != "/actions.json" || got.Op != OpWrite {
			t.Errorf("got %+v, want write of /actions.json", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncedWatcher_BurstCoalesced(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 80*time.Millisecond)
	defer dw.Close()

	path := "/keys.toml"
	mock.events <- Event{Path: path, Op: OpRename}
	time.Sleep(10 * time.Millisecond)
	mock.events <- Event{Path: path, Op: OpCreate}
	time.Sleep(10 * time.Millisecond)
	mock.events <- Event{Path: path, Op: OpWrite}

	select {
	case got := <-dw.Events():
		want := OpRename | OpCreate | OpWrite
		if got.Op != want {
			t.Errorf("Op = %v, want %v", got.Op, want)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for coalesced event")
	}

	select {
	case extra := <-dw.Events():
		t.Errorf("unexpected second event %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncedWatcher_SeparatePaths(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 30*time.Millisecond)
	defer dw.Close()

	mock.events <- Event{Path: "/a.json", Op: OpWrite}
	mock.events <- Event{Path: "/b.json", Op: OpWrite}

	seen := make(map[string]bool)
	for len(seen) < 2 {
		select {
		case got := <-dw.Events():
			seen[got.Path] = true
		case <-time.After(time.Second):
			t.Fatalf("timeout, saw %v", seen)
		}
	}
}

func TestDebouncedWatcher_Flush(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, time.Hour)
	defer dw.Close()

	mock.events <- Event{Path: "/a.json", Op: OpWrite}

	deadline := time.Now().Add(time.Second)
	for dw.PendingCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("event never became pending")
		}
		time.Sleep(5 * time.Millisecond)
	}

	dw.Flush()

	select {
	case got := <-dw.Events():
		if got.Path != "/a.json" {
			t.Errorf("Path = %q, want /a.json", got.Path)
		}
	case <-time.After(time.Second):
		t.Fatal("Flush did not deliver the pending event")
	}
	if n := dw.PendingCount(); n != 0 {
		t.Errorf("PendingCount = %d after Flush, want 0", n)
	}
}

func TestDebouncedWatcher_ForwardsErrors(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 30*time.Millisecond)
	defer dw.Close()

	boom := errors.New("boom")
	mock.errors <- boom

	select {
	case err := <-dw.Errors():
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want boom", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for error")
	}
}

func TestDebouncedWatcher_Close(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, time.Hour)

	mock.events <- Event{Path: "/a.json", Op: OpWrite}

	if err := dw.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
	if err := dw.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}

	if _, ok := <-dw.Events(); ok {
		t.Error("events channel should be closed")
	}
	if !mock.closed {
		t.Error("inner watcher should be closed")
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{0, "NONE"},
		{OpWrite, "WRITE"},
		{OpCreate | OpWrite, "CREATE|WRITE"},
		{OpRemove | OpRename | OpChmod, "REMOVE|RENAME|CHMOD"},
		{Op(1 << 10), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
