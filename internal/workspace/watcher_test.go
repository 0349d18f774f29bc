package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/onecode/onecode/internal/pubsub"
)

func newTestWatcher(t *testing.T) (*Watcher, <-chan pubsub.Event[FileEvent]) {
	t.Helper()
	broker := pubsub.NewBroker[FileEvent]()
	t.Cleanup(broker.Close)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := broker.Subscribe(ctx)

	w, err := NewWatcher(broker, 50*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, events
}

func expectEvent(t *testing.T, events <-chan pubsub.Event[FileEvent]) pubsub.Event[FileEvent] {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("expected file event")
		return pubsub.Event[FileEvent]{}
	}
}

func expectQuiet(t *testing.T, events <-chan pubsub.Event[FileEvent]) {
	t.Helper()
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %v for %s", ev.Type, ev.Payload.Path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CoalescesBurstOfWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main"), 0o644))

	w, events := newTestWatcher(t)
	require.NoError(t, w.Add(path))

	for i := range 10 {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("package main // %d", i)), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	ev := expectEvent(t, events)
	require.Equal(t, pubsub.ChangedEvent, ev.Type)
	require.Equal(t, path, ev.Payload.Path)
	expectQuiet(t, events)
}

func TestWatcher_AtomicSaveIsAChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w, events := newTestWatcher(t)
	require.NoError(t, w.Add(path))

	require.NoError(t, Write(context.Background(), path, "b"))

	ev := expectEvent(t, events)
	require.Equal(t, pubsub.ChangedEvent, ev.Type)
	require.Equal(t, path, ev.Payload.Path)
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	w, events := newTestWatcher(t)
	require.NoError(t, w.Add(path))

	require.NoError(t, os.Remove(path))

	ev := expectEvent(t, events)
	require.Equal(t, pubsub.RemovedEvent, ev.Type)
}

func TestWatcher_IgnoresOtherFilesAndRemovedPaths(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "a.txt")
	other := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o644))

	w, events := newTestWatcher(t)
	require.NoError(t, w.Add(watched))
	require.NoError(t, w.Add(watched), "adding twice is a no-op")

	require.NoError(t, os.WriteFile(other, []byte("b"), 0o644))
	expectQuiet(t, events)

	w.Remove(watched)
	require.NoError(t, os.WriteFile(watched, []byte("changed"), 0o644))
	expectQuiet(t, events)
}

func TestWatcher_CloseTwice(t *testing.T) {
	w, _ := newTestWatcher(t)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
