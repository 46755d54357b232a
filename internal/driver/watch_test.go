package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"esfront/internal/driver"
)

func TestWatchRechecksChangedFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.js")
	writeFile(t, good, "let a = 1;\n")
	writeFile(t, filepath.Join(dir, "node_modules", "dep.js"), "let b = 1;\n")

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan driver.WatchBatch, 8)
	done := make(chan error, 1)
	go func() {
		done <- driver.Watch(ctx, []string{dir}, driver.WatchOptions{Debounce: 20 * time.Millisecond}, func(b driver.WatchBatch) {
			batches <- b
		})
	}()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch returned %v", err)
		}
	}()

	next := func() driver.WatchBatch {
		t.Helper()
		select {
		case b := <-batches:
			return b
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a batch")
			return driver.WatchBatch{}
		}
	}

	first := next()
	if !first.Initial || len(first.Results) != 1 || first.Results[0].HasErrors() {
		t.Fatalf("initial batch = %+v", first)
	}

	if err := os.WriteFile(good, []byte("let a = ;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A write can arrive as truncate then write; wait for the final content.
	for {
		changed := next()
		if changed.Initial || len(changed.Results) != 1 {
			t.Fatalf("change batch = %+v", changed)
		}
		if changed.Results[0].HasErrors() {
			break
		}
	}

	if err := os.Remove(good); err != nil {
		t.Fatal(err)
	}
	removed := next()
	if len(removed.Removed) != 1 || removed.Removed[0] != good {
		t.Fatalf("remove batch = %+v", removed)
	}
}

func TestWatchMissingRoot(t *testing.T) {
	err := driver.Watch(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, driver.WatchOptions{}, func(driver.WatchBatch) {})
	if err == nil {
		t.Fatal("expected an error for a missing root")
	}
}
