package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chess10kp/tuicher/internal/config"
)

func TestAppRunPrimary(t *testing.T) {
	dir := socketDir(t)
	sources := filepath.Join(dir, "applications")
	if err := os.MkdirAll(sources, 0755); err != nil {
		t.Fatalf("Failed to create sources: %v", err)
	}
	entry := "[Desktop Entry]\nType=Application\nName=Firefox\n"
	if err := os.WriteFile(filepath.Join(sources, "firefox.desktop"), []byte(entry), 0644); err != nil {
		t.Fatalf("Failed to write entry: %v", err)
	}

	cfg := config.Default()
	cfg.SocketPath = filepath.Join(dir, "a.sock")
	cfg.CacheDir = filepath.Join(dir, "cache")
	cfg.Index.SourceDirs = []string{sources}
	cfg.Index.RebuildDebounceMs = 20
	cfg.Index.MinRebuildIntervalMs = 0

	window := newCountingWindow()
	app, err := NewApp(cfg, AppOptions{Window: window})
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	type outcome struct {
		role Role
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		role, err := app.Run(ctx)
		done <- outcome{role, err}
	}()

	deadline := time.Now().Add(3 * time.Second)
	for {
		results, err := app.Router().Search("firefox")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) > 0 && results[0].Title == "Firefox" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Expected Firefox once the index is built, got %d results", len(results))
		}
		time.Sleep(20 * time.Millisecond)
	}

	if err := Ping(cfg.SocketPath, time.Second); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	select {
	case <-window.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected window to be shown")
	}

	cancel()
	select {
	case out := <-done:
		if out.err != nil {
			t.Errorf("Expected clean shutdown, got %v", out.err)
		}
		if out.role != RolePrimary {
			t.Errorf("Expected primary role, got %s", out.role)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Expected Run to return after cancel")
	}
}
