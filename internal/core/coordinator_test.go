package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// socketDir keeps socket paths short enough for sun_path.
func socketDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "tuicher")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

type countingWindow struct {
	shown atomic.Int32
	ch    chan struct{}
}

func newCountingWindow() *countingWindow {
	return &countingWindow{ch: make(chan struct{}, 8)}
}

func (w *countingWindow) Show() error {
	w.shown.Add(1)
	w.ch <- struct{}{}
	return nil
}

func startServing(t *testing.T, c *Coordinator) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Serve(ctx) }()
	t.Cleanup(cancel)
	return cancel, errCh
}

func TestCoordinatorPrimaryServesActivation(t *testing.T) {
	socket := filepath.Join(socketDir(t), "t.sock")
	window := newCountingWindow()
	events := NewBroadcaster()
	sub, unsubscribe := events.Subscribe(4)
	defer unsubscribe()

	c := NewCoordinator(CoordinatorOptions{SocketPath: socket, Window: window, Notifier: events})
	role, err := c.Acquire()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if role != RolePrimary {
		t.Fatalf("Expected primary role, got %s", role)
	}
	startServing(t, c)

	if err := Ping(socket, time.Second); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	select {
	case <-window.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected window to be shown")
	}

	select {
	case ev := <-sub:
		if ev.Name != EventWindowShow {
			t.Errorf("Expected event '%s', got '%s'", EventWindowShow, ev.Name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected window-show event")
	}
}

func TestCoordinatorSecondInstanceForwards(t *testing.T) {
	socket := filepath.Join(socketDir(t), "t.sock")
	window := newCountingWindow()

	primary := NewCoordinator(CoordinatorOptions{SocketPath: socket, Window: window})
	if _, err := primary.Acquire(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	startServing(t, primary)

	relaunched := false
	second := NewCoordinator(CoordinatorOptions{
		SocketPath: socket,
		Relaunch:   func() error { relaunched = true; return nil },
	})
	role, err := second.Acquire()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if role != RoleForwarded {
		t.Errorf("Expected forwarded role, got %s", role)
	}
	if relaunched {
		t.Error("Expected no relaunch when an instance is running")
	}

	select {
	case <-window.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected primary window to be shown")
	}
}

func TestCoordinatorStaleSocketRelaunches(t *testing.T) {
	socket := filepath.Join(socketDir(t), "t.sock")
	if err := os.WriteFile(socket, nil, 0600); err != nil {
		t.Fatalf("Failed to create stale socket file: %v", err)
	}

	relaunches := 0
	c := NewCoordinator(CoordinatorOptions{
		SocketPath:  socket,
		DialTimeout: 200 * time.Millisecond,
		Relaunch:    func() error { relaunches++; return nil },
	})

	role, err := c.Acquire()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if role != RoleRelaunched {
		t.Errorf("Expected relaunched role, got %s", role)
	}
	if relaunches != 1 {
		t.Errorf("Expected 1 relaunch, got %d", relaunches)
	}
	if _, err := os.Stat(socket); !os.IsNotExist(err) {
		t.Errorf("Expected stale socket to be removed, got %v", err)
	}
}

func TestCoordinatorRelaunchFailure(t *testing.T) {
	socket := filepath.Join(socketDir(t), "t.sock")
	if err := os.WriteFile(socket, nil, 0600); err != nil {
		t.Fatalf("Failed to create stale socket file: %v", err)
	}

	c := NewCoordinator(CoordinatorOptions{
		SocketPath: socket,
		Relaunch:   func() error { return errors.New("no binary") },
	})
	if _, err := c.Acquire(); err == nil {
		t.Error("Expected relaunch error, got none")
	}
}

func TestCoordinatorCancelRemovesSocket(t *testing.T) {
	socket := filepath.Join(socketDir(t), "t.sock")
	c := NewCoordinator(CoordinatorOptions{SocketPath: socket})
	if _, err := c.Acquire(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cancel, errCh := startServing(t, c)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected nil error on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Serve to return after cancel")
	}

	if _, err := os.Stat(socket); !os.IsNotExist(err) {
		t.Errorf("Expected socket file to be removed, got %v", err)
	}
}

func TestCoordinatorAcceptFailure(t *testing.T) {
	socket := filepath.Join(socketDir(t), "t.sock")
	c := NewCoordinator(CoordinatorOptions{SocketPath: socket})
	if _, err := c.Acquire(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	_, errCh := startServing(t, c)
	time.Sleep(50 * time.Millisecond)

	// Closing the listener behind the coordinator's back looks like a broken socket.
	c.listener.Close()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrAcceptFailed) {
			t.Errorf("Expected ErrAcceptFailed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Serve to fail")
	}
}

func TestServeWithoutAcquire(t *testing.T) {
	c := NewCoordinator(CoordinatorOptions{SocketPath: filepath.Join(socketDir(t), "t.sock")})
	if err := c.Serve(context.Background()); err == nil {
		t.Error("Expected error when serving before Acquire")
	}
}

func TestPingWithoutListener(t *testing.T) {
	if err := Ping(filepath.Join(socketDir(t), "none.sock"), 100*time.Millisecond); err == nil {
		t.Error("Expected error pinging a missing socket")
	}
}
