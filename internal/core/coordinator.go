package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// ErrAcceptFailed is returned by Serve when the listener stops accepting
// connections for any reason other than shutdown.
var ErrAcceptFailed = errors.New("activation socket accept failed")

const ackMessage = "ack"

// Window is the UI surface raised when another launch is forwarded here.
type Window interface {
	Show() error
}

type WindowFunc func() error

func (f WindowFunc) Show() error { return f() }

// Role is the outcome of Acquire.
type Role int

const (
	// RolePrimary means this process owns the socket and should keep running.
	RolePrimary Role = iota
	// RoleForwarded means a running instance was asked to show itself.
	RoleForwarded
	// RoleRelaunched means a stale socket was removed and a fresh
	// instance was started in the background.
	RoleRelaunched
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleForwarded:
		return "forwarded"
	case RoleRelaunched:
		return "relaunched"
	default:
		return "unknown"
	}
}

type CoordinatorOptions struct {
	SocketPath  string
	Window      Window
	Notifier    Notifier
	Relaunch    func() error
	DialTimeout time.Duration
}

// Coordinator keeps a single launcher process per socket path.
type Coordinator struct {
	socketPath  string
	window      Window
	notifier    Notifier
	relaunch    func() error
	dialTimeout time.Duration

	mu       sync.Mutex
	listener *net.UnixListener
	closed   bool
}

func NewCoordinator(opts CoordinatorOptions) *Coordinator {
	if opts.Relaunch == nil {
		opts.Relaunch = RelaunchSelf
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = time.Second
	}
	if opts.Window == nil {
		opts.Window = WindowFunc(func() error { return nil })
	}
	return &Coordinator{
		socketPath:  opts.SocketPath,
		window:      opts.Window,
		notifier:    opts.Notifier,
		relaunch:    opts.Relaunch,
		dialTimeout: opts.DialTimeout,
	}
}

// Acquire decides the role of this process. Only RolePrimary leaves a bound
// listener behind; the caller should exit for the other roles.
func (c *Coordinator) Acquire() (Role, error) {
	if _, err := os.Stat(c.socketPath); err == nil {
		err := Ping(c.socketPath, c.dialTimeout)
		if err == nil {
			log.Printf("[IPC] Forwarded activation to running instance on %s", c.socketPath)
			return RoleForwarded, nil
		}
		log.Printf("[IPC] Stale socket %s: %v", c.socketPath, err)

		if err := os.Remove(c.socketPath); err != nil && !os.IsNotExist(err) {
			return RolePrimary, fmt.Errorf("failed to remove stale socket: %w", err)
		}
		if err := c.relaunch(); err != nil {
			return RolePrimary, fmt.Errorf("failed to relaunch: %w", err)
		}
		return RoleRelaunched, nil
	}

	if err := os.Remove(c.socketPath); err != nil && !os.IsNotExist(err) {
		return RolePrimary, fmt.Errorf("failed to remove leftover socket: %w", err)
	}

	listener, err := net.ListenUnix("unix", &net.UnixAddr{Name: c.socketPath, Net: "unix"})
	if err != nil {
		return RolePrimary, fmt.Errorf("failed to create socket listener: %w", err)
	}
	listener.SetUnlinkOnClose(true)

	c.mu.Lock()
	c.listener = listener
	c.closed = false
	c.mu.Unlock()

	log.Printf("[IPC] Listening on %s", c.socketPath)
	return RolePrimary, nil
}

// Serve accepts activation connections until ctx is cancelled or Close is
// called. Any other accept failure ends Serve with ErrAcceptFailed.
func (c *Coordinator) Serve(ctx context.Context) error {
	c.mu.Lock()
	listener := c.listener
	c.mu.Unlock()
	if listener == nil {
		return fmt.Errorf("coordinator has no listener, call Acquire first")
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-stop:
		}
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := listener.AcceptUnix()
		if err != nil {
			if c.isClosed() {
				return nil
			}
			c.Close()
			return fmt.Errorf("%w: %v", ErrAcceptFailed, err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			c.handleConnection(ctx, conn)
		}()
	}
}

func (c *Coordinator) handleConnection(ctx context.Context, conn *net.UnixConn) {
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(c.dialTimeout))
	if _, err := conn.Write([]byte(ackMessage)); err != nil {
		log.Printf("[IPC] Failed to send ack: %v", err)
	}

	if err := c.window.Show(); err != nil {
		log.Printf("[IPC] Failed to show window: %v", err)
	}

	if c.notifier != nil {
		if err := c.notifier.Notify(ctx, NewEvent(EventWindowShow)); err != nil {
			log.Printf("[IPC] Failed to publish %s: %v", EventWindowShow, err)
		}
	}
}

func (c *Coordinator) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close stops the listener and removes the socket file.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.listener == nil {
		return nil
	}
	c.closed = true

	err := c.listener.Close()
	log.Println("[IPC] Listener stopped")
	return err
}

// Ping asks the instance listening on socketPath to show itself. A missing
// acknowledgement is logged but not treated as a failure.
func Ping(socketPath string, timeout time.Duration) error {
	conn, err := net.DialTimeout("unix", socketPath, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", socketPath, err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(timeout))
	if _, err := conn.Write([]byte{}); err != nil {
		return fmt.Errorf("failed to send activation: %w", err)
	}

	buf := make([]byte, len(ackMessage))
	if _, err := io.ReadFull(conn, buf); err != nil {
		log.Printf("[IPC] No ack from %s: %v", socketPath, err)
		return nil
	}
	if string(buf) != ackMessage {
		log.Printf("[IPC] Unexpected reply from %s: %q", socketPath, buf)
	}
	return nil
}

// RelaunchSelf starts this executable again in its own session.
func RelaunchSelf() error {
	cmd := exec.Command(os.Args[0], os.Args[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", os.Args[0], err)
	}
	log.Printf("[IPC] Relaunched as pid %d", cmd.Process.Pid)
	return cmd.Process.Release()
}
